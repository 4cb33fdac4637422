package canonical

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// AliasSet folds a closed set of textual variants of one proper name into a
// single canonical spelling. This is literal substitution, not fuzzy
// matching: variants are replaced in declaration order, so longer variants
// must come first or a shorter one would pre-empt them.
type AliasSet struct {
	Canonical string
	Variants  []string
}

// Upstream venue strings spell the MLK Jr. Boulevard address half a dozen
// ways; all of them must land on one venue.
var aliasSets = []AliasSet{
	{
		Canonical: "martin luther king",
		Variants: []string{
			"martin luther king, jr.",
			"martin luther king jr.",
			"martin luther king, jr",
			"martin luther king jr",
			"mlk jr.",
			"mlk jr",
			"mlk",
		},
	},
}

// RegisterAliases adds a folding set. New upstream quirks are additive; no
// call site changes.
func RegisterAliases(set AliasSet) {
	aliasSets = append(aliasSets, set)
}

// VenueKey derives the canonical dedup key for a venue name: lower-cased,
// trimmed, internal whitespace collapsed, known aliases folded. Empty input
// yields the empty key, which is never used for venue resolution.
func VenueKey(name string) string {
	if name == "" {
		return ""
	}

	key := strings.ToLower(strings.TrimSpace(name))
	key = whitespaceRe.ReplaceAllString(key, " ")

	for _, set := range aliasSets {
		for _, variant := range set.Variants {
			key = strings.ReplaceAll(key, variant, set.Canonical)
		}
	}
	return key
}
