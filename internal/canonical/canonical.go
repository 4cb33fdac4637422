// Package canonical reduces raw source records to the canonical event
// schema: the instant is re-expressed in the display timezone and the venue
// name is folded to a canonical dedup key.
package canonical

import (
	"fmt"
	"time"

	"github.com/glassgovernment/legistar-sync/internal/domain"
	"github.com/glassgovernment/legistar-sync/internal/source"
)

// Layouts accepted for adapter-produced datetime strings. Adapters emit
// RFC 3339; the bare layouts tolerate upstream strings that leaked through
// without a zone designator (interpreted as UTC, same as the designator).
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Canonicalize converts one raw record. It fails when the record's date is
// absent or unparseable; every other field degrades to a zero value.
//
// The conversion contract is wall-clock exact: the instant is interpreted in
// UTC at the adapter boundary and re-expressed in loc, so formatting Start
// in loc yields the true local time, not an offset-shifted UTC string.
func Canonicalize(raw source.RawEventRecord, src domain.Source, loc *time.Location) (*domain.CanonicalEvent, error) {
	if raw.DateTime == "" {
		return nil, fmt.Errorf("record %q has no date", raw.ExternalID)
	}

	instant, err := parseInstant(raw.DateTime)
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", raw.ExternalID, err)
	}

	title := raw.Title
	if title == "" {
		title = "Legistar Event"
	}

	return &domain.CanonicalEvent{
		ExternalID:   raw.ExternalID,
		Source:       src,
		Title:        title,
		Start:        instant.In(loc),
		VenueKey:     VenueKey(raw.Location),
		VenueRawName: raw.Location,
		DetailURL:    raw.DetailURL,
	}, nil
}

func parseInstant(s string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable datetime %q", s)
}
