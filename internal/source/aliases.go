package source

import "strconv"

// Upstream Legistar deployments disagree on field names for the same logical
// fields. Each logical field maps to an ordered candidate list; the first
// candidate with a non-empty value wins. New upstream quirks are added here,
// not as branches in the parser.
var (
	idAliases       = []string{"EventId", "ID"}
	dateAliases     = []string{"EventDate", "StartDate", "MeetingDate"}
	timeAliases     = []string{"EventTime", "StartTime", "MeetingTime"}
	locationAliases = []string{"EventLocation", "MeetingLocation"}
	titleAliases    = []string{"EventBodyName", "MeetingName"}
)

// resolveField returns the first non-empty value among the candidate keys.
func resolveField(record map[string]any, candidates []string) string {
	for _, key := range candidates {
		if v, ok := record[key]; ok {
			if s := fieldString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// fieldString renders a JSON field value as a string. Legistar ids arrive as
// numbers; everything else of interest is a string.
func fieldString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}
