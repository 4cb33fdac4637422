package source

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Legistar publishes date and time as separate strings: a date like
// "2025-06-12T00:00:00" and a 12-hour clock like "6:30 PM".
var clockRe = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)`)

// buildDateTime joins the separate date and time fields into a UTC-tagged
// ISO 8601 string. A missing or unparseable time defaults to local noon.
// Returns "" when the date is missing.
func buildDateTime(date, clock string) string {
	if date == "" {
		return ""
	}
	datePart := strings.SplitN(date, "T", 2)[0]

	m := clockRe.FindStringSubmatch(clock)
	if m == nil {
		return datePart + "T12:00:00Z"
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return datePart + "T12:00:00Z"
	}
	meridian := strings.ToUpper(m[3])
	if meridian == "PM" && hour != 12 {
		hour += 12
	}
	if meridian == "AM" && hour == 12 {
		hour = 0
	}

	return fmt.Sprintf("%sT%02d:%s:00Z", datePart, hour, m[2])
}
