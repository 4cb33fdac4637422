// Package sync reconciles canonical events against the calendar store and
// carries the store maintenance passes (venue dedup, stale-event purge).
package sync

import (
	"time"

	"github.com/glassgovernment/legistar-sync/internal/domain"
)

// Retain keeps events inside the rolling window [now - maxPastDays, +inf).
// The lower bound is inclusive; future events are always retained.
func Retain(events []domain.CanonicalEvent, now time.Time, maxPastDays int) []domain.CanonicalEvent {
	cutoff := now.AddDate(0, 0, -maxPastDays)

	var kept []domain.CanonicalEvent
	for _, ev := range events {
		if !ev.Start.Before(cutoff) {
			kept = append(kept, ev)
		}
	}
	return kept
}
