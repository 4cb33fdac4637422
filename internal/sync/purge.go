package sync

import (
	"context"
	"fmt"
	"time"
)

// PurgeOldEvents deletes system-managed events starting strictly before
// now - maxPastDays. Manually authored events (no external id) are never
// touched, regardless of age. Deletion is irreversible.
func (e *Engine) PurgeOldEvents(ctx context.Context, now time.Time, maxPastDays int) (int, error) {
	cutoff := now.AddDate(0, 0, -maxPastDays)

	events, err := e.store.ListEventsOlderThan(ctx, cutoff, true)
	if err != nil {
		return 0, fmt.Errorf("listing old events: %w", err)
	}

	deleted := 0
	for _, ev := range events {
		ok, err := e.store.DeleteEvent(ctx, ev.ID)
		if err != nil {
			e.logger.Error("event delete failed", "event_id", ev.ID, "error", err)
			continue
		}
		if ok {
			deleted++
		}
	}

	e.logger.Info("purge complete", "cutoff", cutoff, "deleted", deleted)
	return deleted, nil
}
