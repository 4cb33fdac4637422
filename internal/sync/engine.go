package sync

import (
	"context"
	"log/slog"

	"github.com/glassgovernment/legistar-sync/internal/domain"
	"github.com/glassgovernment/legistar-sync/internal/store"
)

// previewLimit caps the operator-facing preview in each SyncResult.
const previewLimit = 10

// Engine reconciles canonical events against the calendar store. It is not
// safe to run concurrently against itself or the maintenance passes; the
// store guarantees per-record atomicity only.
type Engine struct {
	store  store.CalendarStore
	logger *slog.Logger
}

func NewEngine(s store.CalendarStore, logger *slog.Logger) *Engine {
	return &Engine{store: s, logger: logger}
}

// Sync upserts the given events in input order, keyed by external id, and
// tags each with categoryTag. Running it twice with the same input yields
// zero inserts the second time; updates rewrite values unconditionally,
// there is no change-detection short-circuit.
func (e *Engine) Sync(ctx context.Context, events []domain.CanonicalEvent, categoryTag string) domain.SyncResult {
	result := domain.SyncResult{Preview: []domain.PreviewItem{}}

	for _, ev := range events {
		result.Fetched++

		// Upstream stages guarantee these, but the contract holds defensively.
		if ev.ExternalID == "" || ev.Start.IsZero() {
			result.Skipped++
			continue
		}

		venueID := e.resolveVenue(ctx, ev)

		existing, err := e.store.FindEventByExternalID(ctx, ev.ExternalID)
		if err != nil {
			e.logger.Error("event lookup failed", "external_id", ev.ExternalID, "error", err)
			result.Skipped++
			continue
		}

		_, err = e.store.UpsertEvent(ctx, store.UpsertEventParams{
			ExternalID: ev.ExternalID,
			Title:      ev.Title,
			Start:      ev.Start,
			VenueID:    venueID,
			SourceTag:  categoryTag,
		})
		if err != nil {
			e.logger.Error("event upsert failed", "external_id", ev.ExternalID, "error", err)
			result.Skipped++
			continue
		}

		if existing != nil {
			result.Updated++
		} else {
			result.Inserted++
		}

		if len(result.Preview) < previewLimit {
			result.Preview = append(result.Preview, domain.PreviewItem{
				Title: ev.Title,
				Start: ev.Start,
				Venue: ev.VenueRawName,
				URL:   ev.DetailURL,
			})
		}
	}

	e.logger.Info("sync complete",
		"category", categoryTag,
		"fetched", result.Fetched,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	return result
}

// resolveVenue finds or creates the venue for an event's canonical key.
// First writer wins: two concurrent runs can both create a venue for a
// not-yet-existing key, an accepted race the deduplicator repairs later.
// Venue trouble never fails the event; it syncs without a venue.
func (e *Engine) resolveVenue(ctx context.Context, ev domain.CanonicalEvent) *string {
	if ev.VenueKey == "" {
		return nil
	}

	venue, err := e.store.FindVenueByKey(ctx, ev.VenueKey)
	if err != nil {
		e.logger.Error("venue lookup failed", "key", ev.VenueKey, "error", err)
		return nil
	}
	if venue == nil {
		venue, err = e.store.CreateVenue(ctx, ev.VenueRawName, ev.VenueKey)
		if err != nil {
			e.logger.Error("venue create failed", "key", ev.VenueKey, "error", err)
			return nil
		}
	}
	return &venue.ID
}
