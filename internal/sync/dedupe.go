package sync

import (
	"context"
	"fmt"

	"github.com/glassgovernment/legistar-sync/internal/canonical"
)

// DedupeResult reports one deduplication pass.
type DedupeResult struct {
	Merged           int `json:"merged"`
	ReassignedEvents int `json:"reassigned_events"`
}

// DeduplicateVenues merges venues sharing a canonical key. The first venue
// enumerated for a key becomes the representative; later ones have their
// events reassigned to it and are then deleted. Keys are recomputed from the
// display name so venues stored before an alias set was added still fold.
func (e *Engine) DeduplicateVenues(ctx context.Context) (DedupeResult, error) {
	venues, err := e.store.ListAllVenues(ctx)
	if err != nil {
		return DedupeResult{}, fmt.Errorf("listing venues: %w", err)
	}

	representatives := make(map[string]string)
	var result DedupeResult

	for _, v := range venues {
		key := canonical.VenueKey(v.DisplayName)

		primary, seen := representatives[key]
		if !seen {
			representatives[key] = v.ID
			continue
		}

		moved, err := e.store.ReassignEventsVenue(ctx, v.ID, primary)
		if err != nil {
			e.logger.Error("event reassignment failed", "venue_id", v.ID, "error", err)
			continue
		}
		result.ReassignedEvents += moved

		deleted, err := e.store.DeleteVenue(ctx, v.ID)
		if err != nil {
			e.logger.Error("venue delete failed", "venue_id", v.ID, "error", err)
			continue
		}
		if deleted {
			result.Merged++
		}
	}

	e.logger.Info("venue dedupe complete",
		"merged", result.Merged,
		"reassigned_events", result.ReassignedEvents,
	)
	return result, nil
}
