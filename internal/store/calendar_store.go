package store

import (
	"context"
	"time"

	"github.com/glassgovernment/legistar-sync/internal/domain"
)

// UpsertEventParams carries one event write. A write with an ExternalID
// that already exists overwrites title, start, venue and tag.
type UpsertEventParams struct {
	ExternalID string
	Title      string
	Start      time.Time
	VenueID    *string
	SourceTag  string
}

// CalendarStore is the persistence capability the pipeline reconciles
// against. Find methods return (nil, nil) when nothing matches. The store
// guarantees per-record atomicity only; callers must not assume multi-record
// transactions.
type CalendarStore interface {
	FindEventByExternalID(ctx context.Context, externalID string) (*domain.CalendarEvent, error)
	UpsertEvent(ctx context.Context, p UpsertEventParams) (*domain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) (bool, error)
	// ListEventsOlderThan returns events starting strictly before cutoff.
	// With managedOnly set, only system-managed events (those carrying an
	// external id) are returned.
	ListEventsOlderThan(ctx context.Context, cutoff time.Time, managedOnly bool) ([]domain.CalendarEvent, error)

	FindVenueByKey(ctx context.Context, canonicalKey string) (*domain.Venue, error)
	CreateVenue(ctx context.Context, displayName, canonicalKey string) (*domain.Venue, error)
	ReassignEventsVenue(ctx context.Context, fromVenueID, toVenueID string) (int, error)
	DeleteVenue(ctx context.Context, id string) (bool, error)
	ListAllVenues(ctx context.Context) ([]domain.Venue, error)
}
