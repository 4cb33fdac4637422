package sync

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/glassgovernment/legistar-sync/internal/domain"
	"github.com/glassgovernment/legistar-sync/internal/store"
)

// memStore is an in-memory CalendarStore for engine tests. It mirrors the
// postgres store's observable contract: find methods return (nil, nil) on
// miss, venue enumeration is oldest-first by insertion order.
type memStore struct {
	nextID int
	events map[string]*domain.CalendarEvent
	venues []*domain.Venue

	failUpsertFor map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		events:        make(map[string]*domain.CalendarEvent),
		failUpsertFor: make(map[string]bool),
	}
}

func (m *memStore) id() string {
	m.nextID++
	return "id-" + strconv.Itoa(m.nextID)
}

func (m *memStore) FindEventByExternalID(ctx context.Context, externalID string) (*domain.CalendarEvent, error) {
	for _, ev := range m.events {
		if ev.ExternalID == externalID {
			clone := *ev
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memStore) UpsertEvent(ctx context.Context, p store.UpsertEventParams) (*domain.CalendarEvent, error) {
	if m.failUpsertFor[p.ExternalID] {
		return nil, errors.New("upsert rejected")
	}
	for _, ev := range m.events {
		if ev.ExternalID == p.ExternalID {
			ev.Title = p.Title
			ev.Start = p.Start
			ev.VenueID = p.VenueID
			ev.SourceTag = p.SourceTag
			ev.UpdatedAt = time.Now()
			clone := *ev
			return &clone, nil
		}
	}
	ev := &domain.CalendarEvent{
		ID:         m.id(),
		ExternalID: p.ExternalID,
		Title:      p.Title,
		Start:      p.Start,
		VenueID:    p.VenueID,
		SourceTag:  p.SourceTag,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.events[ev.ID] = ev
	clone := *ev
	return &clone, nil
}

func (m *memStore) DeleteEvent(ctx context.Context, id string) (bool, error) {
	if _, ok := m.events[id]; !ok {
		return false, nil
	}
	delete(m.events, id)
	return true, nil
}

func (m *memStore) ListEventsOlderThan(ctx context.Context, cutoff time.Time, managedOnly bool) ([]domain.CalendarEvent, error) {
	var out []domain.CalendarEvent
	for _, ev := range m.events {
		if !ev.Start.Before(cutoff) {
			continue
		}
		if managedOnly && ev.ExternalID == "" {
			continue
		}
		out = append(out, *ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (m *memStore) FindVenueByKey(ctx context.Context, canonicalKey string) (*domain.Venue, error) {
	for _, v := range m.venues {
		if v.CanonicalKey == canonicalKey {
			clone := *v
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateVenue(ctx context.Context, displayName, canonicalKey string) (*domain.Venue, error) {
	v := &domain.Venue{
		ID:           m.id(),
		DisplayName:  displayName,
		CanonicalKey: canonicalKey,
		CreatedAt:    time.Now(),
	}
	m.venues = append(m.venues, v)
	clone := *v
	return &clone, nil
}

func (m *memStore) ReassignEventsVenue(ctx context.Context, fromVenueID, toVenueID string) (int, error) {
	moved := 0
	for _, ev := range m.events {
		if ev.VenueID != nil && *ev.VenueID == fromVenueID {
			to := toVenueID
			ev.VenueID = &to
			moved++
		}
	}
	return moved, nil
}

func (m *memStore) DeleteVenue(ctx context.Context, id string) (bool, error) {
	for i, v := range m.venues {
		if v.ID == id {
			m.venues = append(m.venues[:i], m.venues[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListAllVenues(ctx context.Context) ([]domain.Venue, error) {
	out := make([]domain.Venue, 0, len(m.venues))
	for _, v := range m.venues {
		out = append(out, *v)
	}
	return out, nil
}

var _ store.CalendarStore = (*memStore)(nil)
