package domain

import "time"

// Venue is a store-resident venue record. At most one venue per canonical
// key should exist at rest; the deduplicator repairs violations, the store
// does not reject them at write time.
type Venue struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	CanonicalKey string    `json:"canonical_key"`
	CreatedAt    time.Time `json:"created_at"`
}

// CalendarEvent is a store-resident event. A non-empty ExternalID marks the
// record as system-managed (created by this pipeline and eligible for
// automatic purge); manually authored events have no external id.
type CalendarEvent struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id,omitempty"`
	Title      string    `json:"title"`
	Start      time.Time `json:"start"`
	VenueID    *string   `json:"venue_id,omitempty"`
	SourceTag  string    `json:"source_tag,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
