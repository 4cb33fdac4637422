package domain

import "time"

// Source identifies which upstream government body an event came from.
type Source string

const (
	SourceMadison Source = "madison"
	SourceDane    Source = "dane"
)

// CanonicalEvent is the normalized, timezone-resolved representation of one
// upstream meeting record. ExternalID is stable across repeated fetches and
// is the idempotency key for store upserts. Start is always expressed in the
// configured display timezone.
type CanonicalEvent struct {
	ExternalID   string    `json:"external_id"`
	Source       Source    `json:"source"`
	Title        string    `json:"title"`
	Start        time.Time `json:"start"`
	VenueKey     string    `json:"venue_key,omitempty"`
	VenueRawName string    `json:"venue_raw_name,omitempty"`
	DetailURL    string    `json:"detail_url,omitempty"`
}
