package domain

import "time"

// PreviewItem is one row of the operator-facing sync preview.
type PreviewItem struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	Venue string    `json:"venue,omitempty"`
	URL   string    `json:"url,omitempty"`
}

// SyncResult aggregates the outcome of one sync run for one source.
// Preview holds the first 10 accepted events in input order.
type SyncResult struct {
	Fetched  int           `json:"fetched"`
	Inserted int           `json:"inserted"`
	Updated  int           `json:"updated"`
	Skipped  int           `json:"skipped"`
	Preview  []PreviewItem `json:"preview"`
}
