// Package source contains the per-upstream adapters that fetch and parse
// government meeting listings into raw event records. Adapters never fail a
// run: any upstream problem degrades to an empty record set plus a
// diagnostic, and the other sources proceed unaffected.
package source

import (
	"context"
	"net/http"
	"time"
)

// RawEventRecord is the source-specific shape of one upstream meeting as
// produced by parsing. DateTime is a UTC-tagged ISO 8601 string assembled by
// the adapter; resolution to the display timezone happens later in the
// canonicalizer. Records are ephemeral and never persisted directly.
type RawEventRecord struct {
	ExternalID string `json:"external_id"`
	Title      string `json:"title"`
	DateTime   string `json:"datetime"`
	Location   string `json:"location,omitempty"`
	DetailURL  string `json:"detail_url,omitempty"`
}

// FetchResult is the outcome of one adapter invocation. A debug fetch
// carries the verbatim upstream payload in Raw and no parsed records.
// Diagnostic is non-empty when the fetch or parse failed.
type FetchResult struct {
	Records    []RawEventRecord `json:"records"`
	Raw        string           `json:"raw,omitempty"`
	Diagnostic string           `json:"diagnostic,omitempty"`
}

// Adapter fetches one upstream source. Fetch must not return an error for
// ordinary upstream failure; it reports through FetchResult.Diagnostic.
type Adapter interface {
	Name() string
	SourceTag() string
	Fetch(ctx context.Context, debug bool) FetchResult
}

const userAgent = "GlassGovernment/LegistarSync/2.0.0"

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 4 << 20

// newHTTPClient builds the shared upstream client: bounded timeout, at most
// two redirects, no retries.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 2 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}
