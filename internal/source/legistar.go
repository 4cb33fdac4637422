package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/glassgovernment/legistar-sync/internal/debuglog"
)

// LegistarConfig describes one Legistar web API source.
type LegistarConfig struct {
	// Name identifies the source in logs, cache keys and the admin API.
	Name string
	// Client is the Legistar tenant slug used to synthesize detail links.
	Client string
	// BaseURL is the events endpoint, e.g.
	// https://webapi.legistar.com/v1/madison/events
	BaseURL string
	// MaxPastDays bounds the server-side OData date filter.
	MaxPastDays int
	// Detailed marks tenants whose bare JSON arrays carry the full Legistar
	// field set (including real EventInSiteURL links). Other tenants go
	// through the field-alias resolver.
	Detailed bool
}

// LegistarAdapter fetches a Legistar web API source: JSON first, permissive
// XML as a fallback, with an error-envelope detector for diagnostics.
type LegistarAdapter struct {
	cfg   LegistarConfig
	httpc *http.Client
	diag  *debuglog.Log
}

func NewLegistar(cfg LegistarConfig, diag *debuglog.Log) *LegistarAdapter {
	return &LegistarAdapter{
		cfg:   cfg,
		httpc: newHTTPClient(30 * time.Second),
		diag:  diag,
	}
}

func (a *LegistarAdapter) Name() string { return a.cfg.Name }

func (a *LegistarAdapter) SourceTag() string { return a.cfg.Name }

// Fetch retrieves and parses the upstream listing. With debug set it returns
// the verbatim payload instead of parsed records.
func (a *LegistarAdapter) Fetch(ctx context.Context, debug bool) FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.eventsURL(time.Now()), nil)
	if err != nil {
		return a.failf("building request for %s: %v", a.cfg.Name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.httpc.Do(req)
	if err != nil {
		return a.failf("fetch error for %s: %v", a.cfg.Name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return a.failf("reading response for %s: %v", a.cfg.Name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return a.failf("upstream returned HTTP %d for %s", resp.StatusCode, a.cfg.Name)
	}

	if debug {
		return FetchResult{Raw: string(body)}
	}

	records, diag := a.parse(body)
	if diag != "" {
		a.diag.Printf("%s: %s", a.cfg.Name, diag)
	}
	return FetchResult{Records: records, Diagnostic: diag}
}

// eventsURL builds the OData query: server-side ordering plus a rolling
// lookback filter so we never pull the tenant's full history.
func (a *LegistarAdapter) eventsURL(now time.Time) string {
	cutoff := now.UTC().AddDate(0, 0, -a.cfg.MaxPastDays).Format("2006-01-02T15:04:05")
	q := url.Values{}
	q.Set("$orderby", "EventDate")
	q.Set("$filter", fmt.Sprintf("EventDate ge datetime'%s'", cutoff))
	return a.cfg.BaseURL + "?" + q.Encode()
}

func (a *LegistarAdapter) failf(format string, args ...any) FetchResult {
	msg := fmt.Sprintf(format, args...)
	a.diag.Printf("%s", msg)
	return FetchResult{Diagnostic: msg}
}

// parse runs the body through the format detectors in priority order. Each
// detector either claims the payload or passes.
func (a *LegistarAdapter) parse(body []byte) ([]RawEventRecord, string) {
	detectors := []func([]byte) ([]RawEventRecord, string, bool){
		a.detectJSONArray,
		a.detectJSONValueObject,
		a.detectGranicusXML,
		a.detectErrorEnvelope,
	}
	for _, detect := range detectors {
		if records, diag, ok := detect(body); ok {
			return records, diag
		}
	}
	return nil, "upstream returned no events"
}

// detectJSONArray claims bare JSON arrays. Detailed tenants keep their full
// field set; the rest go through the alias resolver.
func (a *LegistarAdapter) detectJSONArray(body []byte) ([]RawEventRecord, string, bool) {
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil || len(raw) == 0 {
		return nil, "", false
	}

	var records []RawEventRecord
	for _, m := range raw {
		if a.cfg.Detailed {
			records = append(records, a.richRecord(m))
			continue
		}
		if rec, ok := a.genericRecord(m); ok {
			records = append(records, rec)
		}
	}
	return records, "", true
}

// detectJSONValueObject claims OData-style objects with a "value" array.
func (a *LegistarAdapter) detectJSONValueObject(body []byte) ([]RawEventRecord, string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, "", false
	}
	inner, ok := obj["value"]
	if !ok {
		return nil, "", false
	}
	var raw []map[string]any
	if err := json.Unmarshal(inner, &raw); err != nil || len(raw) == 0 {
		return nil, "", false
	}

	var records []RawEventRecord
	for _, m := range raw {
		if rec, ok := a.genericRecord(m); ok {
			records = append(records, rec)
		}
	}
	return records, "", true
}

var (
	granicusEventRe = regexp.MustCompile(`(?s)<GranicusEvent>(.*?)</GranicusEvent>`)
	exceptionRe     = regexp.MustCompile(`(?s)<ExceptionMessage>(.*?)</ExceptionMessage>`)

	// Non-greedy first match per tag, tolerant of attributes. The upstream
	// XML is not reliably well-formed, so encoding/xml is not an option.
	granicusTagRes = func() map[string]*regexp.Regexp {
		res := make(map[string]*regexp.Regexp)
		for _, tag := range []string{"EventId", "EventDate", "EventTime", "EventLocation", "EventBodyName"} {
			res[tag] = regexp.MustCompile(`(?s)<` + tag + `(?:\s[^>]*)?>(.*?)</` + tag + `>`)
		}
		return res
	}()
)

// detectGranicusXML claims bodies carrying the Granicus record delimiter.
func (a *LegistarAdapter) detectGranicusXML(body []byte) ([]RawEventRecord, string, bool) {
	if !bytes.Contains(body, []byte("<GranicusEvent>")) {
		return nil, "", false
	}

	var records []RawEventRecord
	for _, m := range granicusEventRe.FindAllSubmatch(body, -1) {
		block := string(m[1])
		dt := buildDateTime(xmlTag(block, "EventDate"), xmlTag(block, "EventTime"))
		if dt == "" {
			continue
		}
		id := xmlTag(block, "EventId")
		title := xmlTag(block, "EventBodyName")
		if title == "" {
			title = "Meeting"
		}
		records = append(records, RawEventRecord{
			ExternalID: id,
			Title:      title,
			DateTime:   dt,
			Location:   xmlTag(block, "EventLocation"),
			DetailURL:  a.detailURL(id),
		})
	}
	return records, "", true
}

// detectErrorEnvelope claims upstream error payloads and surfaces the
// human-readable message for diagnostics. It yields no events.
func (a *LegistarAdapter) detectErrorEnvelope(body []byte) ([]RawEventRecord, string, bool) {
	if !bytes.Contains(body, []byte("<Error>")) {
		return nil, "", false
	}
	msg := "unknown Legistar API error"
	if m := exceptionRe.FindSubmatch(body); m != nil {
		msg = strings.TrimSpace(string(m[1]))
	}
	return nil, "legistar api error: " + msg, true
}

// richRecord maps a detailed Legistar record, preserving the published
// detail link when present.
func (a *LegistarAdapter) richRecord(m map[string]any) RawEventRecord {
	id := fieldString(m["EventId"])
	title := fieldString(m["EventBodyName"])
	if title == "" {
		title = "Meeting"
	}
	detail := fieldString(m["EventInSiteURL"])
	if detail == "" {
		detail = a.detailURL(id)
	}
	return RawEventRecord{
		ExternalID: id,
		Title:      title,
		DateTime:   buildDateTime(fieldString(m["EventDate"]), fieldString(m["EventTime"])),
		Location:   fieldString(m["EventLocation"]),
		DetailURL:  detail,
	}
}

// genericRecord maps a record through the field-alias resolver. Records with
// no resolvable date are dropped here.
func (a *LegistarAdapter) genericRecord(m map[string]any) (RawEventRecord, bool) {
	dt := buildDateTime(resolveField(m, dateAliases), resolveField(m, timeAliases))
	if dt == "" {
		return RawEventRecord{}, false
	}
	id := resolveField(m, idAliases)
	title := resolveField(m, titleAliases)
	if title == "" {
		title = "Meeting"
	}
	return RawEventRecord{
		ExternalID: id,
		Title:      title,
		DateTime:   dt,
		Location:   resolveField(m, locationAliases),
		DetailURL:  a.detailURL(id),
	}, true
}

func (a *LegistarAdapter) detailURL(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf("https://%s.legistar.com/MeetingDetail.aspx?ID=%s", a.cfg.Client, id)
}

func xmlTag(block, tag string) string {
	re, ok := granicusTagRes[tag]
	if !ok {
		return ""
	}
	m := re.FindStringSubmatch(block)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
