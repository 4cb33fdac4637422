package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/glassgovernment/legistar-sync/internal/debuglog"
)

// eventsTableID is the stable structural marker for the calendar grid on
// Legistar's server-rendered calendar pages.
const eventsTableID = "ctl00_ContentPlaceHolder1_gvEvents"

// Layouts the date cell has been observed in, most common first.
var calendarDateLayouts = []string{
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"January 2, 2006",
	"2006-01-02",
}

// HTMLTableAdapter scrapes a Legistar calendar page that has no usable API.
// The page exposes no durable event ids, so external ids are synthesized
// from the source tag and row index. Row-position ids are not stable if the
// upstream reorders rows; a content hash would survive reordering but would
// change identity for every already-synced event, so switching is a
// migration rather than a drop-in fix.
type HTMLTableAdapter struct {
	name    string
	pageURL string
	httpc   *http.Client
	diag    *debuglog.Log
}

func NewHTMLTable(name, pageURL string, diag *debuglog.Log) *HTMLTableAdapter {
	return &HTMLTableAdapter{
		name:    name,
		pageURL: pageURL,
		httpc:   newHTTPClient(30 * time.Second),
		diag:    diag,
	}
}

func (a *HTMLTableAdapter) Name() string { return a.name }

func (a *HTMLTableAdapter) SourceTag() string { return a.name }

func (a *HTMLTableAdapter) Fetch(ctx context.Context, debug bool) FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.pageURL, nil)
	if err != nil {
		return a.failf("building request for %s: %v", a.name, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.httpc.Do(req)
	if err != nil {
		return a.failf("fetch error for %s: %v", a.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return a.failf("reading response for %s: %v", a.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return a.failf("upstream returned HTTP %d for %s", resp.StatusCode, a.name)
	}

	if debug {
		return FetchResult{Raw: string(body)}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return a.failf("parse error for %s: %v", a.name, err)
	}

	records := a.parseTable(doc)
	if len(records) == 0 {
		diag := "no events parsed from calendar page"
		a.diag.Printf("%s: %s", a.name, diag)
		return FetchResult{Diagnostic: diag}
	}
	return FetchResult{Records: records}
}

// parseTable walks the event grid: header row skipped, rows with fewer than
// three cells (date, title, location) silently skipped.
func (a *HTMLTableAdapter) parseTable(doc *goquery.Document) []RawEventRecord {
	var records []RawEventRecord

	doc.Find("table#" + eventsTableID + " tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		dateText := strings.TrimSpace(cells.Eq(0).Text())
		titleCell := cells.Eq(1)
		title := strings.TrimSpace(titleCell.Text())
		location := strings.TrimSpace(cells.Eq(2).Text())

		dt := parseCalendarDate(dateText)
		if dt == "" {
			a.diag.Printf("%s: unparseable date cell %q at row %d", a.name, dateText, i)
			return
		}

		detail, _ := titleCell.Find("a[href]").First().Attr("href")

		records = append(records, RawEventRecord{
			ExternalID: a.name + "-" + strconv.Itoa(i),
			Title:      title,
			DateTime:   dt,
			Location:   location,
			DetailURL:  detail,
		})
	})

	return records
}

// parseCalendarDate turns a table date cell into a UTC-tagged ISO string.
func parseCalendarDate(s string) string {
	for _, layout := range calendarDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Format("2006-01-02T15:04:05Z")
		}
	}
	return ""
}

func (a *HTMLTableAdapter) failf(format string, args ...any) FetchResult {
	msg := fmt.Sprintf(format, args...)
	a.diag.Printf("%s", msg)
	return FetchResult{Diagnostic: msg}
}
