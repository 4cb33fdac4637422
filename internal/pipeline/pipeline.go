// Package pipeline orchestrates a full sync run: every source is fetched,
// canonicalized and window-filtered concurrently, then the results are
// reconciled against the store one source at a time.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/glassgovernment/legistar-sync/internal/canonical"
	"github.com/glassgovernment/legistar-sync/internal/debuglog"
	"github.com/glassgovernment/legistar-sync/internal/domain"
	"github.com/glassgovernment/legistar-sync/internal/source"
	calsync "github.com/glassgovernment/legistar-sync/internal/sync"
)

// SourceSpec binds one adapter to its identity and store category.
type SourceSpec struct {
	Adapter  source.Adapter
	Source   domain.Source
	Category string
}

// RunReport is the outcome of one full run, keyed by source name.
type RunReport struct {
	Started time.Time                    `json:"started"`
	Results map[string]domain.SyncResult `json:"results"`
}

// Pipeline owns the source specs and the last-run state shown on the status
// surface. The scheduled trigger and the manual trigger both call Run; there
// is no behavioral difference between them.
type Pipeline struct {
	sources     []SourceSpec
	engine      *calsync.Engine
	loc         *time.Location
	maxPastDays int
	logger      *slog.Logger
	diag        *debuglog.Log

	mu          sync.Mutex
	lastRun     time.Time
	lastResults map[string]domain.SyncResult
}

func New(sources []SourceSpec, engine *calsync.Engine, loc *time.Location, maxPastDays int, logger *slog.Logger, diag *debuglog.Log) *Pipeline {
	return &Pipeline{
		sources:     sources,
		engine:      engine,
		loc:         loc,
		maxPastDays: maxPastDays,
		logger:      logger,
		diag:        diag,
	}
}

// Run executes the full two-stage sync. Sources are independent, so the
// fetch stage runs one goroutine per source; a failed source contributes an
// empty event set and the others proceed unaffected. The store stage is
// sequential because the engine is not safe to run concurrently against
// itself.
func (p *Pipeline) Run(ctx context.Context) RunReport {
	started := time.Now()

	eventSets := make([][]domain.CanonicalEvent, len(p.sources))
	var wg sync.WaitGroup
	for i := range p.sources {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			eventSets[i] = p.collect(ctx, p.sources[i], started)
		}(i)
	}
	wg.Wait()

	report := RunReport{
		Started: started,
		Results: make(map[string]domain.SyncResult, len(p.sources)),
	}
	for i, spec := range p.sources {
		report.Results[spec.Adapter.Name()] = p.engine.Sync(ctx, eventSets[i], spec.Category)
	}

	p.mu.Lock()
	p.lastRun = started
	p.lastResults = report.Results
	p.mu.Unlock()

	p.logger.Info("sync run finished", "duration", time.Since(started).String())
	return report
}

// collect runs the fetch half of the pipeline for one source: adapter,
// canonicalizer, window filter.
func (p *Pipeline) collect(ctx context.Context, spec SourceSpec, now time.Time) []domain.CanonicalEvent {
	res := spec.Adapter.Fetch(ctx, false)

	var events []domain.CanonicalEvent
	dropped := 0
	for _, raw := range res.Records {
		ev, err := canonical.Canonicalize(raw, spec.Source, p.loc)
		if err != nil {
			p.diag.Printf("%s: %v", spec.Adapter.Name(), err)
			dropped++
			continue
		}
		events = append(events, *ev)
	}
	events = calsync.Retain(events, now, p.maxPastDays)

	p.logger.Info("source collected",
		"source", spec.Adapter.Name(),
		"fetched", len(res.Records),
		"dropped", dropped,
		"in_window", len(events),
	)
	return events
}

// FetchRaw performs a cache-bypassing debug fetch against one source,
// returning the verbatim upstream payload.
func (p *Pipeline) FetchRaw(ctx context.Context, name string) (source.FetchResult, bool) {
	for _, spec := range p.sources {
		if spec.Adapter.Name() == name {
			return spec.Adapter.Fetch(ctx, true), true
		}
	}
	return source.FetchResult{}, false
}

// SourceNames lists the configured sources in declaration order.
func (p *Pipeline) SourceNames() []string {
	names := make([]string, len(p.sources))
	for i, spec := range p.sources {
		names[i] = spec.Adapter.Name()
	}
	return names
}

// LastRun returns the previous run's timestamp and per-source results.
// The zero time means no run has completed yet.
func (p *Pipeline) LastRun() (time.Time, map[string]domain.SyncResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	results := make(map[string]domain.SyncResult, len(p.lastResults))
	for k, v := range p.lastResults {
		results[k] = v
	}
	return p.lastRun, results
}
