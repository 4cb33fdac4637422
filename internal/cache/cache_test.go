package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/glassgovernment/legistar-sync/internal/source"
)

// countingAdapter records how often it is invoked and returns a canned result.
type countingAdapter struct {
	name  string
	calls int
	res   source.FetchResult
}

func (a *countingAdapter) Name() string { return a.name }

func (a *countingAdapter) SourceTag() string { return a.name }

func (a *countingAdapter) Fetch(ctx context.Context, debug bool) source.FetchResult {
	a.calls++
	if debug {
		return source.FetchResult{Raw: "raw payload"}
	}
	return a.res
}

func setupCache(t *testing.T, inner source.Adapter) (*CachedAdapter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Wrap(inner, client, logger), mr
}

func okResult() source.FetchResult {
	return source.FetchResult{
		Records: []source.RawEventRecord{
			{ExternalID: "1", Title: "Common Council", DateTime: "2025-06-12T18:30:00Z"},
		},
	}
}

func TestFetch_HitDoesNotReinvokeAdapter(t *testing.T) {
	inner := &countingAdapter{name: "madison", res: okResult()}
	c, _ := setupCache(t, inner)
	ctx := context.Background()

	first := c.Fetch(ctx, false)
	second := c.Fetch(ctx, false)

	if inner.calls != 1 {
		t.Errorf("expected 1 adapter invocation, got %d", inner.calls)
	}
	if len(first.Records) != 1 || len(second.Records) != 1 {
		t.Fatal("both fetches should return the cached records")
	}
	if second.Records[0] != first.Records[0] {
		t.Error("cache hit should return the stored response unchanged")
	}
}

func TestFetch_DebugBypassesAndNeverStores(t *testing.T) {
	inner := &countingAdapter{name: "madison", res: okResult()}
	c, mr := setupCache(t, inner)
	ctx := context.Background()

	res := c.Fetch(ctx, true)
	if res.Raw != "raw payload" {
		t.Errorf("debug fetch should pass through, got %+v", res)
	}
	if mr.Exists(keyPrefix + "madison") {
		t.Error("debug response must not be cached")
	}

	// A debug fetch after a cached normal fetch still bypasses the cache.
	c.Fetch(ctx, false)
	c.Fetch(ctx, true)
	if inner.calls != 3 {
		t.Errorf("expected 3 adapter invocations, got %d", inner.calls)
	}
}

func TestFetch_FailureDoesNotPopulateCache(t *testing.T) {
	inner := &countingAdapter{
		name: "madison",
		res:  source.FetchResult{Diagnostic: "fetch error for madison: timeout"},
	}
	c, mr := setupCache(t, inner)
	ctx := context.Background()

	c.Fetch(ctx, false)
	if mr.Exists(keyPrefix + "madison") {
		t.Error("failed fetch must not be cached")
	}

	c.Fetch(ctx, false)
	if inner.calls != 2 {
		t.Errorf("expected an immediate retry, got %d invocations", inner.calls)
	}
}

func TestFetch_EntryExpiresAfterTTL(t *testing.T) {
	inner := &countingAdapter{name: "madison", res: okResult()}
	c, mr := setupCache(t, inner)
	ctx := context.Background()

	c.Fetch(ctx, false)
	mr.FastForward(TTL + time.Minute)
	c.Fetch(ctx, false)

	if inner.calls != 2 {
		t.Errorf("expected re-fetch after TTL expiry, got %d invocations", inner.calls)
	}
}

func TestFetch_EmptySuccessIsCached(t *testing.T) {
	// An upstream that genuinely has no events is still a successful fetch
	// and should be cached to spare it from hammering.
	inner := &countingAdapter{name: "madison", res: source.FetchResult{}}
	c, _ := setupCache(t, inner)
	ctx := context.Background()

	c.Fetch(ctx, false)
	c.Fetch(ctx, false)

	if inner.calls != 1 {
		t.Errorf("expected empty successful result to be cached, got %d invocations", inner.calls)
	}
}
