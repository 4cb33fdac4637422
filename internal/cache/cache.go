// Package cache provides a short-TTL Redis cache in front of a source
// adapter, keyed per source. Debug fetches bypass it entirely and failed
// fetches never populate it, so the next request retries immediately.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glassgovernment/legistar-sync/internal/source"
)

// TTL matches the original edge cache: fresh enough for a daily sync
// cadence, short enough that upstream corrections show up the same day.
const TTL = 15 * time.Minute

const keyPrefix = "srccache:"

// CachedAdapter wraps one adapter invocation. Entries are immutable once
// written; there is no stale-while-revalidate behavior.
type CachedAdapter struct {
	inner  source.Adapter
	client *redis.Client
	logger *slog.Logger
}

func Wrap(inner source.Adapter, client *redis.Client, logger *slog.Logger) *CachedAdapter {
	return &CachedAdapter{inner: inner, client: client, logger: logger}
}

func (c *CachedAdapter) Name() string { return c.inner.Name() }

func (c *CachedAdapter) SourceTag() string { return c.inner.SourceTag() }

func (c *CachedAdapter) Fetch(ctx context.Context, debug bool) source.FetchResult {
	if debug {
		return c.inner.Fetch(ctx, true)
	}

	key := keyPrefix + c.inner.Name()

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cached source.FetchResult
		if json.Unmarshal(data, &cached) == nil {
			return cached
		}
		// Unreadable entry: fall through and overwrite it.
	} else if err != redis.Nil {
		// Redis being down must not take the pipeline down with it.
		c.logger.Warn("edge cache read failed", "source", c.inner.Name(), "error", err)
	}

	res := c.inner.Fetch(ctx, false)
	if res.Diagnostic != "" && len(res.Records) == 0 {
		return res
	}

	if data, err := json.Marshal(res); err == nil {
		if err := c.client.Set(ctx, key, data, TTL).Err(); err != nil {
			c.logger.Warn("edge cache write failed", "source", c.inner.Name(), "error", err)
		}
	}
	return res
}
