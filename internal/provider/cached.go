package provider

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rshade/companydir/internal/cache"
	"github.com/rshade/companydir/internal/company"
	"github.com/rshade/companydir/internal/logging"
)

// Cache lookup label values.
const (
	cacheHit     = "hit"
	cacheMiss    = "miss"
	cacheExpired = "expired"
	cacheInvalid = "invalid"
)

// cacheLookups counts on-disk cache lookups.
//
//   - companydir_provider_cache_total{source, result} (Counter)
var cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "companydir_provider_cache_total",
	Help: "Cached collection lookups by source and result",
}, []string{"source", "result"})

// cached serves the collection from a FileStore and refills it from the wrapped provider.
type cached struct {
	next   Provider
	store  *cache.FileStore
	key    string
	source string
}

// Cached wraps p with an on-disk cache stored under key. A cache entry that cannot be read or
// decoded is treated as a miss; failing to write the cache never fails the fetch.
func Cached(p Provider, store *cache.FileStore, key, source string) Provider {
	return &cached{next: p, store: store, key: key, source: source}
}

func (c *cached) Fetch(ctx context.Context) ([]company.Company, error) {
	log := logging.FromContext(ctx)

	if records, ok := c.load(ctx); ok {
		return records, nil
	}

	records, err := c.next.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(records)
	if err == nil {
		err = c.store.Set(c.key, data)
	}
	if err != nil {
		log.Warn().Ctx(ctx).Str("component", "provider").Str("source", c.source).Err(err).
			Msg("failed to write cache entry")
	}
	return records, nil
}

// load returns the cached collection when a fresh, valid entry exists.
func (c *cached) load(ctx context.Context) ([]company.Company, bool) {
	log := logging.FromContext(ctx)

	entry, err := c.store.Get(c.key)
	switch {
	case err == nil:
	case errors.Is(err, cache.ErrCacheNotFound):
		cacheLookups.WithLabelValues(c.source, cacheMiss).Inc()
		return nil, false
	case errors.Is(err, cache.ErrCacheExpired):
		cacheLookups.WithLabelValues(c.source, cacheExpired).Inc()
		return nil, false
	default:
		cacheLookups.WithLabelValues(c.source, cacheInvalid).Inc()
		log.Warn().Ctx(ctx).Str("component", "provider").Err(err).Msg("unreadable cache entry")
		_ = c.store.Delete(c.key)
		return nil, false
	}

	var records []company.Company
	if err = json.Unmarshal(entry.Data, &records); err == nil {
		records, err = validated(records)
	}
	if err != nil {
		cacheLookups.WithLabelValues(c.source, cacheInvalid).Inc()
		log.Warn().Ctx(ctx).Str("component", "provider").Err(err).Msg("discarding invalid cache entry")
		_ = c.store.Delete(c.key)
		return nil, false
	}

	cacheLookups.WithLabelValues(c.source, cacheHit).Inc()
	log.Debug().Ctx(ctx).Str("component", "provider").Str("source", c.source).
		Dur("age", entry.Age()).Dur("expires_in", entry.TimeUntilExpiration()).Int("count", len(records)).
		Msg("serving companies from cache")
	return records, true
}

func (c *cached) Lookup(ctx context.Context, id string) (company.Company, bool, error) {
	return lookup(ctx, c, id)
}

func (c *cached) Close() error { return Close(c.next) }
