package provider

import (
	"context"
	"fmt"

	"github.com/rshade/companydir/internal/cache"
	"github.com/rshade/companydir/internal/config"
	"github.com/rshade/companydir/internal/logging"
)

// New builds the provider selected by cfg.Kind, wrapped with metrics and fetch sharing.
// Remote sources (http, redis) are also wrapped with the on-disk cache when it is enabled.
func New(ctx context.Context, cfg config.SourceConfig) (Provider, error) {
	logger := logging.FromContext(ctx)

	var (
		p   Provider
		err error
	)
	switch cfg.Kind {
	case config.SourceMock, "":
		p, err = NewMock(WithDelay(cfg.Mock.Delay), WithFailFirst(cfg.Mock.FailFirst))
	case config.SourceFile:
		p = NewFile(cfg.Path)
	case config.SourceHTTP:
		p = NewHTTP(cfg.URL, cfg.Timeout)
	case config.SourceRedis:
		p = NewRedis(RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
			Timeout:  cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownSource, cfg.Kind)
	}
	if err != nil {
		return nil, err
	}

	kind := cfg.Kind
	if kind == "" {
		kind = config.SourceMock
	}

	logger.Debug().
		Ctx(ctx).
		Str("component", "provider").
		Str("source", kind).
		Msg("provider configured")

	p = Instrument(p, kind)
	if cfg.Cache.Enabled && (kind == config.SourceHTTP || kind == config.SourceRedis) {
		store, storeErr := cache.NewFileStore(cfg.Cache.Dir, cfg.Cache.TTL)
		if storeErr != nil {
			logger.Warn().Ctx(ctx).Str("component", "provider").Err(storeErr).
				Msg("cache unavailable, fetching without it")
		} else {
			p = Cached(p, store, CacheKey(cfg), kind)
		}
	}

	return Share(p), nil
}

// CacheKey identifies the collection a remote source serves.
func CacheKey(cfg config.SourceConfig) string {
	switch cfg.Kind {
	case config.SourceHTTP:
		return "http:" + cfg.URL
	case config.SourceRedis:
		return fmt.Sprintf("redis:%s/%d/%s", cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Key)
	default:
		return cfg.Kind + ":" + cfg.Path
	}
}
