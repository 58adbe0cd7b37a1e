package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rshade/companydir/internal/company"
)

// errKeyMissing is reported when the configured key does not exist.
var errKeyMissing = errors.New("key not found")

// RedisOptions configures a Redis source.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
	Timeout  time.Duration
}

// Redis reads a JSON array of companies stored under a single key.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis connects lazily; no I/O happens until the first fetch.
func NewRedis(opts RedisOptions) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.Timeout,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})
	return NewRedisFromClient(client, opts.Key)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client, key string) *Redis {
	return &Redis{client: client, key: key}
}

// Fetch GETs the key and decodes its value.
func (r *Redis) Fetch(ctx context.Context) ([]company.Company, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, unavailable(fmt.Errorf("redis %s: %w", r.key, errKeyMissing))
		}
		return nil, unavailable(fmt.Errorf("redis get %s: %w", r.key, err))
	}

	var records []company.Company
	if unmarshalErr := json.Unmarshal(data, &records); unmarshalErr != nil {
		return nil, unavailable(fmt.Errorf("decoding redis %s: %w", r.key, unmarshalErr))
	}
	return validated(records)
}

// Lookup fetches the collection and searches it for id.
func (r *Redis) Lookup(ctx context.Context, id string) (company.Company, bool, error) {
	return lookup(ctx, r, id)
}

// Publish stores records under the key, replacing any previous collection.
func (r *Redis) Publish(ctx context.Context, records []company.Company) error {
	if err := company.Validate(records); err != nil {
		return err
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding companies: %w", err)
	}
	if setErr := r.client.Set(ctx, r.key, data, 0).Err(); setErr != nil {
		return fmt.Errorf("redis set %s: %w", r.key, setErr)
	}
	return nil
}

// Close releases the client's connections.
func (r *Redis) Close() error {
	return r.client.Close()
}
