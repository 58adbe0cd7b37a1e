// Package cache provides file-based caching with TTL expiration for fetched company collections.
//
// Remote record sources (http, redis) can be slow or rate limited, and CLI invocations are
// short-lived, so the last successful fetch is kept on disk:
//   - File-based storage in ~/.companydir/cache/ (one JSON file per key)
//   - Configurable TTL via config file, COMPANYDIR_CACHE_TTL, or the --cache-ttl flag
//   - Expired entries are removed on read and by CleanupExpired
//   - SHA256-based file names so arbitrary keys (URLs, redis addresses) are filesystem safe
package cache
