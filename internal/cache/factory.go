package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config mirrors SPEC_FULL.md's [cache] config section. Open does not use
// Expire: cached links are stored with the TTL passed to Set.
type Config struct {
	Enabled bool
	Addr    string
	Prefix  string
	Expire  time.Duration
}

// Open constructs the configured cache. A Redis connectivity failure at
// startup falls back to Null rather than failing the process — caching is
// an optimization, not a correctness requirement (SPEC_FULL.md §7: CacheError
// is always non-fatal).
func Open(ctx context.Context, cfg Config) Cache {
	if !cfg.Enabled {
		return Null{}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return Null{}
	}
	return New(rdb, cfg.Prefix)
}
