// Package cache implements the read-through cache layer in front of the
// Storage Engine for code-to-link lookups. Adapted from the teacher's
// internal/storage/redis.go: the cache-aside read path, write-through
// population on create, and null-sentinel cache-penetration protection all
// survive, relocated out of the storage package (cache is derived state, not
// a storage backend) and rebuilt on the typed go-redis/cache/v9 helper.
package cache

import (
	"context"
	"time"

	"github.com/koopa0/shortener/internal/model"
)

// Cache is the narrow contract the link service depends on. Two
// implementations exist: Redis (redis_cache.go) and Null (null_cache.go),
// selected at startup by Config.Enabled.
type Cache interface {
	// Get returns (link, found, err). found=true with a nil link means the
	// code is negatively cached (known absent); found=false means the
	// caller must consult storage.
	Get(ctx context.Context, code string) (*model.Link, bool, error)
	Set(ctx context.Context, link *model.Link, ttl time.Duration) error
	// SetAbsent records that code is known not to exist, guarding storage
	// from repeated lookups of missing codes (cache penetration).
	SetAbsent(ctx context.Context, code string) error
	Del(ctx context.Context, code string) error
}

// negativeTTL bounds how long a negative cache entry ("this code does not
// exist") is kept; it is cached briefly to protect storage from repeated
// lookups of missing codes (cache penetration).
const negativeTTL = time.Minute
