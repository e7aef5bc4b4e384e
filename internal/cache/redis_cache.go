package cache

import (
	"context"
	"errors"
	"time"

	rediscache "github.com/go-redis/cache/v9"
	"github.com/koopa0/shortener/internal/model"
	"github.com/redis/go-redis/v9"
)

// link is the cache-wire shape. A copy of model.Link rather than the type
// itself so a future field added to Link doesn't silently change the cache
// wire format.
type link struct {
	ID          int64
	Code        string
	OriginalURL string
	Description string
	Status      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func toWire(l *model.Link) *link {
	return &link{
		ID: l.ID, Code: l.Code, OriginalURL: l.OriginalURL,
		Description: l.Description, Status: int(l.Status),
		CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt,
	}
}

func (w *link) toDomain() *model.Link {
	return &model.Link{
		ID: w.ID, Code: w.Code, OriginalURL: w.OriginalURL,
		Description: w.Description, Status: model.LinkStatus(w.Status),
		CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt,
	}
}

// negative is the sentinel value stored for a known-absent code, matching
// the teacher's "null" string convention but expressed as its own wire type
// so go-redis/cache's codec can distinguish it from a zero-value link.
type negative struct {
	Absent bool
}

// RedisCache wraps go-redis/cache/v9's typed Once/Get helpers, which layer a
// small in-process TinyLFU cache in front of the Redis round-trip — the same
// "local cache tier" idiom used for Xsxdot-aio's cache.Cache construction.
type RedisCache struct {
	client    *rediscache.Cache
	keyPrefix string
}

// New builds a RedisCache. prefix is prepended to every key (default "url:",
// matching the teacher's keyPrefix).
func New(rdb *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "url:"
	}
	c := rediscache.New(&rediscache.Options{
		Redis:      rdb,
		LocalCache: rediscache.NewTinyLFU(1000, time.Minute),
	})
	return &RedisCache{client: c, keyPrefix: prefix}
}

func (r *RedisCache) key(code string) string {
	return r.keyPrefix + code
}

// Get performs the cache-aside read: a hit returns (link, true, nil); a
// negative-cached miss returns (nil, true, nil) meaning "definitively absent,
// do not fall through to storage"; an uncached miss returns (nil, false, nil)
// meaning "ask storage".
func (r *RedisCache) Get(ctx context.Context, code string) (*model.Link, bool, error) {
	var w link
	err := r.client.Get(ctx, r.key(code), &w)
	if err == nil {
		return w.toDomain(), true, nil
	}
	if errors.Is(err, rediscache.ErrCacheMiss) {
		var neg negative
		negErr := r.client.Get(ctx, r.negKey(code), &neg)
		if negErr == nil && neg.Absent {
			return nil, true, nil
		}
		return nil, false, nil
	}
	return nil, false, err
}

func (r *RedisCache) negKey(code string) string {
	return r.keyPrefix + "null:" + code
}

// Set populates the cache with ttl; a ttl of 0 or less falls back to one
// hour. The [cache] expire setting is not applied here.
func (r *RedisCache) Set(ctx context.Context, l *model.Link, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return r.client.Set(&rediscache.Item{
		Ctx:   ctx,
		Key:   r.key(l.Code),
		Value: toWire(l),
		TTL:   ttl,
	})
}

// SetAbsent records that code does not exist, guarding storage from
// cache-penetration by repeated lookups of nonexistent codes.
func (r *RedisCache) SetAbsent(ctx context.Context, code string) error {
	return r.client.Set(&rediscache.Item{
		Ctx:   ctx,
		Key:   r.negKey(code),
		Value: &negative{Absent: true},
		TTL:   negativeTTL,
	})
}

// Del invalidates both the positive and negative entries for code.
func (r *RedisCache) Del(ctx context.Context, code string) error {
	_ = r.client.Delete(ctx, r.negKey(code))
	return r.client.Delete(ctx, r.key(code))
}
