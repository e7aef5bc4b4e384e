package cache

import (
	"context"
	"time"

	"github.com/koopa0/shortener/internal/model"
)

// Null is the disabled-cache path: every Get misses, every write is a no-op.
// Used when caching is turned off in config or when Redis initialization
// fails at startup, eliminating the need for callers to nil-check a cache.
type Null struct{}

func (Null) Get(context.Context, string) (*model.Link, bool, error) { return nil, false, nil }
func (Null) Set(context.Context, *model.Link, time.Duration) error  { return nil }
func (Null) SetAbsent(context.Context, string) error                { return nil }
func (Null) Del(context.Context, string) error                      { return nil }
