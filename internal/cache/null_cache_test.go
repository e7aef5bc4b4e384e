package cache

import (
	"context"
	"testing"
	"time"

	"github.com/koopa0/shortener/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNullCacheAlwaysMisses(t *testing.T) {
	var c Cache = Null{}
	ctx := context.Background()

	link, found, err := c.Get(ctx, "abc123")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, link)

	assert.NoError(t, c.Set(ctx, &model.Link{Code: "abc123"}, time.Minute))
	assert.NoError(t, c.SetAbsent(ctx, "abc123"))
	assert.NoError(t, c.Del(ctx, "abc123"))

	link, found, err = c.Get(ctx, "abc123")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, link)
}

func TestOpenDisabledReturnsNull(t *testing.T) {
	c := Open(context.Background(), Config{Enabled: false})
	_, ok := c.(Null)
	assert.True(t, ok)
}

func TestOpenUnreachableFallsBackToNull(t *testing.T) {
	c := Open(context.Background(), Config{Enabled: true, Addr: "127.0.0.1:1"})
	_, ok := c.(Null)
	assert.True(t, ok)
}
