package historysvc

import (
	"context"
	"testing"
	"time"

	"github.com/koopa0/shortener/internal/model"
	"github.com/koopa0/shortener/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAndDeleteMany(t *testing.T) {
	store := storage.NewMemory()
	svc := New(store)
	ctx := context.Background()

	require.NoError(t, store.InsertEvent(ctx, &model.AccessEvent{ID: 1, Code: "abc", IP: "1.1.1.1", AccessedAt: time.Now(), CreatedAt: time.Now()}))
	require.NoError(t, store.InsertEvent(ctx, &model.AccessEvent{ID: 2, Code: "abc", IP: "2.2.2.2", AccessedAt: time.Now(), CreatedAt: time.Now()}))

	rows, total, err := svc.List(ctx, model.EventFilter{Code: "abc"}, model.Page{Number: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	count, err := svc.DeleteMany(ctx, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, total, err = svc.List(ctx, model.EventFilter{Code: "abc"}, model.Page{Number: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
