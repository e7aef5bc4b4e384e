package storage

import (
	"context"
	"testing"
	"time"

	"github.com/koopa0/shortener/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore builds a gorm-backed Store against an in-memory sqlite
// database, the same ":memory:" pattern Xsxdot-aio's gorm plugin tests use.
func openTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewSqlite(SqliteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateAndGetByCode(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	link := &model.Link{
		ID:          1,
		Code:        "abc123",
		OriginalURL: "https://example.com",
		Status:      model.StatusEnabled,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, s.CreateLink(ctx, link))

	got, err := s.GetByCode(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got.OriginalURL)
}

func TestCreateDuplicateCodeIsRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := &model.Link{ID: 1, Code: "dup1", OriginalURL: "https://a.example", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	second := &model.Link{ID: 2, Code: "dup1", OriginalURL: "https://b.example", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	require.NoError(t, s.CreateLink(ctx, first))
	err := s.CreateLink(ctx, second)
	assert.ErrorIs(t, err, model.ErrCodeTaken)
}

func TestGetByCodeNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetByCode(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUpdateLinkBumpsUpdatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created := time.Now().Add(-time.Hour)
	link := &model.Link{ID: 1, Code: "upd1", OriginalURL: "https://old.example", CreatedAt: created, UpdatedAt: created}
	require.NoError(t, s.CreateLink(ctx, link))

	newURL := "https://new.example"
	updated, err := s.UpdateLink(ctx, "upd1", model.LinkPatch{OriginalURL: &newURL})
	require.NoError(t, err)
	assert.Equal(t, newURL, updated.OriginalURL)
	assert.True(t, updated.UpdatedAt.After(created))
}

func TestUpdateLinkNotFound(t *testing.T) {
	s := openTestStore(t)
	newURL := "https://new.example"
	_, err := s.UpdateLink(context.Background(), "ghost", model.LinkPatch{OriginalURL: &newURL})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeleteLinkAndDeleteLinks(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateLink(ctx, &model.Link{ID: 1, Code: "del1", OriginalURL: "https://x.example", CreatedAt: time.Now(), UpdatedAt: time.Now()}))
	require.NoError(t, s.CreateLink(ctx, &model.Link{ID: 2, Code: "del2", OriginalURL: "https://y.example", CreatedAt: time.Now(), UpdatedAt: time.Now()}))

	require.NoError(t, s.DeleteLink(ctx, "del1"))
	_, err := s.GetByCode(ctx, "del1")
	assert.ErrorIs(t, err, model.ErrNotFound)

	count, err := s.DeleteLinks(ctx, []int64{2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDeleteLinksEmptyIsNoop(t *testing.T) {
	s := openTestStore(t)
	count, err := s.DeleteLinks(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestListLinksPaginationAndFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		st := model.StatusEnabled
		if i%2 == 0 {
			st = model.StatusDisabled
		}
		require.NoError(t, s.CreateLink(ctx, &model.Link{
			ID: i, Code: "code" + string(rune('0'+i)), OriginalURL: "https://example.com",
			Status: st, CreatedAt: time.Now().Add(time.Duration(i) * time.Second), UpdatedAt: time.Now(),
		}))
	}

	disabled := model.StatusDisabled
	rows, total, err := s.ListLinks(ctx, model.LinkFilter{Status: &disabled}, model.Page{Number: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	rows, total, err = s.ListLinks(ctx, model.LinkFilter{}, model.Page{Number: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rows, 2)
}

func TestInsertAndListEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.InsertEvent(ctx, &model.AccessEvent{
			ID: int64(i + 1), Code: "abc123", IP: "203.0.113.1",
			AccessedAt: time.Now(), CreatedAt: time.Now(),
		}))
	}

	rows, total, err := s.ListEvents(ctx, model.EventFilter{Code: "abc123"}, model.Page{Number: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 3)

	count, err := s.DeleteEvents(ctx, []int64{rows[0].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
