package storage

import (
	"context"
	"testing"
	"time"

	"github.com/koopa0/shortener/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryImplementsStoreContract(t *testing.T) {
	var s Store = NewMemory()
	ctx := context.Background()

	link := &model.Link{ID: 1, Code: "mem1", OriginalURL: "https://example.com", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, s.CreateLink(ctx, link))

	err := s.CreateLink(ctx, &model.Link{ID: 2, Code: "mem1", OriginalURL: "https://other.example"})
	assert.ErrorIs(t, err, model.ErrCodeTaken)

	got, err := s.GetByCode(ctx, "mem1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got.OriginalURL)

	// Mutating the returned pointer must not affect the stored record.
	got.OriginalURL = "https://mutated.example"
	reread, err := s.GetByCode(ctx, "mem1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", reread.OriginalURL)

	require.NoError(t, s.Close())
}
