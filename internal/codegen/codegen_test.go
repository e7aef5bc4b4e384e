package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesBounds(t *testing.T) {
	_, err := New(DefaultAlphabet, 3)
	assert.Error(t, err)

	_, err = New(DefaultAlphabet, 17)
	assert.Error(t, err)

	_, err = New("a", 6)
	assert.Error(t, err)

	g, err := New(DefaultAlphabet, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Length())
}

func TestGenerateProducesConfiguredLength(t *testing.T) {
	g, err := New(DefaultAlphabet, 8)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := g.Generate()
		require.NoError(t, err)
		assert.Len(t, code, 8)
		assert.True(t, g.IsValid(code))
		seen[code] = true
	}
	// Overwhelmingly likely to be distinct across 100 draws from a 62^8 space.
	assert.Greater(t, len(seen), 90)
}

func TestIsValidRejectsForeignCharacters(t *testing.T) {
	g, err := New("01", 4)
	require.NoError(t, err)

	assert.True(t, g.IsValid("0101"))
	assert.False(t, g.IsValid("012a"))
	assert.False(t, g.IsValid("010"))
}
