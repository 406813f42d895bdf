package moderation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSensitive(t *testing.T) {
	keywords := NewKeywords([]string{"dragon"})

	tests := []struct {
		content   string
		sensitive bool
	}{
		{"this book is fucking amazing", true},
		{"great read, highly recommend", false},
		{"Truyện này NGU quá", true},
		{"the DRAGON was my favorite character", true},
		{"", false},
		{"a perfectly fine story", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.sensitive, keywords.IsSensitive(tt.content), "content %q", tt.content)
	}
}

func TestAddKeyword(t *testing.T) {
	keywords := NewKeywords(nil)

	assert.True(t, keywords.Add("Boring"))
	assert.Contains(t, keywords.Custom(), "boring")
	assert.True(t, keywords.IsSensitive("what a boring book"))

	// Re-adding is a no-op, also against builtins.
	assert.False(t, keywords.Add("boring"))
	assert.False(t, keywords.Add("BORING"))
	assert.False(t, keywords.Add("spam"))
	assert.Len(t, keywords.Custom(), 1)
}

func TestRemoveKeyword(t *testing.T) {
	keywords := NewKeywords([]string{"boring"})

	assert.True(t, keywords.Remove("boring"))
	assert.Empty(t, keywords.Custom())
	assert.False(t, keywords.IsSensitive("what a boring book"))

	// Builtins cannot be removed.
	assert.False(t, keywords.Remove("spam"))
	assert.True(t, keywords.IsSensitive("pure spam"))
}

func TestKeywordStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.json")
	store := NewKeywordStore(path)

	// A missing file means no custom keywords yet.
	keywords, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, keywords.Custom())

	keywords.Add("boring")
	keywords.Add("overrated")
	require.NoError(t, store.Save(keywords))

	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"boring", "overrated"}, reloaded.Custom())
}

func TestKeywordStoreLoadRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := NewKeywordStore(path).Load()
	assert.Error(t, err)
}
