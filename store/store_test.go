package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shajib07/storefront/store"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	// Absent key reads as empty string, not an error
	val, err := s.Get(ctx, "auth.token")
	assert.NoError(t, err)
	assert.Empty(t, val)

	assert.NoError(t, s.Set(ctx, "auth.token", "abc"))
	val, err = s.Get(ctx, "auth.token")
	assert.NoError(t, err)
	assert.Equal(t, "abc", val)

	assert.NoError(t, s.Remove(ctx, "auth.token"))
	val, _ = s.Get(ctx, "auth.token")
	assert.Empty(t, val)

	// Removing an absent key is a no-op
	assert.NoError(t, s.Remove(ctx, "auth.token"))
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")

	t.Run("Roundtrip", func(t *testing.T) {
		s := store.NewFileStore(path)
		require.NoError(t, s.Set(ctx, "auth.token", "abc"))
		require.NoError(t, s.Set(ctx, "auth.refresh", "def"))

		val, err := s.Get(ctx, "auth.token")
		assert.NoError(t, err)
		assert.Equal(t, "abc", val)
	})

	t.Run("Survives Reopen", func(t *testing.T) {
		s := store.NewFileStore(path)
		val, err := s.Get(ctx, "auth.refresh")
		assert.NoError(t, err)
		assert.Equal(t, "def", val)
	})

	t.Run("Remove", func(t *testing.T) {
		s := store.NewFileStore(path)
		require.NoError(t, s.Remove(ctx, "auth.token"))

		val, err := s.Get(ctx, "auth.token")
		assert.NoError(t, err)
		assert.Empty(t, val)

		// other keys untouched
		val, _ = s.Get(ctx, "auth.refresh")
		assert.Equal(t, "def", val)
	})

	t.Run("Missing File Reads Empty", func(t *testing.T) {
		s := store.NewFileStore(filepath.Join(t.TempDir(), "never-written.json"))
		val, err := s.Get(ctx, "anything")
		assert.NoError(t, err)
		assert.Empty(t, val)
	})
}
