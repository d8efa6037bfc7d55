package site

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateStore_LookupAndRecord(t *testing.T) {
	store, err := NewStateStore(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()

	_, ok, err := store.Lookup(ctx, "content/post.md")
	require.NoError(t, err)
	require.False(t, ok)

	hash := Hash([]byte("hello"))
	require.NoError(t, store.Record(ctx, "content/post.md", hash, "public/post.html"))

	got, ok, err := store.Lookup(ctx, "content/post.md")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, hash, got)

	// Upsert replaces the hash.
	newHash := Hash([]byte("changed"))
	require.NoError(t, store.Record(ctx, "content/post.md", newHash, "public/post.html"))

	got, ok, err = store.Lookup(ctx, "content/post.md")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, newHash, got)
}

func TestStateStore_PersistsToDisk(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state", "build.db")
	ctx := context.Background()

	store, err := NewStateStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, "a.md", Hash([]byte("a")), "a.html"))
	require.NoError(t, store.Close())

	reopened, err := NewStateStore(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	_, ok, err := reopened.Lookup(ctx, "a.md")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestHash_Deterministic(t *testing.T) {
	require.Equal(t, Hash([]byte("x")), Hash([]byte("x")))
	require.NotEqual(t, Hash([]byte("x")), Hash([]byte("y")))
}
