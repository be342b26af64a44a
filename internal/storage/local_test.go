package storage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/howardginsburg/ImageAIProcessor/internal/storage"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "originals", "photo.jpg", []byte("jpeg bytes")))

	data, err := store.Get(ctx, "originals", "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
}

func TestLocalStore_PutOverwrites(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "originals", "photo.jpg", []byte("v1")))
	require.NoError(t, store.Put(ctx, "originals", "photo.jpg", []byte("v2")))

	data, err := store.Get(ctx, "originals", "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}

func TestLocalStore_URL(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "resized", "photo.png", []byte("png")))

	ref, err := store.URL("resized", "photo.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "file://"), "got %s", ref)
	assert.True(t, strings.HasSuffix(ref, "/resized/photo.png"), "got %s", ref)

	_, err = store.URL("resized", "missing.png")
	assert.Error(t, err, "URL for a missing blob should fail")
}

func TestLocalStore_List(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	names, err := store.List(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, names, "missing container lists as empty")

	require.NoError(t, store.Put(ctx, "originals", "b.jpg", []byte("b")))
	require.NoError(t, store.Put(ctx, "originals", "a.jpg", []byte("a")))

	names, err = store.List(ctx, "originals")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, names)
}
