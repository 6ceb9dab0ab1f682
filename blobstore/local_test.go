package blobstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	data := []byte("SiO2,Na2O,CaO,Tg\n0.7,0.2,0.1,820\n")
	require.NoError(t, store.Put(ctx, "datasets/tg.csv", data))

	_, err := os.Stat(filepath.Join(tmpDir, "datasets", "tg.csv"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, "datasets/tg.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 5)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "Na2O", string(buf))
	require.NoError(t, blob.Close())

	got, err := ReadAll(ctx, store, "datasets/tg.csv")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Overwrite is atomic and leaves no temp files behind.
	require.NoError(t, store.Put(ctx, "datasets/tg.csv", []byte("x")))
	require.NoError(t, store.Put(ctx, "models/tg.json", []byte("{}")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"datasets/tg.csv", "models/tg.json"}, names)

	names, err = store.List(ctx, "models/")
	require.NoError(t, err)
	assert.Equal(t, []string{"models/tg.json"}, names)
}

func TestLocalStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Open(context.Background(), "missing.json")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = ReadAll(context.Background(), store, "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_EmptyBlob(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "empty", nil))

	got, err := ReadAll(ctx, store, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}
