package disk_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wayfarerhq/wayfarer/internal/journal/filestore"
	"github.com/wayfarerhq/wayfarer/internal/journal/filestore/disk"
)

func TestStore_SaveExistsDelete(t *testing.T) {
	t.Parallel()

	store, err := disk.NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	ctx := context.Background()

	err = store.Save(ctx, "photo.png", strings.NewReader("image-bytes"), int64(len("image-bytes")))
	require.NoError(t, err)

	exists, err := store.Exists(ctx, "photo.png")
	require.NoError(t, err)
	require.True(t, exists)

	data, err := os.ReadFile(filepath.Join(store.Dir(), "photo.png"))
	require.NoError(t, err)
	require.Equal(t, "image-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "photo.png"))

	exists, err = store.Exists(ctx, "photo.png")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestStore_DeleteMissing(t *testing.T) {
	t.Parallel()

	store, err := disk.NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	err = store.Delete(context.Background(), "never-saved.png")
	require.ErrorIs(t, err, filestore.ErrNotFound)
}

func TestStore_StripsDirectoryComponents(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store, err := disk.NewStore(filepath.Join(root, "uploads"))
	require.NoError(t, err)

	ctx := context.Background()

	// A name with path components must not escape the uploads directory.
	err = store.Save(ctx, "../escape.png", strings.NewReader("x"), 1)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "escape.png"))
	require.True(t, os.IsNotExist(err), "file must not be written outside uploads dir")

	exists, err := store.Exists(ctx, "escape.png")
	require.NoError(t, err)
	require.True(t, exists)
}
