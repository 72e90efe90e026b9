package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhtml/pkg/fsutil"
)

func TestHash(t *testing.T) {
	t.Parallel()

	// sha256("")
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", fsutil.Hash(nil))
	assert.NotEqual(t, fsutil.Hash([]byte("a")), fsutil.Hash([]byte("b")))
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		require.NoError(t, os.WriteFile(path, []byte("# hi\n"), 0o644))

		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "# hi\n", string(got))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(5), info.Size)
		assert.Equal(t, fsutil.Hash(got), info.Hash)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "whatever")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestHashFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>x</p>\n"), 0o644))

	hash, err := fsutil.HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.Hash([]byte("<p>x</p>\n")), hash)

	_, err = fsutil.HashFile(path + ".missing")
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parents", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "public", "guide", "index.html")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("<h1>x</h1>\n"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<h1>x</h1>\n", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("overwrites and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "a.html")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "a.html")
		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestWriteIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.html")

	wrote, err := fsutil.WriteIfChanged(ctx, path, []byte("x"), 0)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = fsutil.WriteIfChanged(ctx, path, []byte("x"), 0)
	require.NoError(t, err)
	assert.False(t, wrote)

	wrote, err = fsutil.WriteIfChanged(ctx, path, []byte("y"), 0)
	require.NoError(t, err)
	assert.True(t, wrote)
}
