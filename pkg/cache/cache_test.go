package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhtml/pkg/cache"
	"github.com/yaklabco/mdhtml/pkg/fsutil"
)

func openCache(t *testing.T) (*cache.Cache, string) {
	t.Helper()

	dir := t.TempDir()
	c, err := cache.Open(filepath.Join(dir, "state", "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, dir
}

func storeRendered(t *testing.T, c *cache.Cache, dir, html string) cache.Entry {
	t.Helper()

	output := filepath.Join(dir, "doc.html")
	require.NoError(t, os.WriteFile(output, []byte(html), 0o644))

	entry := cache.Entry{
		Source:      "doc.md",
		Output:      output,
		SourceHash:  "src",
		OptionsHash: "opts",
		OutputHash:  fsutil.Hash([]byte(html)),
	}
	require.NoError(t, c.Store(context.Background(), entry))

	return entry
}

// docKey is the key under which storeRendered records doc.md.
func docKey(dir string) cache.Key {
	return cache.Key{
		Source:      "doc.md",
		Output:      filepath.Join(dir, "doc.html"),
		SourceHash:  "src",
		OptionsHash: "opts",
	}
}

func TestLookup_Hit(t *testing.T) {
	t.Parallel()

	c, dir := openCache(t)
	stored := storeRendered(t, c, dir, "<p>x</p>\n")

	entry, ok, err := c.Lookup(context.Background(), docKey(dir))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, stored.Output, entry.Output)
	assert.WithinDuration(t, time.Now(), entry.RenderedAt, time.Minute)
}

func TestLookup_Misses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unknown source", func(t *testing.T) {
		t.Parallel()

		c, dir := openCache(t)
		key := docKey(dir)
		key.Source = "other.md"
		_, ok, err := c.Lookup(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("source changed", func(t *testing.T) {
		t.Parallel()

		c, dir := openCache(t)
		storeRendered(t, c, dir, "<p>x</p>\n")

		key := docKey(dir)
		key.SourceHash = "src2"
		_, ok, err := c.Lookup(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("options changed", func(t *testing.T) {
		t.Parallel()

		c, dir := openCache(t)
		storeRendered(t, c, dir, "<p>x</p>\n")

		key := docKey(dir)
		key.OptionsHash = "opts2"
		_, ok, err := c.Lookup(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("output target moved", func(t *testing.T) {
		t.Parallel()

		c, dir := openCache(t)
		storeRendered(t, c, dir, "<p>x</p>\n")

		key := docKey(dir)
		key.Output = filepath.Join(dir, "public", "doc.html")
		_, ok, err := c.Lookup(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, "an entry written elsewhere must not satisfy a new target")
	})

	t.Run("output deleted", func(t *testing.T) {
		t.Parallel()

		c, dir := openCache(t)
		entry := storeRendered(t, c, dir, "<p>x</p>\n")
		require.NoError(t, os.Remove(entry.Output))

		_, ok, err := c.Lookup(ctx, docKey(dir))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("output edited", func(t *testing.T) {
		t.Parallel()

		c, dir := openCache(t)
		entry := storeRendered(t, c, dir, "<p>x</p>\n")
		require.NoError(t, os.WriteFile(entry.Output, []byte("tampered"), 0o644))

		_, ok, err := c.Lookup(ctx, docKey(dir))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStore_Replaces(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, dir := openCache(t)
	entry := storeRendered(t, c, dir, "<p>x</p>\n")

	entry.SourceHash = "src2"
	require.NoError(t, c.Store(ctx, entry))

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	key := docKey(dir)
	key.SourceHash = "src2"
	_, ok, err := c.Lookup(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Forget(ctx, "doc.md"))
	n, err = c.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_Persists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cache.db")

	c, err := cache.Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path())
	storeRendered(t, c, dir, "<hr />\n")
	require.NoError(t, c.Close())

	reopened, err := cache.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	_, ok, err := reopened.Lookup(context.Background(), docKey(dir))
	require.NoError(t, err)
	assert.True(t, ok)
}
