package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func names(entries []navigation.FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestListOrdersDirectoriesFirstNaturally(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "img10.jpg"), 1)
	writeFile(t, filepath.Join(dir, "img2.jpg"), 1)
	writeFile(t, filepath.Join(dir, "Img1.png"), 1)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "zeta"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "alpha"), 0o755))

	entries, err := List(dir, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta", "Img1.png", "img2.jpg", "img10.jpg"}, names(entries))

	assert.True(t, entries[0].IsDir)
	assert.Nil(t, entries[0].Size)
	assert.NotNil(t, entries[0].Modified)

	require.NotNil(t, entries[2].Size)
	assert.EqualValues(t, 1, *entries[2].Size)
	assert.NotNil(t, entries[2].ThumbnailHash)
	assert.Equal(t, filepath.Join(dir, "Img1.png"), entries[2].Path)
}

func TestListDescendingKeepsDirectoriesFirst(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"), 1)
	writeFile(t, filepath.Join(dir, "b.jpg"), 1)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	entries, err := List(dir, ListOptions{Descending: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"sub", "b.jpg", "a.jpg"}, names(entries))
}

func TestListSortBySizeAndModified(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "big.jpg"), 300)
	writeFile(t, filepath.Join(dir, "small.jpg"), 10)
	writeFile(t, filepath.Join(dir, "mid.jpg"), 100)

	entries, err := List(dir, ListOptions{SortBy: SortBySize})
	require.NoError(t, err)
	assert.Equal(t, []string{"small.jpg", "mid.jpg", "big.jpg"}, names(entries))

	base := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "big.jpg"), base, base))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "small.jpg"), base.Add(time.Minute), base.Add(time.Minute)))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "mid.jpg"), base.Add(2*time.Minute), base.Add(2*time.Minute)))

	entries, err = List(dir, ListOptions{SortBy: SortByModified, Descending: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"mid.jpg", "small.jpg", "big.jpg"}, names(entries))
}

func TestListSortByType(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.png"), 1)
	writeFile(t, filepath.Join(dir, "b.gif"), 1)
	writeFile(t, filepath.Join(dir, "c.jpg"), 1)

	entries, err := List(dir, ListOptions{SortBy: SortByType})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.gif", "c.jpg", "a.png"}, names(entries))
}

func TestListHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".secret.jpg"), 1)
	writeFile(t, filepath.Join(dir, "shown.jpg"), 1)

	entries, err := List(dir, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"shown.jpg"}, names(entries))

	entries, err = List(dir, ListOptions{ShowHidden: true})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestListSymlinkToDirectoryIsDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(target, 0o755))
	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	entries, err := List(dir, ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.True(t, e.IsDir, e.Name)
	}
}

func TestListMissingDirectory(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"), ListOptions{})
	require.Error(t, err)
	kind, ok := apperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, kind)
}

func TestThumbnailHashTracksChanges(t *testing.T) {
	h := ThumbnailHash("/a.jpg", 10, 100)
	assert.Equal(t, h, ThumbnailHash("/a.jpg", 10, 100))
	assert.NotEqual(t, h, ThumbnailHash("/a.jpg", 11, 100))
	assert.NotEqual(t, h, ThumbnailHash("/a.jpg", 10, 101))
	assert.NotEqual(t, h, ThumbnailHash("/b.jpg", 10, 100))
}
