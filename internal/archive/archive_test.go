package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

func buildZip(t *testing.T, members map[string]string) string {
	t.Helper()
	archivePath := filepath.Join(t.TempDir(), "book.cbz")
	f, err := os.Create(archivePath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return archivePath
}

func entryNames(entries []navigation.FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestListRoot(t *testing.T) {
	archivePath := buildZip(t, map[string]string{
		"page10.jpg":        "xx",
		"page2.jpg":         "x",
		"extras/cover.png":  "c",
		"extras/deep/a.jpg": "a",
		"__MACOSX/._page2":  "junk",
		".DS_Store":         "junk",
	})

	entries, err := List(archivePath, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"extras", "page2.jpg", "page10.jpg"}, entryNames(entries))

	assert.True(t, entries[0].IsDir)
	assert.Equal(t, archivePath+"!/extras", entries[0].Path)

	require.NotNil(t, entries[2].Size)
	assert.EqualValues(t, 2, *entries[2].Size)
	assert.True(t, entries[2].IsImage())
}

func TestListInner(t *testing.T) {
	archivePath := buildZip(t, map[string]string{
		"extras/cover.png":  "c",
		"extras/deep/a.jpg": "a",
		"page1.jpg":         "p",
	})

	entries, err := List(archivePath, "extras/")
	require.NoError(t, err)
	assert.Equal(t, []string{"deep", "cover.png"}, entryNames(entries))
	assert.Equal(t, archivePath+"!/extras/deep", entries[0].Path)

	entries, err = List(archivePath, "extras/deep")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, entryNames(entries))
}

func TestListErrors(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing.zip"), "")
	kind, ok := apperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, kind)

	bogus := filepath.Join(t.TempDir(), "bogus.zip")
	require.NoError(t, os.WriteFile(bogus, []byte("not a zip"), 0o644))
	_, err = List(bogus, "")
	kind, ok = apperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindArchive, kind)
}

func TestPathHelpers(t *testing.T) {
	assert.True(t, IsArchive("/x/book.CBZ"))
	assert.True(t, IsArchive("a.zip"))
	assert.False(t, IsArchive("a.rar"))

	assert.Equal(t, "/a.zip", JoinPath("/a.zip", ""))
	assert.Equal(t, "/a.zip!/dir/p.jpg", JoinPath("/a.zip", "/dir/p.jpg"))

	archivePath, inner, ok := SplitPath("/a.zip!/dir/p.jpg")
	assert.True(t, ok)
	assert.Equal(t, "/a.zip", archivePath)
	assert.Equal(t, "dir/p.jpg", inner)

	_, _, ok = SplitPath("/plain/p.jpg")
	assert.False(t, ok)

	_, _, ok = SplitPath("/pics/wow!/sub")
	assert.False(t, ok, "folder ending in ! is not an archive")

	archivePath, inner, ok = SplitPath("/pics/wow!/book.cbz!/ch1/p1.jpg")
	assert.True(t, ok)
	assert.Equal(t, "/pics/wow!/book.cbz", archivePath)
	assert.Equal(t, "ch1/p1.jpg", inner)
}
