package fs

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
	"golang.org/x/text/unicode/norm"
)

// ListOptions controls filtering and ordering of directory listings.
type ListOptions struct {
	ShowHidden bool
	SortBy     string
	Descending bool
}

// List reads dir and returns its entries ordered per opts. Symlinks to
// directories are reported as directories.
func List(dir string, opts ListOptions) ([]navigation.FileEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperr.FromOS(dir, err)
	}

	entries := make([]navigation.FileEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		fullPath := filepath.Join(dir, name)

		if ShouldHideFromListing(fullPath, name) {
			continue
		}
		if !opts.ShowHidden && IsHidden(fullPath, name) {
			continue
		}

		entry, ok := entryFor(fullPath, name, de)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	SortEntries(entries, opts.SortBy, opts.Descending)
	return entries, nil
}

func entryFor(fullPath, name string, de os.DirEntry) (navigation.FileEntry, bool) {
	info, err := de.Info()
	if err != nil {
		return navigation.FileEntry{}, false
	}

	isDir := info.IsDir()
	if info.Mode()&os.ModeSymlink != 0 {
		if target, statErr := os.Stat(fullPath); statErr == nil {
			isDir = target.IsDir()
			info = target
		}
	}

	entry := navigation.NewFileEntry(fullPath, norm.NFC.String(name), isDir).
		WithModified(info.ModTime().Unix())
	if !isDir {
		size := uint64(info.Size())
		entry = entry.WithSize(size).
			WithThumbnailHash(ThumbnailHash(fullPath, size, info.ModTime().Unix()))
	}
	return entry, true
}

// ThumbnailHash derives a cache key from path, size and modification time so
// the key changes whenever the file does.
func ThumbnailHash(path string, size uint64, modified int64) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d", path, size, modified)
	return h.Sum64()
}
