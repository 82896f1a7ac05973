package navigation

import (
	"path/filepath"
	"strings"
)

// FileEntry describes one addressable item of a navigation source.
// Entries are treated as immutable once handed to a Context.
type FileEntry struct {
	Path          string
	Name          string
	IsDir         bool
	Size          *uint64
	Modified      *int64 // unix seconds
	ThumbnailHash *uint64
}

// NewFileEntry builds an entry with no optional metadata.
func NewFileEntry(path, name string, isDir bool) FileEntry {
	return FileEntry{Path: path, Name: name, IsDir: isDir}
}

// WithSize returns a copy of e carrying size.
func (e FileEntry) WithSize(size uint64) FileEntry {
	e.Size = &size
	return e
}

// WithModified returns a copy of e carrying a unix modification time.
func (e FileEntry) WithModified(unix int64) FileEntry {
	e.Modified = &unix
	return e
}

// WithThumbnailHash returns a copy of e carrying a thumbnail identity.
func (e FileEntry) WithThumbnailHash(hash uint64) FileEntry {
	e.ThumbnailHash = &hash
	return e
}

// Ext returns the lowercase extension without the leading dot.
func (e FileEntry) Ext() string {
	return extOf(e.Name)
}

// IsImage reports whether the entry is a regular file with an image extension.
func (e FileEntry) IsImage() bool {
	return !e.IsDir && IsImagePath(e.Name)
}

var imageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"webp": {},
	"bmp":  {},
	"ico":  {},
	"tiff": {},
	"tif":  {},
}

// IsImagePath reports whether path has one of the supported image extensions.
func IsImagePath(path string) bool {
	_, ok := imageExtensions[extOf(path)]
	return ok
}

// ImageExtensions lists the supported extensions (without dots).
func ImageExtensions() []string {
	exts := make([]string, 0, len(imageExtensions))
	for ext := range imageExtensions {
		exts = append(exts, ext)
	}
	return exts
}

func extOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(ext[1:])
}
