package archive

import (
	"errors"
	iofs "io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/fs"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
	"golang.org/x/text/unicode/norm"
)

// Separator joins an archive path and a path inside it.
const Separator = "!/"

var extensions = map[string]struct{}{
	".zip": {},
	".cbz": {},
}

// IsArchive reports whether path names a supported archive.
func IsArchive(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// JoinPath builds the display path of inner within archivePath.
func JoinPath(archivePath, inner string) string {
	inner = strings.Trim(inner, "/")
	if inner == "" {
		return archivePath
	}
	return archivePath + Separator + inner
}

// SplitPath reverses JoinPath. It splits at the first separator that follows
// a supported archive name, so folders whose names end in "!" are not taken
// for archives. ok is false when p does not point inside an archive.
func SplitPath(p string) (archivePath, inner string, ok bool) {
	for offset := 0; ; {
		idx := strings.Index(p[offset:], Separator)
		if idx < 0 {
			return p, "", false
		}
		idx += offset
		if IsArchive(p[:idx]) {
			return p[:idx], p[idx+len(Separator):], true
		}
		offset = idx + len(Separator)
	}
}

// List returns the direct children of inner within the archive. Directories
// that only exist implicitly through member paths are synthesised.
func List(archivePath, inner string) ([]navigation.FileEntry, error) {
	rc, err := zip.OpenReader(archivePath)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) || errors.Is(err, iofs.ErrPermission) {
			return nil, apperr.FromOS(archivePath, err)
		}
		return nil, apperr.New(apperr.KindArchive, archivePath, err)
	}
	defer rc.Close()

	prefix := strings.Trim(inner, "/")
	if prefix != "" {
		prefix += "/"
	}

	seen := make(map[string]struct{})
	var entries []navigation.FileEntry
	for _, f := range rc.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := strings.TrimPrefix(name, prefix)
		if rest == "" {
			continue
		}

		child, remainder, nested := strings.Cut(rest, "/")
		if hiddenMember(child) {
			continue
		}
		isDir := nested || f.FileInfo().IsDir()
		if _, dup := seen[child]; dup {
			continue
		}

		childPath := path.Join(strings.TrimSuffix(prefix, "/"), child)
		entry := navigation.NewFileEntry(JoinPath(archivePath, childPath), norm.NFC.String(child), isDir)
		if !f.Modified.IsZero() {
			entry = entry.WithModified(f.Modified.Unix())
		}
		if !isDir && remainder == "" {
			entry = entry.WithSize(f.UncompressedSize64).
				WithThumbnailHash(fs.ThumbnailHash(entry.Path, f.UncompressedSize64, f.Modified.Unix()))
		}
		seen[child] = struct{}{}
		entries = append(entries, entry)
	}

	fs.SortEntries(entries, fs.SortByName, false)
	return entries, nil
}

func hiddenMember(name string) bool {
	return name == "__MACOSX" || strings.HasPrefix(name, ".")
}
