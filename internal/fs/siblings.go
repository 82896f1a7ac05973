package fs

import (
	"path/filepath"

	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
	"golang.org/x/text/unicode/norm"
)

// Siblings returns the folders immediately before and after dir within its
// parent, in listing order. With skipEmpty, folders with no visible entries
// are passed over; a folder holding only subfolders still counts. Empty strings mean there is no sibling in that direction.
func Siblings(dir string, skipEmpty bool, opts ListOptions, counter *Counter) (prev, next string, err error) {
	dir = filepath.Clean(dir)
	parent := filepath.Dir(dir)
	if parent == dir {
		return "", "", nil
	}

	entries, err := List(parent, opts)
	if err != nil {
		return "", "", err
	}

	folders := make([]navigation.FileEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir {
			folders = append(folders, e)
		}
	}

	self := norm.NFC.String(filepath.Base(dir))
	idx := -1
	for i, f := range folders {
		if f.Name == self {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", "", nil
	}

	usable := func(path string) bool {
		if !skipEmpty || counter == nil {
			return true
		}
		n, countErr := counter.Entries(path)
		return countErr == nil && n > 0
	}

	for i := idx - 1; i >= 0; i-- {
		if usable(folders[i].Path) {
			prev = folders[i].Path
			break
		}
	}
	for i := idx + 1; i < len(folders); i++ {
		if usable(folders[i].Path) {
			next = folders[i].Path
			break
		}
	}
	return prev, next, nil
}
