package fs

import (
	"sort"
	"strings"

	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort keys accepted by ListOptions.SortBy.
const (
	SortByName     = "name"
	SortBySize     = "size"
	SortByModified = "modified"
	SortByType     = "type"
)

// newNameCollator orders names naturally: "image2" before "image10".
func newNameCollator() *collate.Collator {
	return collate.New(language.Und, collate.Numeric, collate.IgnoreCase)
}

// SortEntries orders directories first, then by key. Descending reverses the
// key order but keeps directories first.
func SortEntries(entries []navigation.FileEntry, key string, descending bool) {
	col := newNameCollator()
	byName := func(a, b navigation.FileEntry) int {
		return col.CompareString(a.Name, b.Name)
	}

	compare := func(a, b navigation.FileEntry) int {
		switch key {
		case SortBySize:
			if c := cmpUint(a.Size, b.Size); c != 0 {
				return c
			}
		case SortByModified:
			if c := cmpInt(a.Modified, b.Modified); c != 0 {
				return c
			}
		case SortByType:
			if c := strings.Compare(a.Ext(), b.Ext()); c != 0 {
				return c
			}
		}
		return byName(a, b)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		c := compare(a, b)
		if descending {
			return c > 0
		}
		return c < 0
	})
}

func cmpUint(a, b *uint64) int {
	var x, y uint64
	if a != nil {
		x = *a
	}
	if b != nil {
		y = *b
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func cmpInt(a, b *int64) int {
	var x, y int64
	if a != nil {
		x = *a
	}
	if b != nil {
		y = *b
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
