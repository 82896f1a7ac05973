package fs

import (
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
)

const defaultCounterSize = 256

type countEntry struct {
	modified time.Time
	files    int
	entries  int
}

// Counter counts the viewable files of directories, caching results until a
// directory's modification time changes.
type Counter struct {
	cache      *lru.Cache[string, countEntry]
	showHidden bool
}

// NewCounter builds a Counter holding up to size directories. size <= 0
// selects a default.
func NewCounter(size int, showHidden bool) (*Counter, error) {
	if size <= 0 {
		size = defaultCounterSize
	}
	cache, err := lru.New[string, countEntry](size)
	if err != nil {
		return nil, err
	}
	return &Counter{cache: cache, showHidden: showHidden}, nil
}

// Count returns the number of non-directory entries in dir. Hidden entries
// are skipped unless the counter was built to show them.
func (c *Counter) Count(dir string) (int, error) {
	e, err := c.lookup(dir)
	return e.files, err
}

// Entries returns the number of visible entries in dir, folders included.
func (c *Counter) Entries(dir string) (int, error) {
	e, err := c.lookup(dir)
	return e.entries, err
}

func (c *Counter) lookup(dir string) (countEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return countEntry{}, apperr.FromOS(dir, err)
	}
	if cached, ok := c.cache.Get(dir); ok && cached.modified.Equal(info.ModTime()) {
		return cached, nil
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return countEntry{}, apperr.FromOS(dir, err)
	}

	result := countEntry{modified: info.ModTime()}
	for _, de := range dirEntries {
		name := de.Name()
		fullPath := filepath.Join(dir, name)
		if ShouldHideFromListing(fullPath, name) {
			continue
		}
		if !c.showHidden && IsHidden(fullPath, name) {
			continue
		}
		result.entries++
		if !isDirEntry(fullPath, de) {
			result.files++
		}
	}

	c.cache.Add(dir, result)
	return result, nil
}

// Invalidate drops the cached count for dir.
func (c *Counter) Invalidate(dir string) {
	c.cache.Remove(dir)
}

// Cached reports how many directories currently have a cached count.
func (c *Counter) Cached() int {
	return c.cache.Len()
}

func isDirEntry(fullPath string, de os.DirEntry) bool {
	if de.IsDir() {
		return true
	}
	if de.Type()&os.ModeSymlink != 0 {
		if target, err := os.Stat(fullPath); err == nil {
			return target.IsDir()
		}
	}
	return false
}
