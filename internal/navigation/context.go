package navigation

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies which of the five navigation sources a Context browses.
type Kind int

const (
	KindPhysicalFolder Kind = iota
	KindTagSearch
	KindTimeline
	KindArchive
	KindSearch
)

func (k Kind) String() string {
	switch k {
	case KindPhysicalFolder:
		return "folder"
	case KindTagSearch:
		return "tags"
	case KindTimeline:
		return "timeline"
	case KindArchive:
		return "archive"
	case KindSearch:
		return "search"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Source carries the identity of a navigation source. The set of
// implementations is closed: PhysicalFolder, TagSearch, Timeline, Archive
// and Search.
type Source interface {
	Kind() Kind
	// Location is the path-like identity shown to the user.
	Location() string
	sealed()
}

// PhysicalFolder is a directory on disk.
type PhysicalFolder struct {
	Path string
}

func (PhysicalFolder) Kind() Kind         { return KindPhysicalFolder }
func (s PhysicalFolder) Location() string { return s.Path }
func (PhysicalFolder) sealed()            {}

// TagSearch is the result set of a tag query.
type TagSearch struct {
	TagIDs []int64
	Query  string
}

func (TagSearch) Kind() Kind         { return KindTagSearch }
func (s TagSearch) Location() string { return "tag:" + s.Query }
func (TagSearch) sealed()            {}

// Timeline is every item modified within [Start, End] (unix seconds).
type Timeline struct {
	Start int64
	End   int64
}

func (Timeline) Kind() Kind { return KindTimeline }
func (s Timeline) Location() string {
	const layout = "2006-01-02"
	return "timeline:" + time.Unix(s.Start, 0).UTC().Format(layout) + ".." + time.Unix(s.End, 0).UTC().Format(layout)
}
func (Timeline) sealed() {}

// Archive is a (possibly nested) directory inside an archive file.
type Archive struct {
	ArchivePath string
	InnerPath   string
	HasInner    bool
}

func (Archive) Kind() Kind { return KindArchive }
func (s Archive) Location() string {
	if !s.HasInner || s.InnerPath == "" {
		return s.ArchivePath
	}
	return s.ArchivePath + "!/" + strings.TrimPrefix(s.InnerPath, "/")
}
func (Archive) sealed() {}

// Search is a free-text search result set. Root is the folder the search
// ran under, empty when unknown.
type Search struct {
	Query string
	Root  string
}

func (Search) Kind() Kind         { return KindSearch }
func (s Search) Location() string { return "search:" + s.Query }
func (Search) sealed()            {}

// Context pairs a Source with its ordered entries and a cursor.
// The cursor is only meaningful while entries is non-empty; an empty
// context keeps index 0.
type Context struct {
	source  Source
	entries []FileEntry
	index   int
}

// NewContext copies entries so the context never aliases the caller's slice.
func NewContext(source Source, entries []FileEntry) *Context {
	if source == nil {
		source = PhysicalFolder{Path: "."}
	}
	return &Context{
		source:  source,
		entries: append([]FileEntry(nil), entries...),
	}
}

// NewFolderContext builds a PhysicalFolder context.
func NewFolderContext(path string, files []FileEntry) *Context {
	return NewContext(PhysicalFolder{Path: path}, files)
}

// NewTagSearchContext builds a TagSearch context.
func NewTagSearchContext(tagIDs []int64, query string, results []FileEntry) *Context {
	return NewContext(TagSearch{TagIDs: append([]int64(nil), tagIDs...), Query: query}, results)
}

// NewTimelineContext builds a Timeline context.
func NewTimelineContext(start, end int64, results []FileEntry) *Context {
	return NewContext(Timeline{Start: start, End: end}, results)
}

// NewArchiveContext builds an Archive context. An empty inner path means
// the archive root.
func NewArchiveContext(archivePath, innerPath string, entries []FileEntry) *Context {
	return NewContext(Archive{ArchivePath: archivePath, InnerPath: innerPath, HasInner: innerPath != ""}, entries)
}

// NewSearchContext builds a Search context for a query run under root.
func NewSearchContext(query, root string, results []FileEntry) *Context {
	return NewContext(Search{Query: query, Root: root}, results)
}

func (c *Context) Source() Source { return c.source }

func (c *Context) Kind() Kind { return c.source.Kind() }

// Entries returns the context's entries. Callers must not modify the slice.
func (c *Context) Entries() []FileEntry { return c.entries }

func (c *Context) Len() int { return len(c.entries) }

func (c *Context) Index() int { return c.index }

// SetIndex moves the cursor, clamping into [0, len-1]. It is a no-op on an
// empty context.
func (c *Context) SetIndex(index int) {
	if len(c.entries) == 0 {
		return
	}
	c.index = clamp(index, 0, len(c.entries)-1)
}

// Current returns the entry under the cursor.
func (c *Context) Current() (FileEntry, bool) {
	if len(c.entries) == 0 || c.index < 0 || c.index >= len(c.entries) {
		return FileEntry{}, false
	}
	return c.entries[c.index], true
}

// IndexOfPath returns the position of the entry with path, or -1.
func (c *Context) IndexOfPath(path string) int {
	for i, e := range c.entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}

func (c *Context) replaceEntries(entries []FileEntry) {
	prev, hadPrev := c.Current()
	c.entries = append([]FileEntry(nil), entries...)
	if len(c.entries) == 0 {
		c.index = 0
		return
	}
	if hadPrev {
		if idx := c.IndexOfPath(prev.Path); idx >= 0 {
			c.index = idx
			return
		}
	}
	c.index = clamp(c.index, 0, len(c.entries)-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
