package search

import (
	"context"
	iofs "io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/fs"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
	"golang.org/x/text/unicode/norm"
)

const globMeta = "*?[{"

// DefaultLimit caps result sets when callers pass a non-positive limit.
const DefaultLimit = 500

// Result is a matched entry with its score. Glob matches all score 1.
type Result struct {
	Entry navigation.FileEntry
	Score float64
}

// Searcher finds entries below a root whose names match a query.
type Searcher struct {
	matcher    *FuzzyMatcher
	showHidden bool
}

// NewSearcher builds a Searcher. Hidden entries are skipped unless showHidden.
func NewSearcher(showHidden bool) *Searcher {
	return &Searcher{matcher: NewFuzzyMatcher(), showHidden: showHidden}
}

// IsGlob reports whether query is treated as a glob pattern.
func IsGlob(query string) bool {
	return strings.ContainsAny(query, globMeta)
}

// Search walks root and returns the best matches for query, highest score
// first with ties broken by path.
func (s *Searcher) Search(ctx context.Context, root, query string, limit int) ([]navigation.FileEntry, error) {
	results, err := s.SearchResults(ctx, root, query, limit)
	if err != nil {
		return nil, err
	}
	entries := make([]navigation.FileEntry, len(results))
	for i, r := range results {
		entries[i] = r.Entry
	}
	return entries, nil
}

// SearchResults is Search with scores attached.
func (s *Searcher) SearchResults(ctx context.Context, root, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(norm.NFC.String(query))
	if query == "" {
		return []Result{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	match, err := s.compile(query)
	if err != nil {
		return nil, err
	}

	var results []Result
	walkErr := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return apperr.FromOS(root, err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if fs.ShouldHideFromListing(path, name) || (!s.showHidden && fs.IsHidden(path, name)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		display := norm.NFC.String(name)
		if score, ok := match(display); ok {
			entry := navigation.NewFileEntry(path, display, d.IsDir())
			if info, infoErr := d.Info(); infoErr == nil {
				entry = entry.WithModified(info.ModTime().Unix())
				if !d.IsDir() {
					entry = entry.WithSize(uint64(info.Size()))
				}
			}
			results = append(results, Result{Entry: entry, Score: score})
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Entry.Path < results[j].Entry.Path
	})
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []Result{}
	}
	return results, nil
}

func (s *Searcher) compile(query string) (func(name string) (float64, bool), error) {
	if !IsGlob(query) {
		return func(name string) (float64, bool) {
			return s.matcher.Match(query, name)
		}, nil
	}

	g, err := glob.Compile(strings.ToLower(query))
	if err != nil {
		return nil, apperr.New(apperr.KindUnsupportedFormat, query, err)
	}
	return func(name string) (float64, bool) {
		if g.Match(strings.ToLower(name)) {
			return 1, true
		}
		return 0, false
	}, nil
}
