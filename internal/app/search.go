package app

import (
	"context"
	"errors"

	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

// searchFunc matches search.Searcher.Search.
type searchFunc func(ctx context.Context, root, query string, limit int) ([]navigation.FileEntry, error)

// searchResult carries a finished background search back to the event loop.
type searchResult struct {
	token   int
	query   string
	root    string
	refresh bool
	entries []navigation.FileEntry
	err     error
}

var errSearchPending = errors.New("search running in background")

// startSearch runs query under root on its own goroutine. Only the newest
// search is delivered; starting another cancels the previous one. refresh
// means the results replace the entries of a Search view already shown.
func (app *Application) startSearch(query, root string, refresh bool) {
	app.cancelSearch()

	ctx, cancel := context.WithCancel(app.runCtx)
	app.searchToken++
	app.searchCancel = cancel
	token := app.searchToken
	limit := app.cfg.Search.MaxResults
	run := app.searchFn
	results := app.searchResults

	go func() {
		entries, err := run(ctx, root, query, limit)
		select {
		case results <- searchResult{token: token, query: query, root: root, refresh: refresh, entries: entries, err: err}:
		case <-ctx.Done():
		}
	}()

	app.log.Debug().Str("query", query).Str("root", root).Int("token", token).Msg("search started")
	if !refresh {
		app.setMessage("searching " + query + " ...")
	}
}

// cancelSearch stops the running search, if any, and reports whether one was
// running.
func (app *Application) cancelSearch() bool {
	if app.searchCancel == nil {
		return false
	}
	app.searchCancel()
	app.searchCancel = nil
	return true
}

// finishSearch applies a delivered result on the event loop.
func (app *Application) finishSearch(r searchResult) bool {
	if r.token != app.searchToken {
		return false
	}
	app.cancelSearch()

	if r.err != nil {
		if errors.Is(r.err, context.Canceled) {
			return false
		}
		app.setError(r.err)
		return true
	}

	if r.refresh {
		src, ok := app.state.Context().Source().(navigation.Search)
		if !ok || src.Query != r.query || src.Root != r.root {
			return false
		}
		app.state.Refresh(r.entries)
		return true
	}

	app.navigate(navigation.NewSearchContext(r.query, r.root, r.entries), "")
	if len(r.entries) == 0 {
		app.setMessage("no matches")
	} else {
		app.setMessage("")
	}
	app.log.Debug().Str("query", r.query).Int("results", len(r.entries)).Msg("search finished")
	return true
}
