package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takawasi/LightningFiler-sub000/internal/config"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

// blockingSearch stands in for a long walk: it reports that it started and
// then waits for cancellation.
func blockingSearch(started chan<- string, stopped chan<- error) searchFunc {
	return func(ctx context.Context, root, query string, limit int) ([]navigation.FileEntry, error) {
		started <- query
		<-ctx.Done()
		stopped <- ctx.Err()
		return nil, ctx.Err()
	}
}

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
		var zero T
		return zero
	}
}

func TestSearchDoesNotBlockInput(t *testing.T) {
	root := library(t)
	app := newTestApp(t, testAppOptions{start: filepath.Join(root, "big")})
	started := make(chan string, 1)
	stopped := make(chan error, 1)
	app.searchFn = blockingSearch(started, stopped)

	app.Dispatch(CmdSearch)
	typeText(app, "cat")
	pressKey(app, tcell.KeyEnter)
	assert.Equal(t, "cat", waitFor(t, started))

	app.Dispatch(CmdMoveRight)
	assert.Equal(t, 1, app.State().CurrentIndex(), "keys still handled while searching")

	assert.True(t, pressKey(app, tcell.KeyEscape))
	assert.ErrorIs(t, waitFor(t, stopped), context.Canceled)
	assert.Equal(t, "search cancelled", app.message)
	assert.Equal(t, filepath.Join(root, "big"), folderPath(t, app.State()), "cancelled search does not navigate")
}

func TestNewSearchCancelsPrevious(t *testing.T) {
	root := library(t)
	app := newTestApp(t, testAppOptions{start: root})
	started := make(chan string, 2)
	stopped := make(chan error, 2)
	app.searchFn = blockingSearch(started, stopped)

	app.startSearch("first", root, false)
	require.Equal(t, "first", waitFor(t, started))

	app.searchFn = app.searcher.Search
	app.startSearch("a.jpg", root, false)
	assert.ErrorIs(t, waitFor(t, stopped), context.Canceled)

	awaitSearch(t, app)
	src, ok := app.State().Context().Source().(navigation.Search)
	require.True(t, ok)
	assert.Equal(t, "a.jpg", src.Query)
}

func TestRunCancelStopsSearch(t *testing.T) {
	root := library(t)
	app := newTestApp(t, testAppOptions{start: root})
	started := make(chan string, 1)
	stopped := make(chan error, 1)
	app.searchFn = blockingSearch(started, stopped)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	sim := app.screen.(tcell.SimulationScreen)
	sim.InjectKey(tcell.KeyRune, '/', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	sim.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	assert.Equal(t, "x", waitFor(t, started))

	cancel()
	assert.ErrorIs(t, waitFor(t, done), context.Canceled)
	assert.ErrorIs(t, waitFor(t, stopped), context.Canceled)
}

func TestStaleSearchResultIgnored(t *testing.T) {
	root := library(t)
	app := newTestApp(t, testAppOptions{start: root})

	app.searchToken = 3
	assert.False(t, app.finishSearch(searchResult{token: 2, query: "old", root: root}))
	assert.Equal(t, root, folderPath(t, app.State()))
}

func TestLiveHistoryRerunsSearch(t *testing.T) {
	root := library(t)
	app := newTestApp(t, testAppOptions{
		start:  root,
		config: func(c *config.Config) { c.Navigation.History = config.HistoryLive },
	})

	app.startSearch("small", root, false)
	awaitSearch(t, app)
	require.Equal(t, []string{"small"}, entryNames(app.State()))

	app.Dispatch(CmdEnterFolder)
	require.Equal(t, filepath.Join(root, "small"), folderPath(t, app.State()))
	writeFiles(t, filepath.Join(root, "big"), "small.jpg")

	app.Dispatch(CmdBack)
	assert.Equal(t, []string{"small"}, entryNames(app.State()), "snapshot shown until the rerun lands")

	awaitSearch(t, app)
	assert.ElementsMatch(t, []string{"small", "small.jpg"}, entryNames(app.State()))
}
