package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"

	"github.com/takawasi/LightningFiler-sub000/internal/catalog"
	"github.com/takawasi/LightningFiler-sub000/internal/config"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

type testAppOptions struct {
	start   string
	catalog *catalog.Catalog
	config  func(*config.Config)
}

func newTestApp(t *testing.T, opts testAppOptions) *Application {
	t.Helper()
	cfg := config.Default()
	if opts.config != nil {
		opts.config(cfg)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(120, 40)

	app, err := NewApplication(Options{
		Config:         cfg,
		Screen:         screen,
		Catalog:        opts.catalog,
		StartPath:      opts.start,
		DisableWatcher: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func writeZip(t *testing.T, path string, members ...string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, name := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func setModified(t *testing.T, path string, when time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, when, when))
}

func pressKey(app *Application, key tcell.Key) bool {
	return app.HandleEvent(tcell.NewEventKey(key, 0, tcell.ModNone))
}

func typeText(app *Application, text string) {
	for _, r := range text {
		app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

// awaitSearch applies the next current search result the way Run would.
func awaitSearch(t *testing.T, app *Application) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-app.searchResults:
			if r.token != app.searchToken {
				continue
			}
			app.finishSearch(r)
			return
		case <-deadline:
			t.Fatal("search did not finish")
		}
	}
}

func entryNames(st *navigation.State) []string {
	files := st.CurrentFiles()
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

func currentName(t *testing.T, st *navigation.State) string {
	t.Helper()
	cur, ok := st.CurrentFile()
	require.True(t, ok, "no current file")
	return cur.Name
}

func folderPath(t *testing.T, st *navigation.State) string {
	t.Helper()
	src, ok := st.Context().Source().(navigation.PhysicalFolder)
	require.True(t, ok, "current source is %T", st.Context().Source())
	return src.Path
}
