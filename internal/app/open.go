package app

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/archive"
	"github.com/takawasi/LightningFiler-sub000/internal/fs"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

// openPath opens a folder, an archive, or the folder holding a file with the
// cursor on it. Opening an image file starts in the viewer.
func (app *Application) openPath(target string) error {
	abs, err := filepath.Abs(target)
	if err != nil {
		return apperr.FromOS(target, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return apperr.FromOS(abs, err)
	}

	switch {
	case info.IsDir():
		return app.openFolder(abs, "")
	case archive.IsArchive(abs):
		return app.openArchive(abs, "", "")
	default:
		if err := app.openFolder(filepath.Dir(abs), abs); err != nil {
			return err
		}
		if navigation.IsImagePath(abs) {
			app.mode = ModeViewer
		}
		return nil
	}
}

func (app *Application) openFolder(dir, focus string) error {
	entries, err := fs.List(dir, app.listOpts)
	if err != nil {
		return err
	}
	app.navigate(navigation.NewFolderContext(dir, entries), focus)
	return nil
}

func (app *Application) openArchive(archivePath, inner, focus string) error {
	entries, err := archive.List(archivePath, inner)
	if err != nil {
		return err
	}
	app.navigate(navigation.NewArchiveContext(archivePath, inner, entries), focus)
	return nil
}

func (app *Application) navigate(ctx *navigation.Context, focus string) {
	if focus != "" {
		if idx := ctx.IndexOfPath(focus); idx >= 0 {
			ctx.SetIndex(idx)
		}
	}
	if app.started {
		app.state.NavigateTo(ctx)
	} else {
		// The start location replaces the empty initial context.
		app.state.ReplaceCurrent(ctx)
		app.started = true
	}
	app.mode = ModeBrowse
	app.syncWatcher()
	app.log.Debug().Str("kind", ctx.Kind().String()).Str("location", ctx.Source().Location()).Int("entries", ctx.Len()).Int("cached_counts", app.counter.Cached()).Msg("navigate")
}

// enter opens the item under the cursor. Folders holding at most the
// configured number of files skip the grid and open straight in the viewer.
func (app *Application) enter() {
	decision := app.state.ShouldEnterViewer(app.state.EnterThreshold())
	cur, ok := app.state.CurrentFile()
	if !ok {
		return
	}

	if decision.View {
		if _, _, member := app.archiveMember(cur); !member && archive.IsArchive(cur.Path) {
			app.setError(app.openArchive(cur.Path, "", ""))
			return
		}
		app.mode = ModeViewer
		return
	}

	count, err := app.countFiles(cur)
	if err != nil {
		app.setError(err)
		return
	}
	decision = navigation.ResolveEnter(decision, count, app.state.EnterThreshold())

	if err := app.openDirEntry(cur); err != nil {
		app.setError(err)
		return
	}
	if decision.View {
		app.viewFirstFile()
	}
}

func (app *Application) openDirEntry(entry navigation.FileEntry) error {
	if archivePath, inner, ok := app.archiveMember(entry); ok {
		return app.openArchive(archivePath, inner, "")
	}
	return app.openFolder(entry.Path, "")
}

// countFiles counts the non-directory entries of a directory entry.
func (app *Application) countFiles(entry navigation.FileEntry) (int, error) {
	archivePath, inner, ok := app.archiveMember(entry)
	if !ok {
		return app.counter.Count(entry.Path)
	}
	entries, err := archive.List(archivePath, inner)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir {
			n++
		}
	}
	return n, nil
}

func (app *Application) viewFirstFile() {
	for i, e := range app.state.CurrentFiles() {
		if !e.IsDir {
			app.state.SetIndex(i)
			app.mode = ModeViewer
			return
		}
	}
}

// upFolder moves to the parent of the current location. Result views have
// no parent and step back through history instead.
func (app *Application) upFolder() {
	switch src := app.state.Context().Source().(type) {
	case navigation.PhysicalFolder:
		parent := filepath.Dir(src.Path)
		if parent == src.Path {
			return
		}
		app.setError(app.openFolder(parent, src.Path))
	case navigation.Archive:
		if src.InnerPath == "" {
			app.setError(app.openFolder(filepath.Dir(src.ArchivePath), src.ArchivePath))
			return
		}
		inner := strings.Trim(src.InnerPath, "/")
		parent := path.Dir(inner)
		if parent == "." {
			parent = ""
		}
		app.setError(app.openArchive(src.ArchivePath, parent, archive.JoinPath(src.ArchivePath, inner)))
	default:
		if app.state.GoBack() {
			app.afterHistoryMove()
		}
	}
}

// sibling moves to the next or previous folder beside the current one,
// keeping viewer mode when the new folder has something to view.
func (app *Application) sibling(next bool) {
	src, ok := app.state.Context().Source().(navigation.PhysicalFolder)
	if !ok {
		return
	}
	prev, nxt, err := fs.Siblings(src.Path, app.cfg.Navigation.SkipEmptySiblings, app.listOpts, app.counter)
	if err != nil {
		app.setError(err)
		return
	}
	target := prev
	if next {
		target = nxt
	}
	if target == "" {
		app.setMessage("no more folders")
		return
	}

	viewer := app.mode == ModeViewer
	entries, err := fs.List(target, app.listOpts)
	if err != nil {
		app.setError(err)
		return
	}
	ctx := navigation.NewFolderContext(target, entries)
	if app.cfg.Navigation.SiblingHistory {
		app.navigate(ctx, "")
	} else {
		app.state.ReplaceCurrent(ctx)
		app.mode = ModeBrowse
		app.syncWatcher()
	}
	if viewer {
		app.viewFirstFile()
	}
}

func (app *Application) syncWatcher() {
	if app.watcher == nil {
		return
	}
	dir := ""
	if src, ok := app.state.Context().Source().(navigation.PhysicalFolder); ok {
		dir = src.Path
	}
	if dir == app.watcher.Watching() {
		return
	}
	if err := app.watcher.Watch(dir); err != nil {
		app.log.Warn().Err(err).Str("path", dir).Msg("watch failed")
	}
}

// archiveMember splits entry's path when the current view lists an archive.
// Entries of every other view are real filesystem paths.
func (app *Application) archiveMember(entry navigation.FileEntry) (archivePath, inner string, ok bool) {
	if _, listing := app.state.Context().Source().(navigation.Archive); !listing {
		return "", "", false
	}
	return archive.SplitPath(entry.Path)
}
