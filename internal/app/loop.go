package app

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
)

// Run drives the event loop until the user quits or ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	app.runCtx = ctx
	defer func() {
		app.cancelSearch()
		app.runCtx = context.Background()
	}()
	app.render()

	eventCh := make(chan tcell.Event)
	quitEvents := make(chan struct{})
	defer close(quitEvents)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventCh <- ev:
			case <-quitEvents:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var changes <-chan string
	var watchErrs <-chan error
	if app.watcher != nil {
		changes = app.watcher.Changes()
		watchErrs = app.watcher.Errors()
	}

	for !app.shouldQuit {
		redraw := false
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventCh:
			redraw = app.HandleEvent(ev)
		case r := <-app.searchResults:
			redraw = app.finishSearch(r)
		case dir := <-changes:
			redraw = app.handleFolderChange(dir)
		case err := <-watchErrs:
			app.log.Warn().Err(err).Msg("watcher error")
		case <-sigContCh:
			redraw = app.resumeAfterStop()
		}
		if redraw && !app.shouldQuit {
			app.render()
		}
	}
	return nil
}

// HandleEvent applies one terminal event and reports whether a redraw is
// needed.
func (app *Application) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return app.handleKey(ev)
	case *tcell.EventResize:
		app.screen.Sync()
		app.resize()
		return true
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

func (app *Application) handleKey(ev *tcell.EventKey) bool {
	if app.prompt != nil {
		app.handlePromptKey(ev)
		return true
	}

	if app.helpOpen {
		switch {
		case ev.Key() == tcell.KeyCtrlC:
			app.shouldQuit = true
		case ev.Key() == tcell.KeyEscape,
			ev.Key() == tcell.KeyRune && (ev.Rune() == '?' || ev.Rune() == 'q'):
			app.helpOpen = false
		}
		return true
	}

	if ev.Key() == tcell.KeyEscape {
		if app.cancelSearch() {
			app.setMessage("search cancelled")
			return true
		}
		switch {
		case app.mode == ModeViewer:
			app.mode = ModeBrowse
		case app.state.Selection().Len() > 0:
			app.state.Selection().Clear()
		}
		app.message, app.lastErr = "", nil
		return true
	}

	cmd, ok := app.keymap.Lookup(ev)
	if !ok {
		return false
	}
	app.message, app.lastErr = "", nil
	app.Dispatch(cmd)
	return true
}

// handleFolderChange reloads the current folder after the watcher reported
// a change to dir.
func (app *Application) handleFolderChange(dir string) bool {
	app.counter.Invalidate(dir)
	src, ok := app.state.Context().Source().(navigation.PhysicalFolder)
	if !ok || src.Path != dir {
		return false
	}
	entries, err := app.reload(src)
	if err != nil {
		app.setError(err)
		return true
	}
	app.state.Refresh(entries)
	app.log.Debug().Str("path", dir).Int("entries", len(entries)).Msg("folder refreshed")
	return true
}

func (app *Application) flash() {
	app.flashUntil = time.Now().Add(flashDuration)
	time.AfterFunc(flashDuration, func() {
		_ = app.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
}
