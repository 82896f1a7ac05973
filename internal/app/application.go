package app

import (
	"context"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/takawasi/LightningFiler-sub000/internal/apperr"
	"github.com/takawasi/LightningFiler-sub000/internal/catalog"
	"github.com/takawasi/LightningFiler-sub000/internal/config"
	"github.com/takawasi/LightningFiler-sub000/internal/fs"
	"github.com/takawasi/LightningFiler-sub000/internal/logging"
	"github.com/takawasi/LightningFiler-sub000/internal/navigation"
	"github.com/takawasi/LightningFiler-sub000/internal/search"
	inputui "github.com/takawasi/LightningFiler-sub000/internal/ui/input"
	renderui "github.com/takawasi/LightningFiler-sub000/internal/ui/render"
)

// Mode selects how the current context is presented.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeViewer
)

func (m Mode) String() string {
	if m == ModeViewer {
		return "viewer"
	}
	return "browse"
}

const flashDuration = 100 * time.Millisecond

// Options configures a new Application.
type Options struct {
	Config *config.Config
	Logger *logging.Logger
	// Screen overrides the terminal screen; tests pass a simulation screen.
	Screen tcell.Screen
	// Catalog backs tag and timeline views. It may be nil.
	Catalog *catalog.Catalog
	// StartPath is a folder, archive or file to open first. Empty means the
	// working directory.
	StartPath string
	// DisableWatcher skips filesystem watching.
	DisableWatcher bool
}

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	cfg      *config.Config
	log      *logging.Logger
	state    *navigation.State
	keymap   *inputui.Keymap
	renderer *renderui.Renderer
	counter  *fs.Counter
	searcher *search.Searcher
	catalog  *catalog.Catalog
	watcher  *fs.Watcher
	listOpts fs.ListOptions
	startDir string

	mode       Mode
	prompt     *prompt
	helpOpen   bool
	message    string
	lastErr    error
	flashUntil time.Time
	shouldQuit bool
	started    bool

	clipboardCmd   []string
	clipboardAvail bool

	runCtx        context.Context
	searchFn      searchFunc
	searchResults chan searchResult
	searchCancel  context.CancelFunc
	searchToken   int
}

// NewApplication builds the application and opens the start path.
func NewApplication(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	keymap, err := inputui.NewKeymap(cfg.Keybindings)
	if err != nil {
		return nil, err
	}

	counter, err := fs.NewCounter(0, cfg.Filer.ShowHidden)
	if err != nil {
		return nil, err
	}

	screen := opts.Screen
	if screen == nil {
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		if err := screen.Init(); err != nil {
			return nil, err
		}
		_ = flushConsoleInput()
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	clipboardCmd, clipboardAvail := detectClipboard()

	app := &Application{
		screen:   screen,
		cfg:      cfg,
		log:      logger.With("app"),
		state:    navigation.New(cfg.Navigation.EnterThreshold),
		keymap:   keymap,
		renderer: renderui.NewRenderer(screen),
		counter:  counter,
		searcher: search.NewSearcher(cfg.Filer.ShowHidden),
		catalog:  opts.Catalog,
		listOpts: fs.ListOptions{
			ShowHidden: cfg.Filer.ShowHidden,
			SortBy:     cfg.Filer.SortBy,
			Descending: cfg.Filer.SortOrder == "desc",
		},
		startDir:       cwd,
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
		runCtx:         context.Background(),
		searchResults:  make(chan searchResult, 1),
	}
	app.searchFn = app.searcher.Search

	if cfg.Navigation.History == config.HistoryLive {
		app.state.SetReloader(navigation.ReloaderFunc(app.reload))
	}

	if !opts.DisableWatcher {
		if w, werr := fs.NewWatcher(0); werr != nil {
			app.log.Warn().Err(werr).Msg("filesystem watcher unavailable")
		} else {
			app.watcher = w
		}
	}

	app.resize()

	start := opts.StartPath
	if start == "" {
		start = cwd
	}
	if err := app.openPath(start); err != nil {
		app.Close()
		return nil, err
	}

	app.log.Info().Str("path", app.state.CurrentPath()).Str("config", cfg.String()).Msg("started")
	return app, nil
}

// Close releases the screen and background resources.
func (app *Application) Close() error {
	app.cancelSearch()
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
	app.screen.Fini()
	return nil
}

// State exposes the navigation state.
func (app *Application) State() *navigation.State { return app.state }

// Mode reports the current presentation mode.
func (app *Application) Mode() Mode { return app.mode }

// LastError returns the error shown on the status line, if any.
func (app *Application) LastError() error { return app.lastErr }

// CurrentPath returns the location to print on exit.
func (app *Application) CurrentPath() string {
	if src, ok := app.state.Context().Source().(navigation.PhysicalFolder); ok {
		return src.Path
	}
	return app.startDir
}

func (app *Application) resize() {
	w, h := app.screen.Size()
	grid := renderui.GridFor(w, h)
	app.state.UpdateGrid(grid.Columns, grid.VisibleRows)
}

func (app *Application) setError(err error) {
	if err == nil {
		return
	}
	app.lastErr = err
	app.message = ""
	ev := app.log.Warn()
	if !apperr.Recoverable(err) {
		ev = app.log.Error()
	}
	ev.Err(err).Str("location", app.state.CurrentPath()).Msg("command failed")
}

func (app *Application) setMessage(msg string) {
	app.message = msg
	app.lastErr = nil
}

func (app *Application) frame() renderui.Frame {
	f := renderui.Frame{
		Viewer:  app.mode == ModeViewer,
		Message: app.message,
		Err:     app.lastErr,
		Flash:   time.Now().Before(app.flashUntil),
	}
	if app.prompt != nil {
		f.Prompt = &renderui.Prompt{Label: app.prompt.kind.label(), Text: string(app.prompt.text)}
	}
	if app.helpOpen {
		f.Help = app.helpEntries()
	}
	return f
}

func (app *Application) render() {
	app.renderer.Render(app.state, app.frame())
}
