package fs

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 150 * time.Millisecond

// Watcher reports changes to a single watched directory. Bursts of events are
// coalesced into one notification per debounce window.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	changes  chan string
	errs     chan error

	mu      sync.Mutex
	current string
	timer   *time.Timer

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher starts a watcher. debounce <= 0 selects a default.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	w := &Watcher{
		fw:       fw,
		debounce: debounce,
		changes:  make(chan string, 1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changes delivers the path of the watched directory after it changed.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Errors delivers watcher failures.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Watch replaces the watched directory with dir. An empty dir stops watching.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir == w.current {
		return nil
	}
	if w.current != "" {
		_ = w.fw.Remove(w.current)
	}
	w.current = ""
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	if dir == "" {
		return nil
	}
	if err := w.fw.Add(dir); err != nil {
		return err
	}
	w.current = dir
	return nil
}

// Watching returns the directory currently watched.
func (w *Watcher) Watching() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			w.schedule()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	dir := w.current
	if dir == "" {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stale := w.current != dir
		w.mu.Unlock()
		if stale {
			return
		}
		select {
		case <-w.done:
		case w.changes <- dir:
		default:
		}
	})
}
