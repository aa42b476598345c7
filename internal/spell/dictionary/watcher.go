package dictionary

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/spellscan/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay coalesces the burst of events an editor produces when
// saving a file.
const DefaultReloadDelay = 100 * time.Millisecond

// BuildFunc produces a fresh dictionary from its sources.
type BuildFunc func() (*Dictionary, error)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithReloadDelay sets how long the watcher waits for changes to settle.
func WithReloadDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithErrorHandler sets a function called when a rebuild fails. The
// previous dictionary stays in effect.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher rebuilds a dictionary when its files change and hands each new
// dictionary to a callback. The callback runs on the watcher's goroutine.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	build    BuildFunc
	onChange func(*Dictionary)
	onError  func(error)
	delay    time.Duration
	log      *logging.Logger

	// Watched files, by absolute path. Their parent directories are what
	// fsnotify sees, so files replaced by rename are still noticed.
	files map[string]bool
	dirs  map[string]bool

	timer   *time.Timer
	reloads atomic.Int64

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewWatcher creates a watcher that calls build after a change and passes
// the result to onChange.
func NewWatcher(build BuildFunc, onChange func(*Dictionary), opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		build:    build,
		onChange: onChange,
		delay:    DefaultReloadDelay,
		log:      logging.Null(),
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch adds a file to the watch set. Empty paths are ignored.
func (w *Watcher) Watch(path string) error {
	if path == "" {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.files[absPath] = true
	return nil
}

// Reloads returns the number of dictionaries built so far.
func (w *Watcher) Reloads() int64 {
	return w.reloads.Load()
}

// Close stops the watcher. A pending reload is dropped; one already running
// finishes before Close returns.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.stopTimer()
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				w.schedule()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error: %v", err)
			w.reportError(err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[name]
}

// schedule restarts the settle timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.stopTimer()
	w.closedWg.Add(1)
	w.timer = time.AfterFunc(w.delay, w.reload)
}

// stopTimer cancels the settle timer. Each armed timer holds a closedWg
// count, released here or when its reload returns. Called with w.mu held.
func (w *Watcher) stopTimer() {
	if w.timer != nil && w.timer.Stop() {
		w.closedWg.Done()
	}
	w.timer = nil
}

func (w *Watcher) reload() {
	defer w.closedWg.Done()

	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	d, err := w.build()
	if err != nil {
		w.log.Warn("reloading dictionary: %v", err)
		w.reportError(err)
		return
	}
	w.reloads.Add(1)
	w.log.Info("dictionary reloaded: %d words", d.Len())
	if w.onChange != nil {
		w.onChange(d)
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
