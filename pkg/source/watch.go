package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-multiselect/pkg/option"
)

// DefaultReloadDelay coalesces bursts of writes into one reload.
const DefaultReloadDelay = 100 * time.Millisecond

// ReloadFunc observes each reload attempt. err is non-nil when the file could
// not be read; the previous options stay in effect.
type ReloadFunc func(options []option.Option, err error)

// Watcher serves the options of a YAML file and reloads them when the file
// changes on disk.
type Watcher struct {
	path     string
	delay    time.Duration
	onReload ReloadFunc

	mu      sync.RWMutex
	options []option.Option

	fsWatcher *fsnotify.Watcher
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithReloadDelay overrides DefaultReloadDelay.
func WithReloadDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithOnReload registers fn to run after every reload attempt.
func WithOnReload(fn ReloadFunc) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// Watch loads path and starts watching its directory. The watcher stops when
// ctx is cancelled or Close is called.
func Watch(ctx context.Context, path string, opts ...WatcherOption) (*Watcher, error) {
	options, err := LoadYAML(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("source: create watcher: %w", err)
	}

	w := &Watcher{
		path:      filepath.Clean(path),
		delay:     DefaultReloadDelay,
		options:   options,
		fsWatcher: fsw,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	// Editors often replace files by rename, so the directory is watched.
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("source: watch directory %s: %w", dir, err)
	}

	w.wg.Add(1)
	go w.loop(ctx)
	return w, nil
}

// Options implements Source with the most recently loaded options.
func (w *Watcher) Options(ctx context.Context) ([]option.Option, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]option.Option{}, w.options...), nil
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	w.wg.Wait()
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

		case <-ctx.Done():
			go w.Close()
			return

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	options, err := LoadYAML(w.path)
	if err == nil {
		w.mu.Lock()
		w.options = options
		w.mu.Unlock()
	}
	if w.onReload != nil {
		w.onReload(options, err)
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
