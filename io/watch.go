package io

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/phil-mansfield/tabular/logging"
	"github.com/phil-mansfield/tabular/math/interpolate"
	"github.com/phil-mansfield/tabular/math/mat"
	"github.com/phil-mansfield/tabular/parse"
)

// DefaultDelay is how long a Watcher waits for writes to a file to settle
// before reloading it.
const DefaultDelay = 100 * time.Millisecond

// Watcher keeps a table in sync with the file it was read from. Each change
// to the file is loaded into a new table, which replaces the old one only if
// it's valid. Tables are never modified once they're published, so readers
// can keep using an old table for as long as they like.
type Watcher[T any] struct {
	Delay time.Duration

	cfg   *parse.TableConfig
	space mat.Space[T]
	opts  []interpolate.Option
	log   *zap.Logger
	fname string

	mu      sync.Mutex
	table   atomic.Pointer[interpolate.Table[T]]
	hash    uint64
	fs      *fsnotify.Watcher
	reloads chan *interpolate.Table[T]
}

// NewWatcher loads the table described by cfg and starts watching its file.
// Call Run to start reloading it.
func NewWatcher[T any](
	cfg *parse.TableConfig, space mat.Space[T], opts ...interpolate.Option,
) (*Watcher[T], error) {
	t, err := Load(cfg, space, opts...)
	if err != nil {
		return nil, err
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	fname := filepath.Clean(cfg.Source.FileName)
	if err := fs.Add(filepath.Dir(fname)); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", fname, err)
	}

	w := &Watcher[T]{
		Delay: DefaultDelay,
		cfg:   cfg, space: space, opts: opts, log: logging.L(), fname: fname,
		hash:    Fingerprint(t, space),
		fs:      fs,
		reloads: make(chan *interpolate.Table[T], 1),
	}
	w.table.Store(t)
	return w, nil
}

// Table returns the most recent valid table.
func (w *Watcher[T]) Table() *interpolate.Table[T] { return w.table.Load() }

// Reloads returns a channel which receives each new table. Only the most
// recent table is buffered.
func (w *Watcher[T]) Reloads() <-chan *interpolate.Table[T] { return w.reloads }

// Reload reads the file again and publishes the result if it's valid and
// different from the current table. It returns true if a new table was
// published.
func (w *Watcher[T]) Reload() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	t, err := Load(w.cfg, w.space, w.opts...)
	if err != nil {
		w.log.Error("table reload failed, keeping the previous table",
			zap.String("fileName", w.fname), zap.Error(err))
		return false, err
	}

	hash := Fingerprint(t, w.space)
	if hash == w.hash {
		return false, nil
	}
	w.hash = hash
	w.table.Store(t)
	w.log.Info("table reloaded",
		zap.String("fileName", w.fname), zap.Int("rows", t.Len()))

	select {
	case w.reloads <- t:
	default:
		select {
		case <-w.reloads:
		default:
		}
		select {
		case w.reloads <- t:
		default:
		}
	}
	return true, nil
}

// Run reloads the table whenever its file changes, until ctx is canceled or
// the watcher is closed.
func (w *Watcher[T]) Run(ctx context.Context) error {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 ||
				filepath.Clean(event.Name) != w.fname {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.Delay, func() { _, _ = w.Reload() })

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// Close stops watching the file.
func (w *Watcher[T]) Close() error { return w.fs.Close() }
