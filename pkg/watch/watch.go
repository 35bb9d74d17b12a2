// Package watch reruns a rebuild whenever manifests or asset files change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/mrhapile/respack/pkg/logging"
)

const DefaultDebounce = 200 * time.Millisecond

type Watcher struct {
	fs       *fsnotify.Watcher
	ignore   map[string]bool
	debounce time.Duration
	log      *log.Logger
}

type Option func(*Watcher)

// WithDebounce sets how long the tree must stay quiet before a rebuild.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithIgnore skips events on the given files, typically the rebuild outputs.
func WithIgnore(paths ...string) Option {
	return func(w *Watcher) {
		for _, p := range paths {
			w.ignore[clean(p)] = true
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) {
		w.log = logging.Sender(l, logging.TagWatch)
	}
}

// New watches every path. Directories are watched recursively; for files the
// containing directory is watched so editors that replace files are seen.
func New(paths []string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:       fsw,
		ignore:   make(map[string]bool),
		debounce: DefaultDebounce,
		log:      logging.Sender(nil, logging.TagWatch),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, p := range paths {
		if err := w.add(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return w.fs.Add(filepath.Dir(path))
	}
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return w.fs.Add(walkPath)
		}
		return nil
	})
}

// Run calls rebuild after each burst of changes until ctx is done. Rebuild
// errors are logged and watching continues. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context, rebuild func() error) error {
	defer w.fs.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case e, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if w.ignore[clean(e.Name)] {
				continue
			}
			if e.Has(fsnotify.Create) {
				if fi, err := os.Stat(e.Name); err == nil && fi.IsDir() {
					if err := w.add(e.Name); err != nil {
						w.log.Warn("failed to watch new directory", "dir", e.Name, "err", err)
					}
				}
			}
			w.log.Debug("change detected", "file", e.Name, "op", e.Op.String())
			timer.Reset(w.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			w.log.Info("rebuilding")
			if err := rebuild(); err != nil {
				w.log.Error("rebuild failed", "err", err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Error(err.Error())
		}
	}
}

func clean(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
