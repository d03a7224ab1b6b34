package framefile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/phanxgames/grove"
)

// Applier receives parsed frames. *grove.Renderer implements it.
type Applier interface {
	ApplyFrame(grove.Frame)
}

// Options tunes the watcher.
type Options struct {
	// Debounce is the quiet period after a change before the file is
	// reloaded. Editors often write a file in several steps. Default: 100ms.
	Debounce time.Duration
	// Logger overrides the default slog logger.
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.Debounce <= 0 {
		o.Debounce = 100 * time.Millisecond
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Watcher applies a frame file to an Applier and re-applies it whenever the
// file changes. A file that fails to parse is logged and skipped; the last
// good frame stays applied.
type Watcher struct {
	path   string
	target Applier
	opts   Options

	reloads atomic.Int64
	errors  atomic.Int64
}

// Stats are point-in-time counters.
type Stats struct {
	Reloads int64
	Errors  int64
}

// NewWatcher creates a Watcher. Call Run to start it.
func NewWatcher(path string, target Applier, opts Options) *Watcher {
	opts.defaults()
	return &Watcher{path: path, target: target, opts: opts}
}

// Stats returns the current counters.
func (w *Watcher) Stats() Stats {
	return Stats{Reloads: w.reloads.Load(), Errors: w.errors.Load()}
}

// Run applies the file once, then blocks until ctx is cancelled, reloading
// after every change. It returns an error only if the watch cannot be set up
// or the first load fails.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.opts.Logger
	if err := w.reload(); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("framefile: watch: %w", err)
	}
	defer fw.Close()

	// Watch the directory: editors that save by rename replace the file's
	// inode, which drops a watch on the file itself.
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("framefile: watch %s: %w", dir, err)
	}
	name := filepath.Clean(w.path)

	var debounce *time.Timer
	var debounceCh <-chan time.Time
	log.Info("framefile: watching", "path", w.path, "debounce", w.opts.Debounce)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			log.Info("framefile: stopped", "path", w.path)
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.NewTimer(w.opts.Debounce)
			debounceCh = debounce.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.errors.Add(1)
			log.Warn("framefile: watch error", "error", err)

		case <-debounceCh:
			debounceCh = nil
			if err := w.reload(); err != nil {
				log.Warn("framefile: reload failed, keeping last frame", "error", err)
			}
		}
	}
}

func (w *Watcher) reload() error {
	f, err := Load(w.path)
	if err != nil {
		w.errors.Add(1)
		return err
	}
	w.target.ApplyFrame(f)
	w.reloads.Add(1)
	w.opts.Logger.Debug("framefile: applied", "path", w.path, "roots", len(f.Roots))
	return nil
}
