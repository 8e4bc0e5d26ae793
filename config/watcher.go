package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/armsim/logging"
	"go.viam.com/armsim/utils"
)

// reloadDelay coalesces the burst of events a single save produces.
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk.
type Watcher struct {
	path    string
	logger  logging.Logger
	fsw     *fsnotify.Watcher
	workers utils.StoppableWorkers
}

// Watch starts watching path and calls onChange with every valid version of the file written after
// Watch returns. Files that fail to parse or validate are logged and skipped. The containing
// directory is watched so that editors which replace the file by renaming are followed.
func Watch(path string, logger logging.Logger, onChange func(*Config)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot resolve config path")
	}
	if _, err := formatOf(abs); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create file watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return nil, multierr.Combine(errors.Wrap(err, "cannot watch config directory"), fsw.Close())
	}

	w := &Watcher{path: abs, logger: logger, fsw: fsw}
	w.workers = utils.NewStoppableWorkers(func(ctx context.Context) {
		w.run(ctx, onChange)
	})
	return w, nil
}

func (w *Watcher) run(ctx context.Context, onChange func(*Config)) {
	schedule := debounce.New(reloadDelay)
	reload := func() {
		if ctx.Err() != nil {
			return
		}
		cfg, err := Read(w.path)
		if err != nil {
			w.logger.Warnw("ignoring config change", "path", w.path, "error", err)
			return
		}
		w.logger.Infow("config reloaded", "path", w.path)
		onChange(cfg)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			schedule(reload)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Errorw("config watcher error", "path", w.path, "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.workers.Stop()
	return errors.Wrap(w.fsw.Close(), "cannot close file watcher")
}
