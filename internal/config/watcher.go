package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reloads a settings file whenever it is written and hands the
// validated result to a callback on the watcher goroutine.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	logger   *logrus.Logger
	onChange func(*Config)

	closeOnce sync.Once
	done      chan struct{}
}

// Watch starts watching path until ctx is cancelled or Close is called. The
// containing directory is watched so that editors which replace the file on
// save are picked up too.
func Watch(ctx context.Context, path string, logger *logrus.Logger, onChange func(*Config)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		logger:   logger,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.run(ctx)

	logger.WithField("path", abs).Info("Watching config file")
	return w, nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("Config watcher error")
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.WithError(err).Warn("Config reload failed, keeping current settings")
		return
	}
	w.logger.WithField("path", w.path).Info("Config reloaded")
	w.onChange(cfg)
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	<-w.done
	return err
}
