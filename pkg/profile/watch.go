package profile

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a profile file when it changes on disk and hands the
// fresh profile to a callback. A reload that fails to parse is logged and
// dropped: a half-saved edit must not replace the profile currently serving.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *zap.Logger
	done    chan struct{}
}

// Watch starts watching path and invokes onReload with each successfully
// reloaded profile. Close releases the watcher.
func Watch(path string, logger *zap.Logger, onReload func(*Profile)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		watcher: fw,
		logger:  logger,
		done:    make(chan struct{}),
	}

	go w.run(path, onReload)
	return w, nil
}

func (w *Watcher) run(path string, onReload func(*Profile)) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			p, err := Load(path)
			if err != nil {
				w.logger.Warn("profile reload failed, keeping previous",
					zap.String("path", path),
					zap.Error(err),
				)
				continue
			}

			w.logger.Info("profile reloaded", zap.String("path", path))
			onReload(p)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("profile watcher error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
