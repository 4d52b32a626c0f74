package litservice

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the directory containing the data file and refreshes the
// service whenever the file itself changes. Events are debounced because a
// single save (temp write plus rename) produces several notifications.
// cb (if non-nil) runs after each successful refresh.
func (s *Service) Watch(ctx context.Context, logger *slog.Logger, cb func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dataPath, err := filepath.Abs(s.store.Path())
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(dataPath)); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("file", dataPath))

	var refreshTimer *time.Timer
	var refreshCh <-chan time.Time

	scheduleRefresh := func() {
		if refreshTimer == nil {
			refreshTimer = time.NewTimer(200 * time.Millisecond)
			refreshCh = refreshTimer.C
		} else {
			refreshTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if refreshTimer != nil {
				refreshTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-refreshCh:
			if err := s.Refresh(ctx); err != nil {
				logger.Warn("watcher: refresh failed", slog.String("error", err.Error()))
				continue
			}
			logger.Debug("watcher: refreshed", slog.Int("entries", s.store.Count()))
			if cb != nil {
				cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, absErr := filepath.Abs(ev.Name)
			if absErr != nil || abs != dataPath {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				scheduleRefresh()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
