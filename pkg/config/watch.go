package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dd0wney/realm-atlas/pkg/logging"
)

// watchDebounce collapses the burst of events an editor save produces
const watchDebounce = 100 * time.Millisecond

// Watch calls onChange whenever the config file at path is written or
// replaced, until ctx is cancelled. The parent directory is watched so
// editors that save by rename are still noticed.
func Watch(ctx context.Context, path string, logger logging.Logger, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug("watching config file", logging.String("path", abs))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending = time.After(watchDebounce)

		case <-pending:
			pending = nil
			logger.Info("config file changed", logging.String("path", abs))
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", logging.Error(err))
		}
	}
}
