package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the global configuration whenever the config file is written,
// created or replaced, then calls onReload with the new value. It blocks
// until ctx is done.
func Watch(ctx context.Context, logger *slog.Logger, onReload func(*Config)) error {
	path := Get().ConfigFilePath()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors replace files on save, so watch the directory
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	logger.Info("watching config file", "path", path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := Reload(); err != nil {
				logger.Error("failed to reload config", "path", path, "error", err)
				continue
			}
			logger.Info("config reloaded", "path", path)
			if onReload != nil {
				onReload(Get())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", "error", err)
		case <-ctx.Done():
			return nil
		}
	}
}
