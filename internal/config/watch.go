package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/gopoly/pkg/watcher"
)

// Loader produces the effective configuration, usually the file with the
// command line overrides applied on top
type Loader func() (Config, error)

// FileLoader loads path without overrides
func FileLoader(path string) Loader {
	return func() (Config, error) { return Load(path) }
}

// Watch calls load whenever path changes and hands valid configurations to
// apply. Invalid edits are logged and skipped. apply runs on a watcher
// goroutine; callers hop to their UI thread themselves.
func Watch(path string, load Loader, logger *slog.Logger, apply func(Config)) (*watcher.FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if load == nil {
		load = FileLoader(path)
	}
	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, logger)
	if err != nil {
		return nil, err
	}
	err = fw.Watch([]string{path}, func(changed string) {
		if _, err := os.Stat(changed); err != nil {
			logger.Debug("config file gone, keeping current settings", "path", changed)
			return
		}
		cfg, err := load()
		if err != nil {
			logger.Warn("config reload failed", "path", changed, "error", err)
			return
		}
		logger.Info("config reloaded", "path", changed)
		apply(cfg)
	})
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}
	fw.Start()
	return fw, nil
}
