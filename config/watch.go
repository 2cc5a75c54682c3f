package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"temple-viewer/internal/logger"
)

// Watch reloads path whenever it is written and passes the new configuration
// to onChange. Parse errors are logged and the previous configuration stays in
// effect. onChange runs on the watcher goroutine. Watch blocks until ctx is
// done.
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	p, err := ExpandPath(path)
	if err != nil {
		return err
	}
	p, err = filepath.Abs(p)
	if err != nil {
		return fmt.Errorf("watch %q: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace files instead of writing them in place, so watch
	// the directory and filter by name.
	if err := w.Add(filepath.Dir(p)); err != nil {
		return fmt.Errorf("watch %q: %w", filepath.Dir(p), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != p || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(p)
			if err != nil {
				logger.Log.Warn("config reload failed", zap.String("path", p), zap.Error(err))
				continue
			}
			logger.Log.Info("config reloaded", zap.String("path", p))
			onChange(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Log.Warn("config watcher", zap.Error(err))
		}
	}
}
