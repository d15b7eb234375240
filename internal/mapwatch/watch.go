// Package mapwatch reloads the occupancy map when its file changes.
package mapwatch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/katalvlaran/patrol/grid"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// ApplyFunc installs a freshly loaded map. A non-nil error rejects it.
type ApplyFunc func(g *grid.Grid) error

// Watch observes the map file at path until ctx is cancelled. After each
// settled change the file is parsed with grid.Load and handed to apply.
// Unparsable or rejected maps are logged and the previous map stays active.
//
// The parent directory is watched rather than the file, so replace-by-rename
// saves are seen too.
func Watch(ctx context.Context, path string, logger *slog.Logger, apply ApplyFunc) error {
	return WatchWithDebounce(ctx, path, DefaultDebounce, logger, apply)
}

// WatchWithDebounce is Watch with an explicit debounce interval.
func WatchWithDebounce(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger, apply ApplyFunc) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}

	logger.Info("mapwatch: started", slog.String("path", target))

	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(debounce)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("mapwatch: stopped")
			return nil

		case <-fire:
			reload(target, logger, apply)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				logger.Debug("mapwatch: change", slog.String("op", ev.Op.String()))
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("mapwatch: error", slog.String("error", watchErr.Error()))
		}
	}
}

func reload(path string, logger *slog.Logger, apply ApplyFunc) {
	g, err := grid.Load(path)
	if err != nil {
		logger.Warn("mapwatch: load failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	if err := apply(g); err != nil {
		logger.Warn("mapwatch: map rejected", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	logger.Info("mapwatch: map reloaded",
		slog.String("path", path),
		slog.Int("rows", g.Rows()),
		slog.Int("cols", g.Cols()))
}
