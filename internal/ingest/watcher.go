package ingest

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/parsewell/invoice-tracker/constants"
)

type WatchConfig struct {
	Roots       []string // directories to watch (recursive)
	InitialScan bool     // if true, walk roots and emit existing files
	Debounce    time.Duration
	Logger      *slog.Logger
}

// StartWatcher watches the configured roots and emits paths of newly
// created or written invoice files. The returned channels close when ctx is
// done or the watcher fails.
func StartWatcher(ctx context.Context, cfg WatchConfig) (<-chan string, <-chan error, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.Roots) == 0 {
		logger.Error("watcher start failed: no roots provided")
		return nil, nil, errors.New("no roots provided")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}

	evCh := make(chan string, 256)
	errCh := make(chan error, 1)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("failed to create fsnotify watcher", "error", err)
		return nil, nil, err
	}

	// Add roots recursively; optionally emit existing files.
	addRoot := func(root string) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return w.Add(path)
			}
			if cfg.InitialScan && constants.IsAllowedExt(filepath.Ext(path)) {
				select {
				case evCh <- path:
				default:
					logger.Warn("dropping initial-scan event, channel full", "path", path)
				}
			}
			return nil
		})
	}
	for _, r := range cfg.Roots {
		if err := addRoot(r); err != nil {
			logger.Error("failed to add watch root", "root", r, "error", err)
			_ = w.Close()
			return nil, nil, err
		}
	}

	go func() {
		defer close(evCh)
		defer close(errCh)
		defer func() {
			if cerr := w.Close(); cerr != nil {
				logger.Warn("watcher close error", "error", cerr)
			}
		}()

		// Writes come in bursts; remember the last emit per path and
		// suppress duplicates inside the debounce window.
		lastEmit := make(map[string]time.Time)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&fsnotify.Create != 0 {
					// new subdirectory: watch it too
					if fi, statErr := os.Stat(ev.Name); statErr == nil && fi.IsDir() {
						if aerr := w.Add(ev.Name); aerr != nil {
							logger.Warn("failed to watch new directory", "path", ev.Name, "error", aerr)
						}
						continue
					}
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				if !constants.IsAllowedExt(filepath.Ext(ev.Name)) {
					continue
				}
				now := time.Now()
				if t, seen := lastEmit[ev.Name]; seen && now.Sub(t) < cfg.Debounce {
					continue
				}
				lastEmit[ev.Name] = now
				select {
				case evCh <- ev.Name:
				case <-ctx.Done():
					return
				}
			case werr, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Error("watcher error", "error", werr)
				select {
				case errCh <- werr:
				default:
				}
			}
		}
	}()

	return evCh, errCh, nil
}
