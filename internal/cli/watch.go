package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher calls back whenever one file is written or replaced.
type fileWatcher struct {
	w      *fsnotify.Watcher
	path   string
	logger *slog.Logger
}

// newFileWatcher starts watching path. The parent directory is watched so
// that editors which replace the file on save are noticed too.
func newFileWatcher(path string, logger *slog.Logger) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &fileWatcher{w: w, path: filepath.Clean(path), logger: logger}, nil
}

// Run calls onChange after every write to the file until ctx is done.
// Errors from onChange are logged and do not stop the watch.
func (fw *fileWatcher) Run(ctx context.Context, onChange func() error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			fw.logger.Debug("file changed", "path", fw.path, "op", ev.Op.String())
			if err := onChange(); err != nil {
				fw.logger.Warn("decode after change failed", "path", fw.path, "error", err)
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", fw.path, err)
		}
	}
}

// Close stops watching.
func (fw *fileWatcher) Close() error {
	return fw.w.Close()
}
