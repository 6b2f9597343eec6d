package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period Watch waits for after the last
// change before expanding again.
const DefaultDebounce = 100 * time.Millisecond

// WatchOptions configure Watch.
type WatchOptions struct {
	Debounce time.Duration
	// OnResult receives every run. Watcher errors arrive with a nil result.
	OnResult func(*Result, error)
}

// Watch expands target (a file or a directory), then expands it again each
// time one of its source files is written, created, renamed or removed.
// It returns when ctx is done.
func Watch(ctx context.Context, target string, opts Options, wopts WatchOptions) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	isDir := info.IsDir()
	if wopts.Debounce <= 0 {
		wopts.Debounce = DefaultDebounce
	}
	report := wopts.OnResult
	if report == nil {
		report = func(*Result, error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// редакторы часто заменяют файл целиком, поэтому следим за каталогом
	if isDir {
		err = watchDirRecursive(watcher, target)
	} else {
		err = watcher.Add(filepath.Dir(target))
	}
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	expand := func() {
		if isDir {
			report(ExpandDir(ctx, target, opts))
		} else {
			report(ExpandFile(ctx, target, opts))
		}
	}
	expand()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isDir && ev.Has(fsnotify.Create) {
				if fi, statErr := os.Stat(ev.Name); statErr == nil && fi.IsDir() && !skipDir(target, ev.Name) {
					if err := watchDirRecursive(watcher, ev.Name); err != nil {
						report(nil, fmt.Errorf("watch: %w", err))
					}
					pending = time.After(wopts.Debounce)
					continue
				}
			}
			if !relevantEvent(ev, target, isDir) {
				continue
			}
			pending = time.After(wopts.Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			report(nil, fmt.Errorf("watch: %w", err))
		case <-pending:
			pending = nil
			expand()
		}
	}
}

func relevantEvent(ev fsnotify.Event, target string, isDir bool) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	if !isDir {
		return filepath.Clean(ev.Name) == filepath.Clean(target)
	}
	return filepath.Ext(ev.Name) == SourceExt
}

// watchDirRecursive adds dir and its subdirectories to the watcher,
// skipping the ones a directory run skips.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if skipDir(dir, path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
