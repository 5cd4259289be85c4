package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/seobuilder/internal/logfields"
)

// FileWatcher monitors catalogue directories and calls onChange once per
// burst of changes, after the debounce window has passed quietly.
type FileWatcher struct {
	dirs     []string
	match    func(name string) bool
	onChange func(paths []string)
	debounce time.Duration

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	changed map[string]struct{}
	timer   *time.Timer
}

// NewFileWatcher creates a watcher over dirs. match filters file names.
func NewFileWatcher(dirs []string, match func(string) bool, debounce time.Duration, onChange func([]string)) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &FileWatcher{
		dirs:     dirs,
		match:    match,
		onChange: onChange,
		debounce: debounce,
		watcher:  w,
		changed:  make(map[string]struct{}),
	}, nil
}

// Start adds every directory (recursively) and begins processing events.
func (fw *FileWatcher) Start(ctx context.Context) error {
	for _, dir := range fw.dirs {
		if err := fw.addTree(dir); err != nil {
			return err
		}
	}
	slog.Info("Watching catalogue directories", slog.Any("dirs", fw.dirs))
	go fw.loop(ctx)
	return nil
}

func (fw *FileWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		return nil
	})
}

func (fw *FileWatcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handle(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Catalogue watcher error", logfields.Error(err))
		}
	}
}

func (fw *FileWatcher) handle(event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		// New subdirectories need their own watch.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fw.addTree(event.Name); err == nil {
				slog.Debug("Watching new directory", logfields.Path(event.Name))
			}
			return
		}
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if fw.match != nil && !fw.match(filepath.Base(event.Name)) {
		return
	}
	slog.Debug("Catalogue change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))

	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.changed[event.Name] = struct{}{}
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, fw.flush)
}

func (fw *FileWatcher) flush() {
	fw.mu.Lock()
	paths := make([]string, 0, len(fw.changed))
	for p := range fw.changed {
		paths = append(paths, p)
	}
	fw.changed = make(map[string]struct{})
	fw.mu.Unlock()

	if len(paths) > 0 {
		fw.onChange(paths)
	}
}

// Close stops watching.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}
