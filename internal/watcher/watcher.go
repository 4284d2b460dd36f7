package watcher

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

type ChangeEvent struct {
	Path      string
	Timestamp time.Time
}

type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	patterns  []string
	// directory names whose creation can reveal new scheme files
	names []string
}

// New creates a Watcher that reports changes to workspace manifests and
// scheme files.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		patterns:  []string{".xcscheme", ".xcworkspacedata"},
		names:     []string{"xcshareddata", "xcschemes"},
	}, nil
}

// AddDirs watches each directory that exists. Missing directories are
// skipped; returns how many were added.
func (w *Watcher) AddDirs(dirs ...string) (int, error) {
	added := 0
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// Watch returns a channel that emits debounced change events. The
// channel is closed when ctx is done or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) <-chan ChangeEvent {
	out := make(chan ChangeEvent)

	go func() {
		defer close(out)

		var timer *time.Timer
		var fire <-chan time.Time
		var lastPath string

		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}

				if !w.shouldWatch(event.Name) {
					continue
				}

				// Xcode saves atomically, so renames and creates matter as much as writes
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}

				lastPath = event.Name
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				select {
				case out <- ChangeEvent{Path: lastPath, Timestamp: time.Now()}:
				case <-ctx.Done():
					return
				}

			case _, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out
}

func (w *Watcher) shouldWatch(path string) bool {
	ext := filepath.Ext(path)
	for _, pattern := range w.patterns {
		if ext == pattern {
			return true
		}
	}
	base := filepath.Base(path)
	for _, name := range w.names {
		if base == name {
			return true
		}
	}
	return false
}

func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
