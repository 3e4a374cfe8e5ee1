package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when NewWatcher is given a zero window.
const DefaultDebounce = 200 * time.Millisecond

// ChangeEvent represents a change to a watched file.
type ChangeEvent struct {
	Path       string
	ChangeType string // "create", "write", "remove", "rename"
}

// Watcher reports changes to the status file and the daily log files.
//
// Directories rather than files are watched: the status file is replaced by
// rename on every write, which would drop a watch placed on the file itself.
type Watcher struct {
	watcher    *fsnotify.Watcher
	debounce   time.Duration
	statusFile string
	logDir     string
	onChange   func(ChangeEvent)
}

// NewWatcher creates a watcher for statusFile and the .log files in logDir.
func NewWatcher(statusFile, logDir string, debounce time.Duration, onChange func(ChangeEvent)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = DefaultDebounce
	}

	statusFile = filepath.Clean(statusFile)
	logDir = filepath.Clean(logDir)

	dirs := []string{filepath.Dir(statusFile)}
	if logDir != dirs[0] {
		dirs = append(dirs, logDir)
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return &Watcher{
		watcher:    w,
		debounce:   debounce,
		statusFile: statusFile,
		logDir:     logDir,
		onChange:   onChange,
	}, nil
}

// Relevant reports whether path is the status file or a daily log file.
func (w *Watcher) Relevant(path string) bool {
	path = filepath.Clean(path)
	if path == w.statusFile {
		return true
	}
	return filepath.Dir(path) == w.logDir && strings.HasSuffix(path, ".log")
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	var (
		mu        sync.Mutex
		lastEvent ChangeEvent
	)
	debouncer := NewDebouncer(w.debounce, func() {
		mu.Lock()
		event := lastEvent
		mu.Unlock()
		if w.onChange != nil {
			w.onChange(event)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			changeType := opToChangeType(event.Op)
			if changeType == "" || !w.Relevant(event.Name) {
				continue
			}
			mu.Lock()
			lastEvent = ChangeEvent{Path: event.Name, ChangeType: changeType}
			mu.Unlock()
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func opToChangeType(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return ""
	}
}
