// Package watcher observes target sources and decides when a rebuild is due.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    ports.Logger
	events    chan ports.WatchEvent
	scope     domain.SourceScope
	// missing holds the roots that did not exist when last added. Only the
	// event goroutine touches it after Start.
	missing  map[string]struct{}
	stopOnce sync.Once
}

// NewWatcher creates a new file system watcher.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: watcher,
		logger:    logger,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		missing:   make(map[string]struct{}),
	}, nil
}

// Start begins watching the roots of scope. A missing root is replaced by its
// nearest existing ancestor until it appears.
func (w *Watcher) Start(ctx context.Context, scope domain.SourceScope) error {
	w.scope = scope

	for _, root := range scope.Roots() {
		if _, err := w.addRoot(root); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.fsWatcher.Close()
	})
	return err
}

// Events returns an iterator of file system events. It ends when the watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// addRoot watches a tree recursively, a file through its parent and a missing
// root through its nearest existing ancestor. It reports whether root exists.
func (w *Watcher) addRoot(root string) (bool, error) {
	info, err := os.Stat(root)
	switch {
	case err == nil && info.IsDir():
		delete(w.missing, root)
		for dir := range w.watchRecursively(root) {
			if err := w.fsWatcher.Add(dir); err != nil {
				return true, err
			}
		}
		return true, nil
	case err == nil:
		delete(w.missing, root)
		return true, w.fsWatcher.Add(filepath.Dir(root))
	case errors.Is(err, fs.ErrNotExist):
		w.missing[root] = struct{}{}
		ancestor := nearestExisting(filepath.Dir(root))
		w.logger.Debug(fmt.Sprintf("watcher: %s does not exist, watching %s", root, ancestor))
		return false, w.fsWatcher.Add(ancestor)
	default:
		return false, err
	}
}

// watchRecursively walks the directory tree and yields all directories the scope does not skip.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Continue walking even if there's an error accessing a directory.
				return nil //nolint:nilerr // Problematic directories are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if w.scope.SkipDir(path) {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// processEvents converts raw fsnotify events to ports.WatchEvent.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent, ok := convertEvent(event)
			if !ok {
				continue
			}

			// The watch set covers new directories before their event is delivered.
			appeared := w.follow(watchEvent)
			if !w.emit(ctx, watchEvent) {
				return
			}
			for _, root := range appeared {
				if root == filepath.Clean(watchEvent.Path) {
					continue
				}
				if !w.emit(ctx, ports.WatchEvent{Path: root, Operation: ports.OpCreate}) {
					return
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(fmt.Sprintf("watcher: file system error: %v", err))
		}
	}
}

// follow keeps the watch set in line with the tree after an event and returns
// the missing roots that now exist.
func (w *Watcher) follow(event ports.WatchEvent) []string {
	path := filepath.Clean(event.Path)

	switch event.Operation {
	case ports.OpCreate:
		// Watch directories created after Start.
		if info, err := os.Stat(path); err == nil && info.IsDir() && !w.scope.SkipDir(path) {
			for dir := range w.watchRecursively(path) {
				_ = w.fsWatcher.Add(dir)
			}
		}
	case ports.OpRemove, ports.OpRename:
		// A removed root is watched through its ancestor until it comes back.
		if slices.Contains(w.scope.Roots(), path) {
			if _, err := os.Stat(path); err != nil {
				_, _ = w.addRoot(path)
			}
		}
		return nil
	default:
		return nil
	}

	var appeared []string
	for _, root := range slices.Sorted(maps.Keys(w.missing)) {
		if root != path && !strings.HasPrefix(root, path+string(filepath.Separator)) {
			continue
		}
		exists, err := w.addRoot(root)
		if err != nil {
			w.logger.Warn(fmt.Sprintf("watcher: failed to watch %s: %v", root, err))
			continue
		}
		if exists {
			appeared = append(appeared, root)
		}
	}
	return appeared
}

func (w *Watcher) emit(ctx context.Context, event ports.WatchEvent) bool {
	select {
	case w.events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

// nearestExisting returns dir or its closest ancestor that is an existing directory.
func nearestExisting(dir string) string {
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	switch {
	case event.Has(fsnotify.Write):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpWrite}, true
	case event.Has(fsnotify.Create):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpCreate}, true
	case event.Has(fsnotify.Remove):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpRemove}, true
	case event.Has(fsnotify.Rename):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpRename}, true
	default:
		return ports.WatchEvent{}, false
	}
}
