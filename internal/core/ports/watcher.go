package ports

import (
	"context"
	"iter"

	"go.trai.ch/brew/internal/core/domain"
)

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// WatchEvent represents a file system event from the watcher.
type WatchEvent struct {
	// Path is the path of the file or directory that changed.
	Path string
	// Operation is the type of change that occurred.
	Operation WatchOp
}

// Watcher defines the interface for watching file system changes.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the roots of scope. Trees are watched recursively
	// except directories the scope skips, files through their parent directory.
	// A root that does not exist yet is picked up once it appears.
	Start(ctx context.Context, scope domain.SourceScope) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of file system events.
	Events() iter.Seq[WatchEvent]
}

// Debouncer coalesces paths reported in quick succession into one batch.
type Debouncer interface {
	// Add adds a path to the pending batch.
	Add(path string)
	// Flush hands the pending batch to the callback immediately.
	Flush()
	// Stop discards the pending batch.
	Stop()
}

// ChangeTracker remembers the content of watched files between batches.
type ChangeTracker interface {
	// Seed records the current content of every file in scope and keeps scope
	// for later calls to Changed.
	Seed(scope domain.SourceScope)
	// Changed returns the paths whose content differs from what was last recorded.
	Changed(paths []string) []string
}
