package ports

import (
	"context"
	"iter"
)

// WatchOp classifies a file system change.
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

// WatchEvent is a single change reported by the watcher.
type WatchEvent struct {
	// Path is the absolute path of the file or directory that changed.
	Path string
	// Operation classifies the change.
	Operation WatchOp
}

// Watcher observes a directory tree for schema file changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given root directory recursively,
	// skipping ignored directories. It returns an ErrWatchInit-wrapped
	// error if the watcher fails to attach.
	Start(ctx context.Context, root string) error
	// Stop stops the watcher and releases all OS watch resources.
	Stop() error
	// Events yields change events until the watcher stops.
	Events() iter.Seq[WatchEvent]
}
