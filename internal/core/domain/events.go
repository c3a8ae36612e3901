package domain

import "time"

// EventKind identifies the type of an engine event.
type EventKind string

const (
	// EventStarted is emitted when the hot-reload coordinator starts watching.
	EventStarted EventKind = "started"
	// EventStopped is emitted when the coordinator stops.
	EventStopped EventKind = "stopped"
	// EventFileChanged is emitted when a debounced file change fires.
	EventFileChanged EventKind = "file-changed"
	// EventDependencyUpdated is emitted when a change cascades to dependents.
	EventDependencyUpdated EventKind = "dependency-updated"
	// EventCacheInvalidated is emitted when cache entries are invalidated.
	EventCacheInvalidated EventKind = "cache-invalidated"
	// EventReloadComplete is emitted after a batch reload pass finishes.
	EventReloadComplete EventKind = "reload-complete"
	// EventError is emitted for an isolated per-path failure.
	EventError EventKind = "error"
)

// Event is a typed engine notification consumed by the presentation layer.
type Event struct {
	// Kind is the event type.
	Kind EventKind
	// Paths are the affected unit paths, if any.
	Paths []string
	// Elapsed is the operation duration, where applicable.
	Elapsed time.Duration
	// Err carries the failure for EventError.
	Err error
}
