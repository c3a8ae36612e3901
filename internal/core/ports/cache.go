package ports

import "github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"

// UnitCache is the engine-facing view of the unit cache store.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type UnitCache interface {
	// Get returns the cached unit for key, or false on a miss.
	// Entries older than the store's TTL are treated as misses.
	Get(key string) (domain.Unit, bool)
	// Set stores a unit keyed by path, registering dependency watches
	// for deps. Identical payloads only bump access bookkeeping.
	Set(key string, unit domain.Unit, deps []string) error
	// Invalidate removes the entry for key. It reports whether an entry
	// was present.
	Invalidate(key string) bool
	// InvalidateByDependency removes every entry whose dependency list
	// contains path and returns the invalidated keys.
	InvalidateByDependency(path string) []string
	// Persist writes the snapshot and stats files atomically.
	Persist() error
	// Restore loads the snapshot from disk. A version mismatch is a cold
	// start, not an error.
	Restore() error
	// Shrink reduces the store toward its pressure target using the
	// eviction ranking.
	Shrink()
	// UnderPressure reports whether the store exceeds its memory
	// pressure threshold.
	UnderPressure() bool
	// Close releases dependency watch resources.
	Close() error
}
