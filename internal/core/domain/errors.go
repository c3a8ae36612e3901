package domain

import "go.trai.ch/zerr"

var (
	// ErrCycleDetected is returned when a topological sort hits a cycle.
	// It is fatal to that sort call only, never to the engine.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrWatchInit is returned when the filesystem watcher fails to attach.
	// This is a hard failure of the coordinator's Start.
	ErrWatchInit = zerr.New("failed to initialize file watcher")

	// ErrTaskTimeout is returned when a single task attempt exceeds its timeout.
	// The attempt's final state is unknown; the worker is abandoned, not killed.
	ErrTaskTimeout = zerr.New("task attempt timed out")

	// ErrTaskFailed is returned when a task exhausts its retries.
	ErrTaskFailed = zerr.New("task failed after retries")

	// ErrExecutorMisconfigured is returned for invalid executor options.
	ErrExecutorMisconfigured = zerr.New("invalid executor configuration")

	// ErrPersistence is returned when the cache snapshot cannot be read or
	// written. Callers log it and fall back to a cold cache.
	ErrPersistence = zerr.New("cache persistence failed")

	// ErrCacheMiss is returned when a requested key is absent or expired.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrReload is returned when reloading a single path fails. The failure
	// is isolated to that path and surfaced as an error event.
	ErrReload = zerr.New("failed to reload path")

	// ErrDiscoveryFailed is returned when unit discovery fails for a path.
	ErrDiscoveryFailed = zerr.New("unit discovery failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidStrategy is returned for an unknown load or cascade strategy.
	ErrInvalidStrategy = zerr.New("invalid strategy")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrNotStarted is returned when watch mode is used before Start.
	ErrNotStarted = zerr.New("coordinator not started")
)
