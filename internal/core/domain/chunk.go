package domain

// LoadStrategy selects how the progressive loader schedules chunks.
type LoadStrategy string

const (
	// StrategyEager loads every chunk immediately at full concurrency.
	StrategyEager LoadStrategy = "eager"
	// StrategyLazy loads only priority chunks now and defers the rest
	// behind memoized per-path loaders.
	StrategyLazy LoadStrategy = "lazy"
	// StrategyHybrid eagerly loads the highest-priority chunks and defers
	// the remainder. This is the default.
	StrategyHybrid LoadStrategy = "hybrid"
	// StrategyDependency loads chunks in topological order, one wave at a time.
	StrategyDependency LoadStrategy = "dependency"
)

// CascadeStrategy controls how far invalidation propagates through dependents.
type CascadeStrategy string

const (
	// CascadeConservative cascades through all transitive dependents.
	CascadeConservative CascadeStrategy = "conservative"
	// CascadeAggressive cascades but bounds traversal at the configured depth.
	CascadeAggressive CascadeStrategy = "aggressive"
	// CascadeSmart cascades only when the changed unit has dependents.
	CascadeSmart CascadeStrategy = "smart"
)

// Chunk is a batch of unit paths grouped for scheduling. Chunks are immutable
// once computed for a load pass; a new discovery pass recomputes them.
type Chunk struct {
	// Index is the position of the chunk in the original partition order.
	Index int
	// Paths are the unit paths in input order.
	Paths []string
	// Priority is the scheduling score; higher loads earlier.
	Priority float64
	// EstimatedSize is the summed byte size of the chunk's files.
	EstimatedSize int64
	// ExternalDeps are import targets outside the chunk's own paths.
	ExternalDeps map[string]struct{}
}
