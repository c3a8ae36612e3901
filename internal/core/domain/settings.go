package domain

import "time"

// CacheSettings configures the unit cache store.
type CacheSettings struct {
	// TTL is the maximum entry age before a get is treated as a miss.
	TTL time.Duration
	// MaxSize is the size budget in bytes for serialized entries.
	MaxSize int64
	// Dir is the directory holding the snapshot and stats files.
	Dir string
}

// ExecutorSettings configures the bounded-concurrency task executor.
type ExecutorSettings struct {
	// MaxConcurrency bounds parallel workers within a batch.
	MaxConcurrency int
	// Timeout bounds a single worker attempt; zero disables the timeout.
	Timeout time.Duration
	// Retries is the number of retries per failed item.
	Retries int
	// RetryDelay is the base delay between attempts, scaled linearly.
	RetryDelay time.Duration
}

// Settings is the full engine configuration surface.
type Settings struct {
	// Patterns are glob patterns selecting schema files.
	Patterns []string
	// Exclude are glob patterns filtered out before loading.
	Exclude []string
	// PriorityPatterns boost chunks whose paths match.
	PriorityPatterns []string
	// Strategy selects the progressive loading strategy.
	Strategy LoadStrategy
	// ChunkSize is the number of paths per chunk.
	ChunkSize int
	// StreamThreshold is the file size above which reads are streamed.
	StreamThreshold int64
	// Cascade selects the invalidation cascade strategy.
	Cascade CascadeStrategy
	// MaxDepth bounds cascading invalidation traversal.
	MaxDepth int
	// Debounce is the per-path event coalescing window.
	Debounce time.Duration
	// UpdateBatchSize is the maximum paths dequeued per reload pass.
	UpdateBatchSize int
	// MaxReloadTime is the advisory budget for one reload pass; exceeding
	// it is logged, never fatal.
	MaxReloadTime time.Duration
	// Cache configures the unit cache store.
	Cache CacheSettings
	// Executor configures the task executor.
	Executor ExecutorSettings
}

// DefaultSettings returns the settings used when zodkit.yaml is absent.
func DefaultSettings() *Settings {
	return &Settings{
		Patterns:         []string{"**/*.schema.ts", "**/*.zod.ts", "**/schemas/**/*.ts"},
		Exclude:          []string{"**/node_modules/**", "**/dist/**", "**/*.d.ts"},
		PriorityPatterns: []string{"**/index.ts", "**/schemas/**"},
		Strategy:         StrategyHybrid,
		ChunkSize:        50,
		StreamThreshold:  100 * 1024,
		Cascade:          CascadeSmart,
		MaxDepth:         10,
		Debounce:         300 * time.Millisecond,
		UpdateBatchSize:  10,
		MaxReloadTime:    5 * time.Second,
		Cache: CacheSettings{
			TTL:     30 * time.Minute,
			MaxSize: 64 * 1024 * 1024,
			Dir:     DefaultCachePath(),
		},
		Executor: ExecutorSettings{
			MaxConcurrency: 4,
			Timeout:        30 * time.Second,
			Retries:        2,
			RetryDelay:     100 * time.Millisecond,
		},
	}
}
