package config

// File represents the structure of the zodkit.yaml configuration file.
// Zero values mean "use the default"; the loader merges the file onto
// domain.DefaultSettings.
type File struct {
	Patterns []string     `yaml:"patterns"`
	Exclude  []string     `yaml:"exclude"`
	Priority []string     `yaml:"priority"`
	Strategy string       `yaml:"strategy"`
	Cascade  string       `yaml:"cascade"`
	Chunking *ChunkingDTO `yaml:"chunking"`
	Watch    *WatchDTO    `yaml:"watch"`
	Cache    *CacheDTO    `yaml:"cache"`
	Executor *ExecutorDTO `yaml:"executor"`
}

// ChunkingDTO configures chunk partitioning.
type ChunkingDTO struct {
	ChunkSize         int `yaml:"chunkSize"`
	StreamThresholdKB int `yaml:"streamThresholdKb"`
}

// WatchDTO configures hot-reload behavior.
type WatchDTO struct {
	DebounceMs      int `yaml:"debounceMs"`
	MaxDepth        int `yaml:"maxDepth"`
	UpdateBatchSize int `yaml:"updateBatchSize"`
	MaxReloadTimeMs int `yaml:"maxReloadTimeMs"`
}

// CacheDTO configures the unit cache store.
type CacheDTO struct {
	TTLMinutes int    `yaml:"ttlMinutes"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	Dir        string `yaml:"dir"`
}

// ExecutorDTO configures the task executor.
type ExecutorDTO struct {
	MaxConcurrency int `yaml:"maxConcurrency"`
	TimeoutMs      int `yaml:"timeoutMs"`
	Retries        int `yaml:"retries"`
	RetryDelayMs   int `yaml:"retryDelayMs"`
}
