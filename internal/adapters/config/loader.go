// Package config provides the configuration loader for zodkit.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads zodkit.yaml from cwd and merges it onto the defaults.
// A missing file yields pure defaults.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	path := filepath.Join(cwd, domain.ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // Path is constructed from the working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	if err := merge(settings, &file); err != nil {
		return nil, err
	}
	return settings, nil
}

// merge overlays non-zero file values onto settings, validating enums.
func merge(s *domain.Settings, f *File) error {
	if len(f.Patterns) > 0 {
		s.Patterns = f.Patterns
	}
	if len(f.Exclude) > 0 {
		s.Exclude = f.Exclude
	}
	if len(f.Priority) > 0 {
		s.PriorityPatterns = f.Priority
	}

	if f.Strategy != "" {
		switch domain.LoadStrategy(f.Strategy) {
		case domain.StrategyEager, domain.StrategyLazy, domain.StrategyHybrid, domain.StrategyDependency:
			s.Strategy = domain.LoadStrategy(f.Strategy)
		default:
			return zerr.With(domain.ErrInvalidStrategy, "strategy", f.Strategy)
		}
	}

	if f.Cascade != "" {
		switch domain.CascadeStrategy(f.Cascade) {
		case domain.CascadeConservative, domain.CascadeAggressive, domain.CascadeSmart:
			s.Cascade = domain.CascadeStrategy(f.Cascade)
		default:
			return zerr.With(domain.ErrInvalidStrategy, "cascade", f.Cascade)
		}
	}

	if c := f.Chunking; c != nil {
		if c.ChunkSize > 0 {
			s.ChunkSize = c.ChunkSize
		}
		if c.StreamThresholdKB > 0 {
			s.StreamThreshold = int64(c.StreamThresholdKB) * 1024
		}
	}

	if w := f.Watch; w != nil {
		if w.DebounceMs > 0 {
			s.Debounce = time.Duration(w.DebounceMs) * time.Millisecond
		}
		if w.MaxDepth > 0 {
			s.MaxDepth = w.MaxDepth
		}
		if w.UpdateBatchSize > 0 {
			s.UpdateBatchSize = w.UpdateBatchSize
		}
		if w.MaxReloadTimeMs > 0 {
			s.MaxReloadTime = time.Duration(w.MaxReloadTimeMs) * time.Millisecond
		}
	}

	if c := f.Cache; c != nil {
		if c.TTLMinutes > 0 {
			s.Cache.TTL = time.Duration(c.TTLMinutes) * time.Minute
		}
		if c.MaxSizeMB > 0 {
			s.Cache.MaxSize = int64(c.MaxSizeMB) * 1024 * 1024
		}
		if c.Dir != "" {
			s.Cache.Dir = c.Dir
		}
	}

	if e := f.Executor; e != nil {
		if e.MaxConcurrency > 0 {
			s.Executor.MaxConcurrency = e.MaxConcurrency
		}
		if e.TimeoutMs > 0 {
			s.Executor.Timeout = time.Duration(e.TimeoutMs) * time.Millisecond
		}
		if e.Retries > 0 {
			s.Executor.Retries = e.Retries
		}
		if e.RetryDelayMs > 0 {
			s.Executor.RetryDelay = time.Duration(e.RetryDelayMs) * time.Millisecond
		}
	}

	return nil
}
