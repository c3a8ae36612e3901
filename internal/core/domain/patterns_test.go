package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
)

func TestMatchAny(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		patterns []string
		want     bool
	}{
		{"simple suffix", "user.schema.ts", []string{"**/*.schema.ts"}, true},
		{"nested path", "src/models/user.schema.ts", []string{"**/*.schema.ts"}, true},
		{"directory pattern", "src/schemas/user.ts", []string{"**/schemas/**/*.ts"}, true},
		{"no match", "src/models/user.ts", []string{"**/*.schema.ts"}, false},
		{"second pattern matches", "src/api.zod.ts", []string{"**/*.schema.ts", "**/*.zod.ts"}, true},
		{"empty patterns", "anything.ts", nil, false},
		{"node_modules exclude shape", "node_modules/pkg/index.schema.ts", []string{"**/node_modules/**"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.MatchAny(tt.path, tt.patterns))
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := domain.DefaultSettings()

	assert.Equal(t, domain.StrategyHybrid, s.Strategy)
	assert.Equal(t, domain.CascadeSmart, s.Cascade)
	assert.Equal(t, 50, s.ChunkSize)
	assert.NotEmpty(t, s.Patterns)
	assert.Positive(t, s.Debounce)
	assert.Positive(t, s.Cache.TTL)
	assert.Positive(t, s.Executor.MaxConcurrency)
}
