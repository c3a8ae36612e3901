package domain

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchAny reports whether path matches any of the doublestar glob patterns.
// Paths are normalized to slashes before matching. Invalid patterns never
// match.
func MatchAny(path string, patterns []string) bool {
	normalized := filepath.ToSlash(path)
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, normalized)
		if err == nil && ok {
			return true
		}
	}
	return false
}
