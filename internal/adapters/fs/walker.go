package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
)

// skipDirectories are directories never descended into during discovery.
// The list mirrors the watcher's fixed ignore set.
var skipDirectories = map[string]bool{
	".git":               true,
	".jj":                true,
	".hg":                true,
	".svn":               true,
	"node_modules":       true,
	"dist":               true,
	"build":              true,
	"coverage":           true,
	domain.ZodkitDirName: true,
}

// Walker discovers schema files under a root by glob pattern.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkMatches yields absolute paths of files under root that match at least
// one pattern and no exclude. Unreadable directories are skipped, not fatal.
func (w *Walker) WalkMatches(root string, patterns, excludes []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // Skip unreadable entries and keep walking
			}
			if d.IsDir() {
				if skipDirectories[d.Name()] {
					return fs.SkipDir
				}
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if !domain.MatchAny(rel, patterns) || domain.MatchAny(rel, excludes) {
				return nil
			}

			abs, absErr := filepath.Abs(path)
			if absErr != nil {
				abs = path
			}
			if !yield(abs) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Relativize returns path relative to root, falling back to path itself
// when no relative form exists. Used to match absolute watcher paths
// against root-relative glob patterns.
func Relativize(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
