// Package discovery implements the schema-extraction collaborator: it turns
// file paths into units carrying content hash, declared names and resolved
// static imports. The engine consumes the result opaquely.
package discovery

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/fs"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

var _ ports.Discoverer = (*Discoverer)(nil)

// importExtensions are probed, in order, when resolving an extensionless
// import specifier to a file.
var importExtensions = []string{".ts", ".tsx", ".mts", ".js", ".mjs"}

// Discoverer analyzes schema source files into units.
type Discoverer struct {
	hasher          ports.Hasher
	scanner         ports.SourceScanner
	streamThreshold int64
}

// NewDiscoverer creates a Discoverer. Files larger than streamThreshold
// bytes are read through the streaming path.
func NewDiscoverer(hasher ports.Hasher, scanner ports.SourceScanner, streamThreshold int64) *Discoverer {
	return &Discoverer{
		hasher:          hasher,
		scanner:         scanner,
		streamThreshold: streamThreshold,
	}
}

// DiscoverUnits analyzes the given paths into units. Unreadable paths are
// skipped; only context cancellation aborts the pass.
func (d *Discoverer) DiscoverUnits(ctx context.Context, paths []string) ([]domain.Unit, error) {
	units := make([]domain.Unit, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return units, err
		}

		unit, ok := d.discoverOne(path)
		if !ok {
			continue
		}
		units = append(units, unit)
	}

	return units, nil
}

// discoverOne analyzes a single file. It reports false when the file cannot
// be read; discovery failures are isolated per path.
func (d *Discoverer) discoverOne(path string) (domain.Unit, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return domain.Unit{}, false
	}

	content, err := fs.ReadFile(abs, d.streamThreshold)
	if err != nil {
		return domain.Unit{}, false
	}

	scan, err := d.scanner.Scan(abs, content)
	if err != nil {
		return domain.Unit{}, false
	}

	return domain.Unit{
		Path:    abs,
		Names:   scan.Names,
		Hash:    d.hasher.HashBytes(content),
		ModTime: info.ModTime(),
		Size:    info.Size(),
		Imports: resolveImports(abs, scan.Imports),
	}, true
}

// resolveImports maps relative import specifiers to absolute file paths,
// probing known extensions and index files. Bare specifiers (external
// packages) are dropped: only files inside the source tree participate in
// the dependency graph.
func resolveImports(fromFile string, specs []string) []string {
	dir := filepath.Dir(fromFile)
	resolved := make([]string, 0, len(specs))

	for _, spec := range specs {
		if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
			continue
		}

		target, ok := probe(filepath.Join(dir, filepath.FromSlash(spec)))
		if !ok {
			continue
		}
		resolved = append(resolved, target)
	}

	return resolved
}

// probe finds the file a specifier points at: the path itself, the path with
// a known extension appended, or an index file inside a directory.
func probe(base string) (string, bool) {
	if info, err := os.Stat(base); err == nil && !info.IsDir() {
		return base, true
	}

	// TypeScript allows importing "./foo.js" for a foo.ts source.
	if ext := filepath.Ext(base); ext == ".js" || ext == ".mjs" {
		stripped := strings.TrimSuffix(base, ext)
		for _, candidate := range []string{stripped + ".ts", stripped + ".mts", stripped + ".tsx"} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
	}

	for _, ext := range importExtensions {
		candidate := base + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}

	for _, ext := range importExtensions {
		candidate := filepath.Join(base, "index"+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}

	return "", false
}
