package fs

import (
	"regexp"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

var _ ports.SourceScanner = (*RegexScanner)(nil)

// Extraction patterns for TypeScript-style schema sources. Regex scanning is
// the degraded extraction mode: it tolerates partially invalid sources where
// an AST pass would fail outright, at the cost of missing exotic syntax.
var (
	schemaDeclRe = regexp.MustCompile(`(?m)^\s*export\s+(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=`)
	typeDeclRe   = regexp.MustCompile(`(?m)^\s*export\s+(?:type|interface|enum)\s+([A-Za-z_$][\w$]*)`)
	importRe     = regexp.MustCompile(`(?m)^\s*import\s+(?:type\s+)?[\w*\s{},$]*?\s*from\s+['"]([^'"]+)['"]`)
	sideEffectRe = regexp.MustCompile(`(?m)^\s*import\s+['"]([^'"]+)['"]`)
	reExportRe   = regexp.MustCompile(`(?m)^\s*export\s+(?:\*|\{[^}]*\})\s*from\s+['"]([^'"]+)['"]`)
	requireRe    = regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`)
)

// RegexScanner extracts declared names and static import specifiers from
// source content with regular expressions.
type RegexScanner struct{}

// NewRegexScanner creates a new RegexScanner.
func NewRegexScanner() *RegexScanner {
	return &RegexScanner{}
}

// Scan extracts exported declaration names and import specifiers from src.
// It never fails: unparseable content simply yields fewer matches.
func (s *RegexScanner) Scan(_ string, src []byte) (ports.ScanResult, error) {
	var result ports.ScanResult

	seenNames := make(map[string]struct{})
	for _, re := range []*regexp.Regexp{schemaDeclRe, typeDeclRe} {
		for _, m := range re.FindAllSubmatch(src, -1) {
			name := string(m[1])
			if _, ok := seenNames[name]; ok {
				continue
			}
			seenNames[name] = struct{}{}
			result.Names = append(result.Names, name)
		}
	}

	seenImports := make(map[string]struct{})
	for _, re := range []*regexp.Regexp{importRe, sideEffectRe, reExportRe, requireRe} {
		for _, m := range re.FindAllSubmatch(src, -1) {
			spec := string(m[1])
			if _, ok := seenImports[spec]; ok {
				continue
			}
			seenImports[spec] = struct{}{}
			result.Imports = append(result.Imports, spec)
		}
	}

	return result, nil
}
