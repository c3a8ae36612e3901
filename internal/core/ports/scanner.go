package ports

// ScanResult holds the declarations extracted from one source file.
type ScanResult struct {
	// Names are the schema names declared in the file.
	Names []string
	// Imports are the import specifiers as written in the source,
	// before resolution to absolute paths.
	Imports []string
}

// SourceScanner extracts declared names and static imports from file content.
// The primary extraction path is a proper AST collaborator; implementations
// may fall back to regex scanning as a documented degraded mode.
type SourceScanner interface {
	// Scan extracts declarations from src. The path is used only for
	// language detection and diagnostics.
	Scan(path string, src []byte) (ScanResult, error)
}
