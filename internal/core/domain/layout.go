package domain

import "path/filepath"

const (
	// ZodkitDirName is the name of the internal metadata directory.
	ZodkitDirName = ".zodkit"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// SnapshotFileName is the name of the persisted cache snapshot.
	SnapshotFileName = "snapshot.json"

	// StatsFileName is the name of the human-readable cache stats file.
	StatsFileName = "stats.txt"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "zodkit.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultZodkitPath returns the default root directory for zodkit metadata.
func DefaultZodkitPath() string {
	return ZodkitDirName
}

// DefaultCachePath returns the default directory for the cache snapshot.
func DefaultCachePath() string {
	return filepath.Join(ZodkitDirName, CacheDirName)
}
