// Package domain contains the core domain models and business logic for the
// schema discovery engine.
package domain

import "time"

// Unit is the smallest trackable artifact: one schema source file.
// Units are immutable; a content change replaces the unit wholesale
// (a hash mismatch triggers full re-creation, never in-place mutation).
type Unit struct {
	// Path is the absolute file path identifying the unit.
	Path string
	// Names are the schema names declared in the file.
	Names []string
	// Hash is the xxhash64 of the file content.
	Hash uint64
	// ModTime is the file's last modification time at discovery.
	ModTime time.Time
	// Size is the file size in bytes.
	Size int64
	// Imports are the absolute paths of files statically imported by this unit.
	Imports []string
}
