package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"go.trai.ch/zerr"
)

// snapshotVersion tags the on-disk schema. A mismatch on restore is treated
// as a cold start, never an error.
const snapshotVersion = 1

// snapshotEntry is the serialized form of one cache entry.
type snapshotEntry struct {
	Key         string      `json:"key"`
	Unit        domain.Unit `json:"unit"`
	CreatedAt   time.Time   `json:"createdAt"`
	Version     uint64      `json:"version"`
	Deps        []string    `json:"deps,omitempty"`
	Size        int64       `json:"size"`
	Checksum    uint64      `json:"checksum"`
	AccessCount int64       `json:"accessCount"`
	LastAccess  time.Time   `json:"lastAccess"`
}

// snapshotStats carries the hit/miss counters across restarts.
type snapshotStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// snapshot is the full on-disk cache artifact.
type snapshot struct {
	Version   int             `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Entries   []snapshotEntry `json:"entries"`
	Stats     snapshotStats   `json:"stats"`
}

// Persist writes the snapshot and a human-readable stats file, each via a
// temp file and atomic rename so a reader never observes a partial write.
func (s *Store) Persist() error {
	s.mu.Lock()
	snap := snapshot{
		Version:   snapshotVersion,
		Timestamp: time.Now(),
		Entries:   make([]snapshotEntry, 0, len(s.entries)),
		Stats:     snapshotStats{Hits: s.hits, Misses: s.misses},
	}
	for key, e := range s.entries {
		snap.Entries = append(snap.Entries, snapshotEntry{
			Key:         key,
			Unit:        e.Unit,
			CreatedAt:   e.CreatedAt,
			Version:     e.Version,
			Deps:        e.Deps,
			Size:        e.Size,
			Checksum:    e.Checksum,
			AccessCount: e.AccessCount,
			LastAccess:  e.LastAccess,
		})
	}
	size := s.currentSize
	s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrPersistence.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrPersistence.Error())
	}

	if err := writeAtomic(filepath.Join(s.dir, domain.SnapshotFileName), data); err != nil {
		return err
	}

	stats := fmt.Sprintf(
		"zodkit cache stats\n==================\nwritten:  %s\nentries:  %d\nsize:     %d bytes\nhits:     %d\nmisses:   %d\n",
		snap.Timestamp.Format(time.RFC3339), len(snap.Entries), size, snap.Stats.Hits, snap.Stats.Misses,
	)
	return writeAtomic(filepath.Join(s.dir, domain.StatsFileName), []byte(stats))
}

// Restore loads the snapshot from disk, re-registering dependency watches.
// A missing file or version mismatch is a cold start, not an error.
func (s *Store) Restore() error {
	path := filepath.Join(s.dir, domain.SnapshotFileName)
	data, err := os.ReadFile(path) //nolint:gosec // Path is constructed from the configured cache directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "path", path)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "path", path)
	}
	if snap.Version != snapshotVersion {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*entry, len(snap.Entries))
	s.currentSize = 0
	s.hits = snap.Stats.Hits
	s.misses = snap.Stats.Misses

	for i := range snap.Entries {
		se := &snap.Entries[i]
		s.entries[se.Key] = &entry{
			Unit:        se.Unit,
			CreatedAt:   se.CreatedAt,
			Version:     se.Version,
			Deps:        se.Deps,
			Size:        se.Size,
			Checksum:    se.Checksum,
			AccessCount: se.AccessCount,
			LastAccess:  se.LastAccess,
		}
		s.currentSize += se.Size
		if se.Version > s.version {
			s.version = se.Version
		}
		for _, dep := range se.Deps {
			s.watchDepLocked(dep)
		}
	}

	return nil
}

// writeAtomic writes data to path via a temp file in the same directory
// followed by a rename.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrPersistence.Error())
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrPersistence.Error())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrPersistence.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrPersistence.Error())
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, domain.ErrPersistence.Error())
	}
	return nil
}
