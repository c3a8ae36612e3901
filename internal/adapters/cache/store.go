// Package cache implements the unit cache store: a checksum-deduplicated,
// size/TTL-bounded key-value store with dependency-triggered invalidation
// and atomic disk persistence.
package cache

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.UnitCache = (*Store)(nil)

const (
	// evictionSlack is the over-eviction factor that avoids immediate
	// re-eviction thrash after an insert.
	evictionSlack = 1.2
	// shrinkTarget is the fraction of MaxSize the store shrinks to under
	// memory pressure.
	shrinkTarget = 0.7
	// pressureThreshold is the fill fraction above which the store
	// reports memory pressure.
	pressureThreshold = 0.9
	// accessWeight and recencyWeight blend the eviction score.
	// Lower-scoring entries are evicted first.
	accessWeight  = 0.7
	recencyWeight = 0.3
)

// entry is one cached unit with its bookkeeping. Entry identity is
// checksum-based: re-setting an identical payload is a metadata bump,
// not a new entry.
type entry struct {
	Unit        domain.Unit
	CreatedAt   time.Time
	Version     uint64
	Deps        []string
	Size        int64
	Checksum    uint64
	AccessCount int64
	LastAccess  time.Time
}

// score ranks an entry for eviction; lower means evict earlier.
func (e *entry) score(now time.Time) float64 {
	age := now.Sub(e.LastAccess).Seconds()
	recency := 1.0 / (1.0 + age)
	return accessWeight*float64(e.AccessCount) + recencyWeight*recency
}

// Store is the unit cache. All methods are safe for concurrent use; the
// mutex keeps mutations serialized so mid-operation state never leaks.
type Store struct {
	mu          sync.Mutex
	entries     map[string]*entry
	currentSize int64
	version     uint64
	hits        int64
	misses      int64

	ttl     time.Duration
	maxSize int64
	dir     string

	hasher ports.Hasher

	fsWatcher *fsnotify.Watcher
	watchRefs map[string]int
	watchDone chan struct{}
}

// NewStore creates a Store with the given cache settings. It attaches a
// filesystem watcher used for dependency-triggered invalidation.
func NewStore(settings domain.CacheSettings, hasher ports.Hasher) (*Store, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchInit.Error())
	}

	s := &Store{
		entries:   make(map[string]*entry),
		ttl:       settings.TTL,
		maxSize:   settings.MaxSize,
		dir:       settings.Dir,
		hasher:    hasher,
		fsWatcher: fsWatcher,
		watchRefs: make(map[string]int),
		watchDone: make(chan struct{}),
	}
	go s.watchLoop()
	return s, nil
}

// watchLoop turns dependency file events into invalidations.
func (s *Store) watchLoop() {
	for {
		select {
		case <-s.watchDone:
			return
		case event, ok := <-s.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename|fsnotify.Create) != 0 {
				s.InvalidateByDependency(event.Name)
			}
		case _, ok := <-s.fsWatcher.Errors:
			if !ok {
				return
			}
			// Watch errors on individual dependencies are non-fatal.
		}
	}
}

// Close stops dependency watching and releases all OS watch handles.
func (s *Store) Close() error {
	s.mu.Lock()
	select {
	case <-s.watchDone:
	default:
		close(s.watchDone)
	}
	s.mu.Unlock()
	return s.fsWatcher.Close()
}

// Get returns the cached unit for key. Entries older than the TTL are
// treated as misses and removed.
func (s *Store) Get(key string) (domain.Unit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.misses++
		return domain.Unit{}, false
	}

	if s.ttl > 0 && time.Since(e.CreatedAt) > s.ttl {
		s.removeLocked(key)
		s.misses++
		return domain.Unit{}, false
	}

	s.hits++
	e.AccessCount++
	e.LastAccess = time.Now()
	return e.Unit, true
}

// Set stores a unit keyed by path. Two sets with identical checksums are
// no-ops except for access bookkeeping: no new version, no eviction
// pressure, no re-watch.
func (s *Store) Set(key string, unit domain.Unit, deps []string) error {
	serialized, err := json.Marshal(unit)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "key", key)
	}
	size := int64(len(serialized))
	checksum := s.hasher.HashBytes(serialized)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.entries[key]; ok && existing.Checksum == checksum {
		existing.AccessCount++
		existing.LastAccess = now
		return nil
	}

	s.evictLocked(size)

	if _, ok := s.entries[key]; ok {
		s.removeLocked(key)
	}

	s.version++
	depsCopy := make([]string, len(deps))
	copy(depsCopy, deps)

	s.entries[key] = &entry{
		Unit:        unit,
		CreatedAt:   now,
		Version:     s.version,
		Deps:        depsCopy,
		Size:        size,
		Checksum:    checksum,
		AccessCount: 1,
		LastAccess:  now,
	}
	s.currentSize += size

	for _, dep := range depsCopy {
		s.watchDepLocked(dep)
	}
	return nil
}

// Invalidate removes the entry for key and reports whether it was present.
func (s *Store) Invalidate(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.entries[key]
	if ok {
		s.removeLocked(key)
	}
	return ok
}

// InvalidateByDependency removes every entry whose dependency list contains
// path and returns the invalidated keys.
func (s *Store) InvalidateByDependency(path string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var invalidated []string
	for key, e := range s.entries {
		for _, dep := range e.Deps {
			if dep == path {
				invalidated = append(invalidated, key)
				break
			}
		}
	}
	for _, key := range invalidated {
		s.removeLocked(key)
	}
	return invalidated
}

// Shrink reduces the store to the shrink target using the eviction ranking.
func (s *Store) Shrink() {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := int64(float64(s.maxSize) * shrinkTarget)
	s.evictToLocked(target)
}

// UnderPressure reports whether the store exceeds its pressure threshold.
func (s *Store) UnderPressure() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.currentSize) > float64(s.maxSize)*pressureThreshold
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// CurrentSize returns the summed serialized size of live entries.
func (s *Store) CurrentSize() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentSize
}

// Stats returns the hit/miss counters.
func (s *Store) Stats() (hits, misses int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.misses
}

// evictLocked frees room for an incoming entry of the given size. Eviction
// triggers only when the insert would exceed MaxSize; it then frees at least
// evictionSlack times the incoming size so the next insert does not
// immediately evict again.
func (s *Store) evictLocked(incoming int64) {
	if s.maxSize <= 0 || s.currentSize+incoming <= s.maxSize {
		return
	}
	need := int64(float64(incoming) * evictionSlack)
	s.evictToLocked(s.currentSize - need)
}

// evictToLocked removes lowest-scoring entries until currentSize <= target.
func (s *Store) evictToLocked(target int64) {
	if target < 0 {
		target = 0
	}
	now := time.Now()

	for s.currentSize > target && len(s.entries) > 0 {
		victim := ""
		lowest := 0.0
		for key, e := range s.entries {
			sc := e.score(now)
			if victim == "" || sc < lowest {
				victim = key
				lowest = sc
			}
		}
		s.removeLocked(victim)
	}
}

// removeLocked deletes an entry, adjusts size accounting and releases
// dependency watches that no other entry references.
func (s *Store) removeLocked(key string) {
	e, ok := s.entries[key]
	if !ok {
		return
	}
	delete(s.entries, key)
	s.currentSize -= e.Size

	for _, dep := range e.Deps {
		s.unwatchDepLocked(dep)
	}
}

// watchDepLocked registers a filesystem watch for a dependency path,
// deduplicated across entries via refcounting.
func (s *Store) watchDepLocked(dep string) {
	s.watchRefs[dep]++
	if s.watchRefs[dep] == 1 {
		// The dependency may not exist yet; a failed add is retried
		// implicitly the next time an entry references the path.
		if err := s.fsWatcher.Add(dep); err != nil {
			s.watchRefs[dep]--
			if s.watchRefs[dep] == 0 {
				delete(s.watchRefs, dep)
			}
		}
	}
}

// unwatchDepLocked drops one reference to a dependency watch and closes the
// OS handle when no entry references the path anymore.
func (s *Store) unwatchDepLocked(dep string) {
	refs, ok := s.watchRefs[dep]
	if !ok {
		return
	}
	if refs <= 1 {
		delete(s.watchRefs, dep)
		_ = s.fsWatcher.Remove(dep)
		return
	}
	s.watchRefs[dep] = refs - 1
}
