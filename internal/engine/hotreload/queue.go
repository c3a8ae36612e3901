// Package hotreload implements the watch-mode coordinator: debounced change
// intake, cascading invalidation and batched unit reloads.
package hotreload

import (
	"sync"
	"time"
)

// Pending is one queued path as handed out by Take. It carries the
// timestamp and generation of the enqueue it was taken from, so a
// completion can be matched against the entry that was actually reloaded.
type Pending struct {
	// Path is the queued unit path.
	Path string
	// At is when the path last entered the queue before it was taken.
	At time.Time

	gen uint64
}

type queueEntry struct {
	at  time.Time
	gen uint64
}

// ReloadQueue holds paths awaiting reload. Re-enqueueing a pending path
// refreshes its timestamp but keeps its position, so the queue drains in
// first-seen order. Completed paths leave through Ack, which only drops
// an entry that has not been re-enqueued since it was taken; a change
// arriving while its stale reload is in flight stays queued. Failed
// paths stay queued for the next pass.
type ReloadQueue struct {
	mu     sync.Mutex
	queued map[string]queueEntry
	order  []string
	gen    uint64
}

// NewReloadQueue creates an empty queue.
func NewReloadQueue() *ReloadQueue {
	return &ReloadQueue{
		queued: make(map[string]queueEntry),
	}
}

// Enqueue adds path to the queue, or refreshes its timestamp if already
// pending. It reports whether the path was newly added.
func (q *ReloadQueue) Enqueue(path string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, pending := q.queued[path]
	q.gen++
	q.queued[path] = queueEntry{at: time.Now(), gen: q.gen}
	if pending {
		return false
	}
	q.order = append(q.order, path)
	return true
}

// Take returns up to n pending entries in first-seen order without
// removing them.
func (q *ReloadQueue) Take(n int) []Pending {
	q.mu.Lock()
	defer q.mu.Unlock()

	batch := make([]Pending, 0, min(n, len(q.order)))
	for _, path := range q.order {
		if len(batch) == n {
			break
		}
		if e, pending := q.queued[path]; pending {
			batch = append(batch, Pending{Path: path, At: e.at, gen: e.gen})
		}
	}
	return batch
}

// Ack drops a taken entry after its reload succeeded. It reports whether
// the entry was dropped; a path re-enqueued after the Take stays queued,
// since the completed reload predates the newest change.
func (q *ReloadQueue) Ack(p Pending) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, pending := q.queued[p.Path]
	if !pending || e.gen != p.gen {
		return false
	}
	delete(q.queued, p.Path)
	q.compactLocked()
	return true
}

// Remove drops path from the queue unconditionally. Used when the file
// itself is gone and a reload no longer makes sense.
func (q *ReloadQueue) Remove(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, pending := q.queued[path]; !pending {
		return
	}
	delete(q.queued, path)
	q.compactLocked()
}

// Len returns the number of pending paths.
func (q *ReloadQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queued)
}

// Clear drops all pending paths.
func (q *ReloadQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queued = make(map[string]queueEntry)
	q.order = q.order[:0]
}

// compactLocked rebuilds the order slice once removals outnumber live
// entries, keeping Take linear in queue size.
func (q *ReloadQueue) compactLocked() {
	if len(q.order) < 2*len(q.queued) {
		return
	}
	live := q.order[:0]
	for _, path := range q.order {
		if _, pending := q.queued[path]; pending {
			live = append(live, path)
		}
	}
	q.order = live
}
