package watcher

import (
	"sync"
	"time"
	"unique"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

// Debouncer coalesces rapid file system events with one timer per path.
// Debouncing is per path, not global: concurrent changes to different files
// fire independently and may overlap, while repeated events on the same path
// keep resetting only that path's timer. The last operation seen for a path
// wins.
type Debouncer struct {
	mu       sync.Mutex
	window   time.Duration
	timers   map[unique.Handle[string]]*time.Timer
	ops      map[unique.Handle[string]]ports.WatchOp
	callback func(path string, op ports.WatchOp)
}

// NewDebouncer creates a debouncer with the given window and callback.
// The callback runs on the timer goroutine of the path that fired.
func NewDebouncer(window time.Duration, callback func(path string, op ports.WatchOp)) *Debouncer {
	return &Debouncer{
		window:   window,
		timers:   make(map[unique.Handle[string]]*time.Timer),
		ops:      make(map[unique.Handle[string]]ports.WatchOp),
		callback: callback,
	}
}

// Add schedules (or reschedules) the debounce timer for path.
func (d *Debouncer) Add(path string, op ports.WatchOp) {
	d.mu.Lock()
	defer d.mu.Unlock()

	handle := unique.Make(path)
	d.ops[handle] = op

	if timer, ok := d.timers[handle]; ok {
		timer.Stop()
	}
	d.timers[handle] = time.AfterFunc(d.window, func() {
		d.fire(handle)
	})
}

// fire delivers the coalesced event for one path.
func (d *Debouncer) fire(handle unique.Handle[string]) {
	d.mu.Lock()
	op, pending := d.ops[handle]
	delete(d.ops, handle)
	delete(d.timers, handle)
	d.mu.Unlock()

	// A Stop racing the timer may have drained the entry already.
	if !pending || d.callback == nil {
		return
	}
	d.callback(handle.Value(), op)
}

// Pending returns the number of paths currently awaiting their window.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.ops)
}

// Stop cancels all pending timers without firing them.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for handle, timer := range d.timers {
		timer.Stop()
		delete(d.timers, handle)
		delete(d.ops, handle)
	}
}
