package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/watcher"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

// recorder drains the watcher's event iterator on its own goroutine.
type recorder struct {
	mu     sync.Mutex
	events []ports.WatchEvent
	done   chan struct{}
}

func record(w *watcher.Watcher) *recorder {
	r := &recorder{done: make(chan struct{})}
	go func() {
		defer close(r.done)
		for event := range w.Events() {
			r.mu.Lock()
			r.events = append(r.events, event)
			r.mu.Unlock()
		}
	}()
	return r
}

func (r *recorder) has(path string, op ports.WatchOp) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, event := range r.events {
		if event.Path == path && event.Operation == op {
			return true
		}
	}
	return false
}

func (r *recorder) sawPath(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, event := range r.events {
		if event.Path == path {
			return true
		}
	}
	return false
}

func TestWatcher_EmitsFileEvents(t *testing.T) {
	root := t.TempDir()

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), root))
	r := record(w)

	path := filepath.Join(root, "user.schema.ts")
	require.NoError(t, os.WriteFile(path, []byte("export const A = z.object({})\n"), 0o644))

	assert.Eventually(t, func() bool {
		return r.has(path, ports.OpCreate) || r.has(path, ports.OpWrite)
	}, 2*time.Second, 10*time.Millisecond, "file creation must surface as an event")

	require.NoError(t, os.Remove(path))
	assert.Eventually(t, func() bool {
		return r.has(path, ports.OpRemove)
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, w.Stop())
	<-r.done
}

func TestWatcher_SkipsDeclarationFiles(t *testing.T) {
	root := t.TempDir()

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), root))
	r := record(w)

	skipped := filepath.Join(root, "types.d.ts")
	require.NoError(t, os.WriteFile(skipped, []byte("declare const x: number\n"), 0o644))

	// A later event on a regular file orders after the filtered one.
	marker := filepath.Join(root, "marker.ts")
	require.NoError(t, os.WriteFile(marker, []byte("export {}\n"), 0o644))

	assert.Eventually(t, func() bool {
		return r.sawPath(marker)
	}, 2*time.Second, 10*time.Millisecond)

	assert.False(t, r.sawPath(skipped), "declaration files never emit events")

	require.NoError(t, w.Stop())
	<-r.done
}

func TestWatcher_PicksUpNewDirectories(t *testing.T) {
	root := t.TempDir()

	w, err := watcher.NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background(), root))
	r := record(w)

	nested := filepath.Join(root, "schemas")
	require.NoError(t, os.Mkdir(nested, 0o755))
	path := filepath.Join(nested, "new.schema.ts")

	assert.Eventually(t, func() bool {
		require.NoError(t, os.WriteFile(path, []byte("export const N = z.object({})\n"), 0o644))
		return r.sawPath(path)
	}, 2*time.Second, 25*time.Millisecond, "files in directories created after Start must be watched")

	require.NoError(t, w.Stop())
	<-r.done
}
