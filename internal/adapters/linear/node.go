package linear

import (
	"context"
	"os"
	"sync"

	"github.com/grindlemire/graft"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/detector"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

// SinkNodeID is the unique identifier for the event sink Graft node.
const SinkNodeID graft.ID = "adapter.linear.sink"

var (
	modeMu       sync.Mutex
	modeOverride string
)

// SetOutputMode records the user's output mode flag. The entry point calls
// this before resolving the sink node.
func SetOutputMode(flag string) {
	modeMu.Lock()
	defer modeMu.Unlock()
	modeOverride = flag
}

func outputMode() string {
	modeMu.Lock()
	defer modeMu.Unlock()
	if modeOverride != "" {
		return modeOverride
	}
	return os.Getenv("ZODKIT_OUTPUT")
}

func init() {
	graft.Register(graft.Node[ports.EventSink]{
		ID:        SinkNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EventSink, error) {
			renderer := NewRenderer(nil, nil)
			mode := detector.ResolveMode(detector.DetectEnvironment(), outputMode())
			if mode == detector.ModeVerbose {
				renderer = renderer.WithVerbose()
			}
			return renderer, nil
		},
	})
}
