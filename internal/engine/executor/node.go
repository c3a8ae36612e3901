package executor

import (
	"context"

	"github.com/grindlemire/graft"
)

// RunnerNodeID is the unique identifier for the shared task runner node.
const RunnerNodeID graft.ID = "engine.executor.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        RunnerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Runner, error) {
			return NewRunner(), nil
		},
	})
}
