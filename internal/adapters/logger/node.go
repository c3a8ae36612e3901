package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			log := New()
			if os.Getenv("ZODKIT_LOG_JSON") == "1" {
				log.SetJSON(true)
			}
			return log, nil
		},
	})
}
