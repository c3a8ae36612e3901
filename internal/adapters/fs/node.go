package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the file walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the content hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// ScannerNodeID is the unique identifier for the source scanner Graft node.
	ScannerNodeID graft.ID = "adapter.fs.scanner"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.SourceScanner]{
		ID:        ScannerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceScanner, error) {
			return NewRegexScanner(), nil
		},
	})
}
