package discovery

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/config"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/fs"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

// DiscovererNodeID is the unique identifier for the discoverer Graft node.
const DiscovererNodeID graft.ID = "adapter.discovery"

func init() {
	graft.Register(graft.Node[ports.Discoverer]{
		ID:        DiscovererNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, fs.ScannerNodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.Discoverer, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			scanner, err := graft.Dep[ports.SourceScanner](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewDiscoverer(hasher, scanner, settings.StreamThreshold), nil
		},
	})
}
