package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/config"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/fs"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

// StoreNodeID is the unique identifier for the unit cache Graft node.
const StoreNodeID graft.ID = "adapter.cache.store"

func init() {
	graft.Register(graft.Node[ports.UnitCache]{
		ID:        StoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.UnitCache, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(settings.Cache, hasher)
		},
	})
}
