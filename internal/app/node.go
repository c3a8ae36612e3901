package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/cache"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/config"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/fs"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/logger"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/hotreload"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/loader"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			loader.LoaderNodeID,
			hotreload.CoordinatorNodeID,
			cache.StoreNodeID,
			fs.WalkerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			progressive, err := graft.Dep[*loader.ProgressiveLoader](ctx)
			if err != nil {
				return nil, err
			}
			coordinator, err := graft.Dep[*hotreload.Coordinator](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.UnitCache](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings, progressive, coordinator, store, walker, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}
