package hotreload

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/cache"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/config"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/fs"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/linear"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/logger"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/telemetry"
	watchadapter "github.com/mrcacomacaco/zodkit-sub002/internal/adapters/watcher"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/executor"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/loader"
)

// CoordinatorNodeID is the unique identifier for the hot-reload coordinator
// Graft node.
const CoordinatorNodeID graft.ID = "engine.hotreload"

func init() {
	graft.Register(graft.Node[*Coordinator]{
		ID:        CoordinatorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			loader.LoaderNodeID,
			cache.StoreNodeID,
			loader.GraphNodeID,
			watchadapter.WatcherNodeID,
			fs.WalkerNodeID,
			executor.RunnerNodeID,
			linear.SinkNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Coordinator, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			progressive, err := graft.Dep[*loader.ProgressiveLoader](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.UnitCache](ctx)
			if err != nil {
				return nil, err
			}
			graph, err := graft.Dep[*domain.Graph](ctx)
			if err != nil {
				return nil, err
			}
			watch, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[*executor.Runner](ctx)
			if err != nil {
				return nil, err
			}
			sink, err := graft.Dep[ports.EventSink](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings, progressive, store, graph, watch, walker, runner, sink, log, tracer), nil
		},
	})
}
