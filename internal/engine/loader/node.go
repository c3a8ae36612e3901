package loader

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/cache"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/config"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/discovery"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/logger"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/telemetry"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/executor"
)

const (
	// GraphNodeID is the unique identifier for the shared unit graph node.
	GraphNodeID graft.ID = "engine.graph"
	// LoaderNodeID is the unique identifier for the progressive loader node.
	LoaderNodeID graft.ID = "engine.loader"
)

func init() {
	graft.Register(graft.Node[*domain.Graph]{
		ID:        GraphNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*domain.Graph, error) {
			return domain.NewGraph(), nil
		},
	})

	graft.Register(graft.Node[*ProgressiveLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			discovery.DiscovererNodeID,
			cache.StoreNodeID,
			GraphNodeID,
			executor.RunnerNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*ProgressiveLoader, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			discoverer, err := graft.Dep[ports.Discoverer](ctx)
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
			runner, err := graft.Dep[*executor.Runner](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings, discoverer, store, graph, runner, tracer, log), nil
		},
	})
}
