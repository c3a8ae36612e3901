package config

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
)

const (
	// LoaderNodeID is the unique identifier for the config loader Graft node.
	LoaderNodeID graft.ID = "adapter.config.loader"
	// SettingsNodeID is the unique identifier for the resolved settings Graft node.
	SettingsNodeID graft.ID = "adapter.config.settings"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[*domain.Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoaderNodeID},
		Run: func(ctx context.Context) (*domain.Settings, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return loader.Load(".")
		},
	})
}

// Settings resolves the cached settings node from the Graft context.
func Settings(ctx context.Context) (*domain.Settings, error) {
	return graft.Dep[*domain.Settings](ctx)
}
