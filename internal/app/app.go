// Package app implements the application layer for zodkit.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/fs"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/telemetry"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/hotreload"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/loader"
	"go.trai.ch/zerr"
)

// App wires the engine components behind the CLI commands.
type App struct {
	settings    *domain.Settings
	loader      *loader.ProgressiveLoader
	coordinator *hotreload.Coordinator
	cache       ports.UnitCache
	walker      *fs.Walker
	logger      ports.Logger
}

// New creates a new App instance.
func New(
	settings *domain.Settings,
	progressive *loader.ProgressiveLoader,
	coordinator *hotreload.Coordinator,
	cache ports.UnitCache,
	walker *fs.Walker,
	log ports.Logger,
) *App {
	return &App{
		settings:    settings,
		loader:      progressive,
		coordinator: coordinator,
		cache:       cache,
		walker:      walker,
		logger:      log,
	}
}

// LoadOptions configures the Load method.
type LoadOptions struct {
	Root    string
	NoCache bool
}

// Load performs a one-shot discovery and load pass over all matching units
// under the root, then persists the cache snapshot.
func (a *App) Load(ctx context.Context, opts LoadOptions) error {
	shutdown := telemetry.Setup(a.logger)
	defer func() { _ = shutdown(ctx) }()

	if opts.NoCache {
		a.cache.Shrink()
	} else if err := a.cache.Restore(); err != nil {
		// A corrupt snapshot downgrades to a cold start.
		a.logger.Error(err)
	}

	var paths []string
	for path := range a.walker.WalkMatches(opts.Root, a.settings.Patterns, a.settings.Exclude) {
		paths = append(paths, path)
	}

	units, err := a.loader.LoadUnits(ctx, paths)
	if err != nil {
		return err
	}

	if err := a.cache.Persist(); err != nil {
		a.logger.Error(err)
	}

	fmt.Fprintf(os.Stdout, "loaded %d of %d units (%s strategy)\n",
		len(units), len(paths), a.settings.Strategy)
	return nil
}

// WatchOptions configures the Watch method.
type WatchOptions struct {
	Root string
}

// Watch runs the hot-reload coordinator until the context is cancelled.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	shutdown := telemetry.Setup(a.logger)
	defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()

	if err := a.cache.Restore(); err != nil {
		a.logger.Error(err)
	}

	if err := a.coordinator.Start(ctx, opts.Root); err != nil {
		return err
	}

	<-ctx.Done()
	return a.coordinator.Stop()
}

// Clean removes the on-disk cache directory.
func (a *App) Clean() error {
	dir := a.settings.Cache.Dir
	if dir == "" {
		dir = domain.DefaultCachePath()
	}
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPersistence.Error()), "dir", dir)
	}
	a.logger.Info("removed cache directory " + dir)
	return nil
}
