package loader_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/cache"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/discovery"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/fs"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/logger"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/telemetry"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports/mocks"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/executor"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/loader"
)

func testSettings(strategy domain.LoadStrategy) *domain.Settings {
	settings := domain.DefaultSettings()
	settings.Strategy = strategy
	settings.ChunkSize = 2
	settings.PriorityPatterns = nil
	settings.Executor.Retries = 0
	return settings
}

func quietLogger() ports.Logger {
	log := logger.New()
	log.SetOutput(io.Discard)
	return log
}

func newStore(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.NewStore(domain.CacheSettings{TTL: time.Hour, MaxSize: 1 << 20}, fs.NewHasher())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newLoader(t *testing.T, settings *domain.Settings, disc ports.Discoverer, store ports.UnitCache, graph *domain.Graph) *loader.ProgressiveLoader {
	t.Helper()
	return newLoaderWithRunner(t, settings, disc, store, graph, executor.NewRunner())
}

func newLoaderWithRunner(t *testing.T, settings *domain.Settings, disc ports.Discoverer, store ports.UnitCache, graph *domain.Graph, runner *executor.Runner) *loader.ProgressiveLoader {
	t.Helper()
	return loader.New(
		settings,
		disc,
		store,
		graph,
		runner,
		telemetry.NoopTracer{},
		quietLogger(),
	)
}

func writeSchema(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func realDiscoverer() ports.Discoverer {
	return discovery.NewDiscoverer(fs.NewHasher(), fs.NewRegexScanner(), 0)
}

func TestLoadUnits_EagerLoadsEverything(t *testing.T) {
	root := t.TempDir()
	var files []string
	for _, name := range []string{"a.schema.ts", "b.schema.ts", "c.schema.ts"} {
		files = append(files, writeSchema(t, root, name, "export const S = z.object({})\n"))
	}

	store := newStore(t)
	graph := domain.NewGraph()
	l := newLoader(t, testSettings(domain.StrategyEager), realDiscoverer(), store, graph)

	units, err := l.LoadUnits(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, units, 3)

	for _, path := range files {
		_, ok := store.Get(path)
		assert.True(t, ok, "eager load caches %s", path)
		assert.True(t, graph.Has(path))
	}
}

func TestLoadUnits_FiltersExcludedPaths(t *testing.T) {
	root := t.TempDir()
	kept := writeSchema(t, root, "a.schema.ts", "export const A = z.object({})\n")
	skipped := writeSchema(t, root, "node_modules/pkg/b.schema.ts", "export const B = z.object({})\n")

	settings := testSettings(domain.StrategyEager)
	l := newLoader(t, settings, realDiscoverer(), newStore(t), domain.NewGraph())

	units, err := l.LoadUnits(context.Background(), []string{kept, skipped})
	require.NoError(t, err)

	assert.Contains(t, units, kept)
	assert.NotContains(t, units, skipped)
}

func TestLoadUnits_InvalidStrategy(t *testing.T) {
	settings := testSettings("warp")
	l := newLoader(t, settings, realDiscoverer(), newStore(t), domain.NewGraph())

	_, err := l.LoadUnits(context.Background(), []string{"a.ts"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidStrategy)
}

func TestLoadUnits_LazyDefersNonPriorityChunks(t *testing.T) {
	root := t.TempDir()
	priority := writeSchema(t, root, "schemas/index.schema.ts", "export const I = z.object({})\n")
	deferred := writeSchema(t, root, "other.schema.ts", "export const O = z.object({})\n")

	settings := testSettings(domain.StrategyLazy)
	settings.ChunkSize = 1
	settings.PriorityPatterns = []string{"**/index.schema.ts"}

	store := newStore(t)
	l := newLoader(t, settings, realDiscoverer(), store, domain.NewGraph())

	units, err := l.LoadUnits(context.Background(), []string{priority, deferred})
	require.NoError(t, err)

	assert.Contains(t, units, priority)
	assert.NotContains(t, units, deferred, "non-priority chunks are deferred")
	_, ok := store.Get(deferred)
	assert.False(t, ok)

	unit, err := l.LoadDeferred(deferred)
	require.NoError(t, err)
	assert.Equal(t, deferred, unit.Path)
	_, ok = store.Get(deferred)
	assert.True(t, ok, "deferred load populates the cache")
}

func TestLoadDeferred_IsMemoized(t *testing.T) {
	root := t.TempDir()
	path := writeSchema(t, root, "a.schema.ts", "export const A = z.object({})\n")

	settings := testSettings(domain.StrategyLazy)
	settings.ChunkSize = 1

	l := newLoader(t, settings, realDiscoverer(), newStore(t), domain.NewGraph())

	_, err := l.LoadUnits(context.Background(), []string{path})
	require.NoError(t, err)

	first, err := l.LoadDeferred(path)
	require.NoError(t, err)

	// The source disappearing after the first access must not matter.
	require.NoError(t, os.Remove(path))

	second, err := l.LoadDeferred(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadDeferred_RunsThroughExecutor(t *testing.T) {
	root := t.TempDir()
	path := writeSchema(t, root, "a.schema.ts", "export const A = z.object({})\n")

	settings := testSettings(domain.StrategyLazy)
	settings.ChunkSize = 1

	runner := executor.NewRunner()
	l := newLoaderWithRunner(t, settings, realDiscoverer(), newStore(t), domain.NewGraph(), runner)

	_, err := l.LoadUnits(context.Background(), []string{path})
	require.NoError(t, err)
	before := runner.Stats().Processed

	_, err = l.LoadDeferred(path)
	require.NoError(t, err)
	assert.Equal(t, before+1, runner.Stats().Processed, "a deferred load is an executor task")

	// Memoized: a second access runs no further task.
	_, err = l.LoadDeferred(path)
	require.NoError(t, err)
	assert.Equal(t, before+1, runner.Stats().Processed)
}

func TestLoadUnits_MemoryPressureHalvesConcurrency(t *testing.T) {
	root := t.TempDir()
	path := writeSchema(t, root, "a.schema.ts", "export const A = z.object({})\n")

	store, err := cache.NewStore(domain.CacheSettings{TTL: time.Hour, MaxSize: 4096}, fs.NewHasher())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	warm := domain.Unit{Path: "warm.ts", Names: []string{strings.Repeat("x", 8192)}}
	require.NoError(t, store.Set("warm.ts", warm, nil))
	require.True(t, store.UnderPressure())

	runner := executor.NewRunner()
	l := newLoaderWithRunner(t, testSettings(domain.StrategyEager), realDiscoverer(), store, domain.NewGraph(), runner)

	_, err = l.LoadUnits(context.Background(), []string{path})
	require.NoError(t, err)
	assert.True(t, runner.Reduced(), "pressure halves the runner's concurrency")
	assert.False(t, store.UnderPressure(), "the shrink pass clears the pressure")

	_, err = l.LoadUnits(context.Background(), []string{path})
	require.NoError(t, err)
	assert.False(t, runner.Reduced(), "cleared pressure restores concurrency")
}

func TestLoadUnits_HybridLoadsTopPriorityShare(t *testing.T) {
	root := t.TempDir()
	priority := writeSchema(t, root, "schemas/index.schema.ts", "export const I = z.object({})\n")
	var rest []string
	for _, name := range []string{"b.schema.ts", "c.schema.ts", "d.schema.ts"} {
		rest = append(rest, writeSchema(t, root, name, "export const S = z.object({})\n"))
	}

	settings := testSettings(domain.StrategyHybrid)
	settings.ChunkSize = 1
	settings.PriorityPatterns = []string{"**/index.schema.ts"}

	l := newLoader(t, settings, realDiscoverer(), newStore(t), domain.NewGraph())

	// Four single-path chunks, a 0.3 eager share: only the top two chunks
	// by priority load now, led by the priority match.
	units, err := l.LoadUnits(context.Background(), append([]string{priority}, rest...))
	require.NoError(t, err)

	assert.Contains(t, units, priority)
	assert.Len(t, units, 2)
}

func TestLoadUnits_DependencyOrderLoadsDependenciesFirst(t *testing.T) {
	ctrl := gomock.NewController(t)

	aPath, bPath := "/src/a.schema.ts", "/src/b.schema.ts"

	graph := domain.NewGraph()
	graph.SetDependencies(aPath, []string{bPath})

	disc := mocks.NewMockDiscoverer(ctrl)
	gomock.InOrder(
		disc.EXPECT().DiscoverUnits(gomock.Any(), []string{bPath}).
			Return([]domain.Unit{{Path: bPath, Hash: 2}}, nil),
		disc.EXPECT().DiscoverUnits(gomock.Any(), []string{aPath}).
			Return([]domain.Unit{{Path: aPath, Hash: 1, Imports: []string{bPath}}}, nil),
	)

	settings := testSettings(domain.StrategyDependency)
	settings.ChunkSize = 1

	l := newLoader(t, settings, disc, newStore(t), graph)

	units, err := l.LoadUnits(context.Background(), []string{aPath, bPath})
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

func TestLoadUnits_DependencyOrderRejectsChunkCycles(t *testing.T) {
	aPath, bPath := "/src/a.schema.ts", "/src/b.schema.ts"

	graph := domain.NewGraph()
	graph.SetDependencies(aPath, []string{bPath})
	graph.SetDependencies(bPath, []string{aPath})

	settings := testSettings(domain.StrategyDependency)
	settings.ChunkSize = 1

	l := newLoader(t, settings, realDiscoverer(), newStore(t), graph)

	_, err := l.LoadUnits(context.Background(), []string{aPath, bPath})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestReloadUnit_RefreshesCacheAndGraph(t *testing.T) {
	root := t.TempDir()
	dep := writeSchema(t, root, "base.schema.ts", "export const Base = z.object({})\n")
	path := writeSchema(t, root, "user.schema.ts", "export const UserSchema = z.object({})\n")

	store := newStore(t)
	graph := domain.NewGraph()
	l := newLoader(t, testSettings(domain.StrategyEager), realDiscoverer(), store, graph)

	first, err := l.ReloadUnit(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, graph.Dependencies(path))

	writeSchema(t, root, "user.schema.ts", `
import { Base } from "./base.schema"
export const UserSchema = Base.extend({})
`)

	second, err := l.ReloadUnit(context.Background(), path)
	require.NoError(t, err)
	assert.NotEqual(t, first.Hash, second.Hash)
	assert.Equal(t, []string{dep}, graph.Dependencies(path))

	cached, ok := store.Get(path)
	require.True(t, ok)
	assert.Equal(t, second, cached)
}
