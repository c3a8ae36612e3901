package loader

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/executor"
	"go.trai.ch/zerr"
)

const (
	// hybridEagerShare is the fraction of highest-priority chunks the
	// hybrid strategy loads eagerly.
	hybridEagerShare = 0.3
)

// ProgressiveLoader populates the unit cache and dependency graph from a set
// of paths, scheduling chunk loads according to the configured strategy.
type ProgressiveLoader struct {
	settings   *domain.Settings
	discoverer ports.Discoverer
	cache      ports.UnitCache
	graph      *domain.Graph
	runner     *executor.Runner
	tracer     ports.Tracer
	logger     ports.Logger
	chunker    *Chunker

	mu       sync.Mutex
	deferred map[string]*deferredLoad
}

// deferredLoad memoizes a lazy chunk load per path: the first access runs
// the load, every later access returns the same outcome.
type deferredLoad struct {
	once sync.Once
	fn   func() (domain.Unit, error)
	unit domain.Unit
	err  error
}

// New creates a ProgressiveLoader.
func New(
	settings *domain.Settings,
	discoverer ports.Discoverer,
	cache ports.UnitCache,
	graph *domain.Graph,
	runner *executor.Runner,
	tracer ports.Tracer,
	logger ports.Logger,
) *ProgressiveLoader {
	return &ProgressiveLoader{
		settings:   settings,
		discoverer: discoverer,
		cache:      cache,
		graph:      graph,
		runner:     runner,
		tracer:     tracer,
		logger:     logger,
		chunker:    NewChunker(settings.ChunkSize, settings.PriorityPatterns),
		deferred:   make(map[string]*deferredLoad),
	}
}

// loadPass is the per-call state of one LoadUnits invocation. Chunks are
// immutable once computed for the pass; the loaded set makes chunk loading
// idempotent against duplicate scheduling.
type loadPass struct {
	chunks []domain.Chunk

	mu      sync.Mutex
	loaded  map[int]bool
	results map[string]domain.Unit
}

// LoadUnits discovers and caches units for the given paths and returns the
// units loaded eagerly. Lazily deferred paths resolve through LoadDeferred
// on first access.
func (l *ProgressiveLoader) LoadUnits(ctx context.Context, paths []string) (map[string]domain.Unit, error) {
	ctx, span := l.tracer.Start(ctx, "loader.load_units")
	defer span.End()

	filtered := l.filterExcluded(paths)
	span.SetAttribute("paths", len(filtered))

	pass := &loadPass{
		chunks:  l.chunker.Partition(filtered),
		loaded:  make(map[int]bool),
		results: make(map[string]domain.Unit),
	}
	l.annotateExternalDeps(pass.chunks)

	var err error
	switch l.settings.Strategy {
	case domain.StrategyEager:
		err = l.loadEager(ctx, pass, pass.chunks)
	case domain.StrategyLazy:
		err = l.loadLazy(ctx, pass)
	case domain.StrategyHybrid:
		err = l.loadHybrid(ctx, pass)
	case domain.StrategyDependency:
		err = l.loadDependencyOrdered(ctx, pass)
	default:
		err = zerr.With(domain.ErrInvalidStrategy, "strategy", string(l.settings.Strategy))
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	pass.mu.Lock()
	defer pass.mu.Unlock()
	return pass.results, nil
}

// LoadDeferred resolves a lazily deferred path, loading its chunk on first
// access. Paths that were never deferred fall back to direct discovery.
func (l *ProgressiveLoader) LoadDeferred(path string) (domain.Unit, error) {
	l.mu.Lock()
	d, ok := l.deferred[path]
	l.mu.Unlock()

	if !ok {
		return l.loadSingle(context.Background(), path)
	}

	d.once.Do(func() {
		d.unit, d.err = d.fn()
	})
	return d.unit, d.err
}

// ReloadUnit invalidates the cached entry for path and loads it fresh,
// updating the dependency graph from the new import list.
func (l *ProgressiveLoader) ReloadUnit(ctx context.Context, path string) (domain.Unit, error) {
	l.cache.Invalidate(path)
	return l.loadSingle(ctx, path)
}

// filterExcluded drops paths matching any exclude pattern.
func (l *ProgressiveLoader) filterExcluded(paths []string) []string {
	filtered := make([]string, 0, len(paths))
	for _, path := range paths {
		if domain.MatchAny(path, l.settings.Exclude) {
			continue
		}
		filtered = append(filtered, path)
	}
	return filtered
}

// annotateExternalDeps fills each chunk's external dependency set from the
// unit graph: imports of members that resolve outside the chunk itself.
// On a cold start with an empty graph the sets stay empty and are refined
// by the next pass.
func (l *ProgressiveLoader) annotateExternalDeps(chunks []domain.Chunk) {
	for i := range chunks {
		members := make(map[string]struct{}, len(chunks[i].Paths))
		for _, path := range chunks[i].Paths {
			members[path] = struct{}{}
		}
		for _, path := range chunks[i].Paths {
			for _, dep := range l.graph.Dependencies(path) {
				if _, own := members[dep]; !own {
					chunks[i].ExternalDeps[dep] = struct{}{}
				}
			}
		}
	}
}

// loadEager loads the given chunks through the executor at full concurrency.
func (l *ProgressiveLoader) loadEager(ctx context.Context, pass *loadPass, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	opts := executor.OptionsFor(l.settings.Executor)
	opts.ID = func(index int) string {
		return fmt.Sprintf("chunk-%d", chunks[index].Index)
	}

	results, err := executor.Run(ctx, l.runner, chunks, func(ctx context.Context, chunk domain.Chunk, _ int) (int, error) {
		return len(chunk.Paths), l.loadChunk(ctx, pass, chunk)
	}, opts)
	if err != nil {
		return err
	}

	for i := range results {
		if !results[i].OK {
			l.logger.Error(zerr.With(results[i].Err, "chunk", results[i].ID))
		}
	}
	return nil
}

// loadLazy loads only priority-matching chunks now and defers the rest.
func (l *ProgressiveLoader) loadLazy(ctx context.Context, pass *loadPass) error {
	var eager []domain.Chunk
	for _, chunk := range pass.chunks {
		if l.chunker.matchesPriority(chunk) {
			eager = append(eager, chunk)
			continue
		}
		l.deferChunk(pass, chunk)
	}
	return l.loadEager(ctx, pass, eager)
}

// loadHybrid eagerly loads the top share of chunks by priority and defers
// the remainder.
func (l *ProgressiveLoader) loadHybrid(ctx context.Context, pass *loadPass) error {
	ordered := make([]domain.Chunk, len(pass.chunks))
	copy(ordered, pass.chunks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	eagerCount := int(math.Ceil(float64(len(ordered)) * hybridEagerShare))
	for _, chunk := range ordered[eagerCount:] {
		l.deferChunk(pass, chunk)
	}
	return l.loadEager(ctx, pass, ordered[:eagerCount])
}

// loadDependencyOrdered loads chunks wave by wave in topological order of
// the coarse chunk graph, so dependencies always complete before dependents.
func (l *ProgressiveLoader) loadDependencyOrdered(ctx context.Context, pass *loadPass) error {
	waves, err := l.chunkWaves(pass.chunks)
	if err != nil {
		return err
	}
	for _, wave := range waves {
		if err := l.loadEager(ctx, pass, wave); err != nil {
			return err
		}
	}
	return nil
}

// chunkWaves groups chunks into topological levels using a chunk-granularity
// graph derived from the unit graph. A cycle between chunks fails the pass.
func (l *ProgressiveLoader) chunkWaves(chunks []domain.Chunk) ([][]domain.Chunk, error) {
	owner := make(map[string]int, len(chunks))
	for i, chunk := range chunks {
		for _, path := range chunk.Paths {
			owner[path] = i
		}
	}

	chunkGraph := domain.NewGraph()
	for i := range chunks {
		chunkGraph.AddNode(chunkID(i))
		for _, path := range chunks[i].Paths {
			for _, dep := range l.graph.Dependencies(path) {
				j, ok := owner[dep]
				if !ok || j == i {
					continue
				}
				chunkGraph.AddEdge(chunkID(i), chunkID(j))
			}
		}
	}

	if _, err := chunkGraph.TopologicalSort(); err != nil {
		return nil, err
	}

	// Kahn levels: a wave is every chunk whose dependencies are all in
	// earlier waves.
	indegree := make(map[string]int, len(chunks))
	for i := range chunks {
		indegree[chunkID(i)] = len(chunkGraph.Dependencies(chunkID(i)))
	}

	var waves [][]domain.Chunk
	remaining := len(chunks)
	for remaining > 0 {
		var wave []domain.Chunk
		var ids []string
		for i := range chunks {
			id := chunkID(i)
			if deg, ok := indegree[id]; ok && deg == 0 {
				wave = append(wave, chunks[i])
				ids = append(ids, id)
			}
		}
		for _, id := range ids {
			delete(indegree, id)
			for _, dependent := range chunkGraph.Dependents(id) {
				if _, ok := indegree[dependent]; ok {
					indegree[dependent]--
				}
			}
		}
		waves = append(waves, wave)
		remaining -= len(wave)
	}
	return waves, nil
}

func chunkID(i int) string {
	return fmt.Sprintf("chunk-%d", i)
}

// deferChunk registers memoized deferred loaders for every path in chunk.
// A deferred load runs through the executor at concurrency 1, so lazy
// chunk loads share retries, timeouts and stats with eager ones.
func (l *ProgressiveLoader) deferChunk(pass *loadPass, chunk domain.Chunk) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, path := range chunk.Paths {
		l.deferred[path] = &deferredLoad{fn: func() (domain.Unit, error) {
			if err := l.loadChunkSerial(pass, chunk); err != nil {
				return domain.Unit{}, err
			}
			pass.mu.Lock()
			defer pass.mu.Unlock()
			unit, ok := pass.results[path]
			if !ok {
				return domain.Unit{}, zerr.With(domain.ErrDiscoveryFailed, "path", path)
			}
			return unit, nil
		}}
	}
}

// loadChunkSerial pushes a single chunk through the executor with the
// configured retry and timeout settings but no parallelism.
func (l *ProgressiveLoader) loadChunkSerial(pass *loadPass, chunk domain.Chunk) error {
	opts := executor.OptionsFor(l.settings.Executor)
	opts.MaxConcurrency = 1
	opts.BatchSize = 1
	opts.ID = func(int) string { return chunkID(chunk.Index) }

	results, err := executor.Run(context.Background(), l.runner, []domain.Chunk{chunk}, func(ctx context.Context, ch domain.Chunk, _ int) (int, error) {
		return len(ch.Paths), l.loadChunk(ctx, pass, ch)
	}, opts)
	if err != nil {
		return err
	}
	if !results[0].OK {
		return results[0].Err
	}
	return nil
}

// loadChunk discovers and caches one chunk exactly once per pass. A cache
// under memory pressure gets a cleanup pass first and the runner drops to
// half concurrency until pressure clears.
func (l *ProgressiveLoader) loadChunk(ctx context.Context, pass *loadPass, chunk domain.Chunk) error {
	pass.mu.Lock()
	if pass.loaded[chunk.Index] {
		pass.mu.Unlock()
		return nil
	}
	pass.loaded[chunk.Index] = true
	pass.mu.Unlock()

	if l.cache.UnderPressure() {
		l.runner.ReduceConcurrency()
		l.cache.Shrink()
	} else {
		l.runner.RestoreConcurrency()
	}

	units := make([]domain.Unit, 0, len(chunk.Paths))
	for _, path := range chunk.Paths {
		if cached, ok := l.cache.Get(path); ok {
			units = append(units, cached)
			continue
		}
		unit, err := l.loadSingle(ctx, path)
		if err != nil {
			l.logger.Error(err)
			continue
		}
		units = append(units, unit)
	}

	pass.mu.Lock()
	for _, unit := range units {
		pass.results[unit.Path] = unit
	}
	pass.mu.Unlock()
	return nil
}

// loadSingle discovers one path, updates the graph and caches the unit.
func (l *ProgressiveLoader) loadSingle(ctx context.Context, path string) (domain.Unit, error) {
	units, err := l.discoverer.DiscoverUnits(ctx, []string{path})
	if err != nil {
		return domain.Unit{}, zerr.With(zerr.Wrap(err, domain.ErrDiscoveryFailed.Error()), "path", path)
	}
	if len(units) == 0 {
		return domain.Unit{}, zerr.With(domain.ErrDiscoveryFailed, "path", path)
	}

	unit := units[0]
	l.graph.SetDependencies(unit.Path, unit.Imports)
	if err := l.cache.Set(unit.Path, unit, unit.Imports); err != nil {
		return domain.Unit{}, err
	}
	return unit, nil
}
