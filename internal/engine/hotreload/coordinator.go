package hotreload

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/fs"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/watcher"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/executor"
	"github.com/mrcacomacaco/zodkit-sub002/internal/engine/loader"
	"go.trai.ch/zerr"
)

// State identifies the coordinator's lifecycle phase.
type State string

const (
	// StateIdle means the coordinator has not started or has stopped.
	StateIdle State = "idle"
	// StateBuilding means the initial load pass is running.
	StateBuilding State = "building"
	// StateWatching means the watcher is live and no work is pending.
	StateWatching State = "watching"
	// StateDebouncing means raw events are coalescing in their windows.
	StateDebouncing State = "debouncing"
	// StateBatchReload means a reload pass is draining the queue.
	StateBatchReload State = "batch-reload"
)

const (
	// reloadSubBatch bounds concurrent reloads within one pass.
	reloadSubBatch = 4
	// retriggerDelay is the pause before draining a still-pending queue.
	retriggerDelay = 50 * time.Millisecond
)

// Coordinator drives watch mode: it performs the initial load, coalesces
// file system events per path, invalidates cache entries along the
// dependency graph and reloads affected units in bounded batches.
type Coordinator struct {
	settings *domain.Settings
	loader   *loader.ProgressiveLoader
	cache    ports.UnitCache
	graph    *domain.Graph
	watch    ports.Watcher
	walker   *fs.Walker
	runner   *executor.Runner
	sink     ports.EventSink
	logger   ports.Logger
	tracer   ports.Tracer

	mu        sync.Mutex
	state     State
	started   bool
	root      string
	cancel    context.CancelFunc
	debouncer *watcher.Debouncer
	queue     *ReloadQueue
	kick      chan struct{}
	wg        sync.WaitGroup
}

// New creates a Coordinator.
func New(
	settings *domain.Settings,
	progressive *loader.ProgressiveLoader,
	cache ports.UnitCache,
	graph *domain.Graph,
	watch ports.Watcher,
	walker *fs.Walker,
	runner *executor.Runner,
	sink ports.EventSink,
	log ports.Logger,
	tracer ports.Tracer,
) *Coordinator {
	return &Coordinator{
		settings: settings,
		loader:   progressive,
		cache:    cache,
		graph:    graph,
		watch:    watch,
		walker:   walker,
		runner:   runner,
		sink:     sink,
		logger:   log,
		tracer:   tracer,
		state:    StateIdle,
		queue:    NewReloadQueue(),
		kick:     make(chan struct{}, 1),
	}
}

// State returns the coordinator's current phase.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start performs the initial load of all matching units under root, then
// begins watching for changes. It returns once watching is live.
func (c *Coordinator) Start(ctx context.Context, root string) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return zerr.With(domain.ErrReload, "reason", "already started")
	}
	c.started = true
	c.root = root
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	c.setState(StateBuilding)

	spanCtx, span := c.tracer.Start(ctx, "hotreload.initial_build")
	paths := c.collectPaths(root)
	span.SetAttribute("paths", len(paths))
	if _, err := c.loader.LoadUnits(spanCtx, paths); err != nil {
		span.RecordError(err)
		span.End()
		c.markStopped()
		return zerr.Wrap(err, domain.ErrReload.Error())
	}
	span.End()

	c.mu.Lock()
	c.debouncer = watcher.NewDebouncer(c.settings.Debounce, c.onDebounced)
	c.mu.Unlock()

	if err := c.watch.Start(ctx, root); err != nil {
		c.markStopped()
		return err
	}

	c.wg.Add(2)
	go c.eventLoop(ctx)
	go c.batchLoop(ctx)

	c.setState(StateWatching)
	c.sink.Emit(domain.Event{Kind: domain.EventStarted, Paths: []string{root}})
	return nil
}

// Stop shuts down watching, cancels pending debounce windows, drops queued
// work and persists the cache snapshot.
func (c *Coordinator) Stop() error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return domain.ErrNotStarted
	}
	c.started = false
	cancel := c.cancel
	debouncer := c.debouncer
	c.mu.Unlock()

	cancel()
	if debouncer != nil {
		debouncer.Stop()
	}
	c.queue.Clear()

	err := c.watch.Stop()
	c.wg.Wait()

	if perr := c.cache.Persist(); perr != nil {
		c.logger.Error(perr)
	}

	c.setState(StateIdle)
	c.sink.Emit(domain.Event{Kind: domain.EventStopped})
	return err
}

// collectPaths walks root for files matching the configured patterns.
func (c *Coordinator) collectPaths(root string) []string {
	var paths []string
	for path := range c.walker.WalkMatches(root, c.settings.Patterns, c.settings.Exclude) {
		paths = append(paths, path)
	}
	return paths
}

// eventLoop feeds raw watcher events into the per-path debouncer.
func (c *Coordinator) eventLoop(ctx context.Context) {
	defer c.wg.Done()

	for event := range c.watch.Events() {
		if ctx.Err() != nil {
			return
		}
		if !c.matches(event.Path) {
			continue
		}
		c.setState(StateDebouncing)
		c.debouncer.Add(event.Path, event.Operation)
	}
}

// matches reports whether a watched path is a unit the engine cares about.
func (c *Coordinator) matches(path string) bool {
	rel := fs.Relativize(c.root, path)
	return domain.MatchAny(rel, c.settings.Patterns) && !domain.MatchAny(rel, c.settings.Exclude)
}

// onDebounced handles one coalesced change. Removals prune the graph and
// requeue former dependents; writes and creates invalidate along the
// cascade strategy and queue the whole set.
func (c *Coordinator) onDebounced(path string, op ports.WatchOp) {
	c.sink.Emit(domain.Event{Kind: domain.EventFileChanged, Paths: []string{path}})

	switch op {
	case ports.OpRemove, ports.OpRename:
		c.handleRemoval(path)
	default:
		c.handleChange(path)
	}
	c.triggerBatch()
}

// handleRemoval drops the unit from graph and cache. Former dependents are
// queued for reload since their imports now dangle.
func (c *Coordinator) handleRemoval(path string) {
	dependents := c.graph.RemoveNode(path)
	c.cache.Invalidate(path)
	c.queue.Remove(path)

	for _, dependent := range dependents {
		c.queue.Enqueue(dependent)
	}
	if len(dependents) > 0 {
		c.sink.Emit(domain.Event{Kind: domain.EventDependencyUpdated, Paths: dependents})
	}
}

// handleChange invalidates the changed unit plus its cascade set and queues
// everything for reload.
func (c *Coordinator) handleChange(path string) {
	set := c.invalidationSet(path)

	invalidated := make([]string, 0, len(set))
	for member := range set {
		c.cache.Invalidate(member)
		c.queue.Enqueue(member)
		invalidated = append(invalidated, member)
	}
	sort.Strings(invalidated)
	c.sink.Emit(domain.Event{Kind: domain.EventCacheInvalidated, Paths: invalidated})

	if len(invalidated) > 1 {
		dependents := invalidated[:0:0]
		for _, member := range invalidated {
			if member != path {
				dependents = append(dependents, member)
			}
		}
		c.sink.Emit(domain.Event{Kind: domain.EventDependencyUpdated, Paths: dependents})
	}
}

// invalidationSet resolves the set of paths a change to path dirties,
// according to the configured cascade strategy.
func (c *Coordinator) invalidationSet(path string) map[string]struct{} {
	switch c.settings.Cascade {
	case domain.CascadeConservative:
		return c.graph.InvalidationSet(path, domain.InvalidationOptions{Cascade: true})
	case domain.CascadeAggressive:
		return c.graph.InvalidationSet(path, domain.InvalidationOptions{
			Cascade:  true,
			MaxDepth: c.settings.MaxDepth,
		})
	default:
		// Smart: skip the traversal entirely for leaf units.
		if len(c.graph.Dependents(path)) == 0 {
			return map[string]struct{}{path: {}}
		}
		return c.graph.InvalidationSet(path, domain.InvalidationOptions{Cascade: true})
	}
}

// triggerBatch wakes the batch loop without blocking.
func (c *Coordinator) triggerBatch() {
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// batchLoop drains the reload queue in bounded passes. It keeps draining
// while passes make progress; a pass that reloads nothing leaves the
// remainder queued until the next change arrives.
func (c *Coordinator) batchLoop(ctx context.Context) {
	defer c.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.kick:
		}

		for c.queue.Len() > 0 && ctx.Err() == nil {
			if c.runBatch(ctx) == 0 {
				break
			}
			if c.queue.Len() == 0 {
				break
			}
			select {
			case <-time.After(retriggerDelay):
			case <-ctx.Done():
				return
			}
		}
		c.setState(StateWatching)
	}
}

// runBatch reloads up to UpdateBatchSize queued paths and returns how many
// succeeded. Successful paths leave the queue; failures stay for retry.
func (c *Coordinator) runBatch(ctx context.Context) int {
	batch := c.queue.Take(c.settings.UpdateBatchSize)
	if len(batch) == 0 {
		return 0
	}

	c.setState(StateBatchReload)
	ctx, span := c.tracer.Start(ctx, "hotreload.batch")
	defer span.End()
	span.SetAttribute("batch", len(batch))

	opts := executor.OptionsFor(c.settings.Executor)
	opts.MaxConcurrency = reloadSubBatch
	opts.BatchSize = reloadSubBatch
	opts.ID = func(index int) string { return batch[index].Path }

	start := time.Now()
	results, err := executor.Run(ctx, c.runner, batch, func(ctx context.Context, p Pending, _ int) (domain.Unit, error) {
		return c.loader.ReloadUnit(ctx, p.Path)
	}, opts)
	if err != nil {
		span.RecordError(err)
		c.logger.Error(err)
		return 0
	}

	reloaded := make([]string, 0, len(results))
	for i := range results {
		if results[i].OK {
			// A path re-enqueued mid-flight stays queued for the
			// next pass; only the taken entry is acknowledged.
			c.queue.Ack(batch[results[i].Index])
			reloaded = append(reloaded, results[i].ID)
			continue
		}
		c.sink.Emit(domain.Event{
			Kind:  domain.EventError,
			Paths: []string{results[i].ID},
			Err:   results[i].Err,
		})
	}

	elapsed := time.Since(start)
	if elapsed > c.settings.MaxReloadTime {
		c.logger.Warn("reload pass exceeded its time budget: " + elapsed.String())
	}
	c.sink.Emit(domain.Event{
		Kind:    domain.EventReloadComplete,
		Paths:   reloaded,
		Elapsed: elapsed,
	})
	return len(reloaded)
}

func (c *Coordinator) setState(state State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// markStopped rolls back a failed Start.
func (c *Coordinator) markStopped() {
	c.mu.Lock()
	c.started = false
	c.state = StateIdle
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
