package domain

import (
	"sort"
	"sync"

	"go.trai.ch/zerr"
)

// graphNode is a file-level vertex with symmetric edge sets.
type graphNode struct {
	dependsOn    map[string]struct{}
	dependedOnBy map[string]struct{}
}

// Graph is a directed dependency graph of unit paths. An edge from B to A
// means B imports A. Invalidation travels the dependedOnBy direction: when A
// changes, B is stale, never the reverse. The graph may be cyclic as
// discovered; only traversals that require an order reject cycles.
// All methods are safe for concurrent use.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]*graphNode
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*graphNode)}
}

// InvalidationOptions bounds an invalidation traversal.
type InvalidationOptions struct {
	// MaxDepth limits traversal depth; zero or negative means unbounded.
	MaxDepth int
	// Cascade enables propagation through dependents. When false the
	// invalidation set is just the root itself.
	Cascade bool
}

// AddNode ensures a node exists for the given path.
func (g *Graph) AddNode(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensure(path)
}

// AddEdge records that from depends on (imports) to. It is idempotent and
// auto-adds missing nodes.
func (g *Graph) AddEdge(from, to string) {
	if from == to {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	f := g.ensure(from)
	t := g.ensure(to)
	f.dependsOn[to] = struct{}{}
	t.dependedOnBy[from] = struct{}{}
}

// SetDependencies replaces the outgoing edge set of path with deps, keeping
// the inverse index symmetric. Used when a unit is re-discovered.
func (g *Graph) SetDependencies(path string, deps []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.ensure(path)
	for old := range n.dependsOn {
		delete(g.nodes[old].dependedOnBy, path)
	}
	n.dependsOn = make(map[string]struct{}, len(deps))
	for _, dep := range deps {
		if dep == path {
			continue
		}
		n.dependsOn[dep] = struct{}{}
		g.ensure(dep).dependedOnBy[path] = struct{}{}
	}
}

// RemoveNode deletes the node and detaches it from both edge directions.
// It returns the former dependents, which must be treated as stale since
// their import no longer resolves.
func (g *Graph) RemoveNode(path string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[path]
	if !ok {
		return nil
	}

	dependents := make([]string, 0, len(n.dependedOnBy))
	for dep := range n.dependedOnBy {
		dependents = append(dependents, dep)
		delete(g.nodes[dep].dependsOn, path)
	}
	for dep := range n.dependsOn {
		delete(g.nodes[dep].dependedOnBy, path)
	}
	delete(g.nodes, path)

	sort.Strings(dependents)
	return dependents
}

// Has reports whether the path is present in the graph.
func (g *Graph) Has(path string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[path]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// Paths returns all node paths in sorted order.
func (g *Graph) Paths() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedKeys(g.nodes)
}

// Dependents returns the paths that depend on (import) the given path.
func (g *Graph) Dependents(path string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[path]
	if !ok {
		return nil
	}
	return sortedKeys(n.dependedOnBy)
}

// Dependencies returns the paths the given path depends on.
func (g *Graph) Dependencies(path string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes[path]
	if !ok {
		return nil
	}
	return sortedKeys(n.dependsOn)
}

// TopologicalSort returns all paths ordered so that every node appears after
// the nodes it depends on. It fails with ErrCycleDetected, annotated with the
// offending cycle path, if a cycle is hit mid-traversal.
func (g *Graph) TopologicalSort() ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)

	order := make([]string, 0, len(g.nodes))
	marks := make(map[string]int, len(g.nodes))
	var path []string

	var visit func(u string) error
	visit = func(u string) error {
		marks[u] = visiting
		path = append(path, u)

		for dep := range g.nodes[u].dependsOn {
			switch marks[dep] {
			case visiting:
				return cycleError(path, dep)
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		marks[u] = visited
		path = path[:len(path)-1]
		order = append(order, u)
		return nil
	}

	// Sorted start order keeps the result deterministic across runs.
	for _, name := range sortedKeys(g.nodes) {
		if marks[name] == unvisited {
			if err := visit(name); err != nil {
				return nil, err
			}
		}
	}

	return order, nil
}

// cycleError builds an ErrCycleDetected annotated with the cycle path.
func cycleError(path []string, dep string) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}

	cycle := ""
	for _, node := range path[start:] {
		cycle += node + " -> "
	}
	cycle += dep
	return zerr.With(ErrCycleDetected, "cycle", cycle)
}

// MaxDepth returns the length in edges of the longest dependency chain from
// any root (a node with no dependencies). Traversal keeps a per-path visited
// set so diamonds and cycles terminate instead of recursing forever.
func (g *Graph) MaxDepth() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var roots []string
	for name, n := range g.nodes {
		if len(n.dependsOn) == 0 {
			roots = append(roots, name)
		}
	}
	// A graph that is one big cycle has no roots; start anywhere.
	if len(roots) == 0 {
		roots = sortedKeys(g.nodes)
	}

	deepest := 0
	onPath := make(map[string]struct{})

	var walk func(u string, depth int)
	walk = func(u string, depth int) {
		if depth > deepest {
			deepest = depth
		}
		onPath[u] = struct{}{}
		for next := range g.nodes[u].dependedOnBy {
			if _, seen := onPath[next]; seen {
				continue
			}
			walk(next, depth+1)
		}
		delete(onPath, u)
	}

	for _, root := range roots {
		walk(root, 0)
	}
	return deepest
}

// ensure returns the node for path, creating it if absent.
// Callers must hold the write lock.
func (g *Graph) ensure(path string) *graphNode {
	n, ok := g.nodes[path]
	if !ok {
		n = &graphNode{
			dependsOn:    make(map[string]struct{}),
			dependedOnBy: make(map[string]struct{}),
		}
		g.nodes[path] = n
	}
	return n
}

// InvalidationSet returns the set of paths that must be treated as stale
// after root changes: a breadth-first traversal of dependedOnBy edges bounded
// by opts.MaxDepth. With Cascade disabled the set is just {root}.
func (g *Graph) InvalidationSet(root string, opts InvalidationOptions) map[string]struct{} {
	set := map[string]struct{}{root: {}}
	if !opts.Cascade {
		return set
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.nodes[root]; !ok {
		return set
	}

	type item struct {
		path  string
		depth int
	}
	queue := []item{{path: root, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if opts.MaxDepth > 0 && cur.depth >= opts.MaxDepth {
			continue
		}
		for next := range g.nodes[cur.path].dependedOnBy {
			if _, seen := set[next]; seen {
				continue
			}
			set[next] = struct{}{}
			queue = append(queue, item{path: next, depth: cur.depth + 1})
		}
	}

	return set
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
