package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
)

func TestGraph_EdgesAndLookups(t *testing.T) {
	g := domain.NewGraph()

	g.AddEdge("a.ts", "b.ts")
	g.AddEdge("a.ts", "c.ts")
	g.AddEdge("b.ts", "c.ts")

	assert.True(t, g.Has("a.ts"))
	assert.True(t, g.Has("c.ts"))
	assert.Equal(t, 3, g.Len())

	assert.ElementsMatch(t, []string{"b.ts", "c.ts"}, g.Dependencies("a.ts"))
	assert.ElementsMatch(t, []string{"a.ts", "b.ts"}, g.Dependents("c.ts"))
}

func TestGraph_AddEdgeIdempotent(t *testing.T) {
	g := domain.NewGraph()

	g.AddEdge("a.ts", "b.ts")
	g.AddEdge("a.ts", "b.ts")
	g.AddEdge("a.ts", "a.ts") // self edges are dropped

	assert.Len(t, g.Dependencies("a.ts"), 1)
	assert.Len(t, g.Dependents("b.ts"), 1)
}

func TestGraph_SetDependenciesReplaces(t *testing.T) {
	g := domain.NewGraph()

	g.SetDependencies("a.ts", []string{"b.ts", "c.ts"})
	g.SetDependencies("a.ts", []string{"c.ts", "d.ts"})

	assert.ElementsMatch(t, []string{"c.ts", "d.ts"}, g.Dependencies("a.ts"))
	assert.Empty(t, g.Dependents("b.ts"))
	assert.ElementsMatch(t, []string{"a.ts"}, g.Dependents("d.ts"))
}

func TestGraph_RemoveNodeReturnsDependents(t *testing.T) {
	g := domain.NewGraph()

	g.AddEdge("a.ts", "shared.ts")
	g.AddEdge("b.ts", "shared.ts")
	g.AddEdge("c.ts", "shared.ts")
	g.AddEdge("shared.ts", "leaf.ts")

	dependents := g.RemoveNode("shared.ts")

	assert.Equal(t, []string{"a.ts", "b.ts", "c.ts"}, dependents)
	assert.False(t, g.Has("shared.ts"))
	assert.Empty(t, g.Dependencies("a.ts"))
	assert.Empty(t, g.Dependents("leaf.ts"))
}

func TestGraph_TopologicalSort(t *testing.T) {
	g := domain.NewGraph()

	// a -> b -> d, a -> c -> d
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("b", "d")
	g.AddEdge("c", "d")

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Len(t, order, 4)

	pos := make(map[string]int, len(order))
	for i, path := range order {
		pos[path] = i
	}

	// Dependencies come before their dependents.
	assert.Less(t, pos["d"], pos["b"])
	assert.Less(t, pos["d"], pos["c"])
	assert.Less(t, pos["b"], pos["a"])
	assert.Less(t, pos["c"], pos["a"])
}

func TestGraph_TopologicalSortDeterministic(t *testing.T) {
	build := func() *domain.Graph {
		g := domain.NewGraph()
		g.AddEdge("x", "y")
		g.AddNode("m")
		g.AddNode("n")
		g.AddEdge("y", "z")
		return g
	}

	first, err := build().TopologicalSort()
	require.NoError(t, err)

	for range 10 {
		again, err := build().TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGraph_CycleDetection(t *testing.T) {
	g := domain.NewGraph()

	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "a")

	_, err := g.TopologicalSort()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestGraph_MaxDepth(t *testing.T) {
	g := domain.NewGraph()

	assert.Equal(t, 0, g.MaxDepth())

	g.AddNode("solo")
	assert.Equal(t, 0, g.MaxDepth())

	// a -> b -> c -> d is three edges deep.
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "d")
	assert.Equal(t, 3, g.MaxDepth())
}

func TestGraph_InvalidationSet(t *testing.T) {
	g := domain.NewGraph()

	// c imports b imports a; d imports c.
	g.AddEdge("b", "a")
	g.AddEdge("c", "b")
	g.AddEdge("d", "c")

	t.Run("no cascade only includes root", func(t *testing.T) {
		set := g.InvalidationSet("a", domain.InvalidationOptions{})
		assert.Len(t, set, 1)
		assert.Contains(t, set, "a")
	})

	t.Run("unbounded cascade reaches all transitive dependents", func(t *testing.T) {
		set := g.InvalidationSet("a", domain.InvalidationOptions{Cascade: true})
		assert.Len(t, set, 4)
	})

	t.Run("depth bound stops the traversal", func(t *testing.T) {
		set := g.InvalidationSet("a", domain.InvalidationOptions{Cascade: true, MaxDepth: 1})
		assert.Contains(t, set, "a")
		assert.Contains(t, set, "b")
		assert.NotContains(t, set, "c")
	})

	t.Run("leaf with no dependents", func(t *testing.T) {
		set := g.InvalidationSet("d", domain.InvalidationOptions{Cascade: true})
		assert.Len(t, set, 1)
	})
}
