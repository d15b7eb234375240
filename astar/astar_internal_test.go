package astar

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/patrol/grid"
)

// TestRelax_ImprovesOpenNodeInPlace seeds an open node with an inflated cost,
// relaxes it from a cheaper neighbour and checks that the node is updated in
// place, re-pushed, and that the superseded heap entry is discarded as stale.
func TestRelax_ImprovesOpenNodeInPlace(t *testing.T) {
	// The goal cell is blocked so the run drains the heap completely.
	g := grid.MustNew([][]int{{0, 0, 1}})
	r := newRunner(g, grid.Cell{Row: 0, Col: 2}, DefaultOptions())
	heap.Init(&r.open)

	r.add(grid.Cell{Row: 0, Col: 1}, noParent, 5) // handle 0, inflated
	r.add(grid.Cell{Row: 0, Col: 0}, noParent, 0) // handle 1
	r.relax(1)

	require.Equal(t, 1, r.nodes[0].g, "open node must take the cheaper cost")
	require.Equal(t, int32(1), r.nodes[0].parent, "open node must take the cheaper parent")
	require.Equal(t, int32(0), r.index[g.Index(grid.Cell{Row: 0, Col: 1})], "index keeps the same handle")
	require.Equal(t, 3, r.res.Pushed)
	require.Equal(t, 3, r.open.Len(), "old entry is left in the heap")

	require.NoError(t, r.process())
	require.False(t, r.res.Found)
	require.Equal(t, 2, r.res.Expanded)
	require.Equal(t, 1, r.res.Stale)
	require.Equal(t, r.res.Pushed, r.res.Expanded+r.res.Stale)
}

// TestRelax_NoImprovementSkips checks that an equal-cost rediscovery neither
// rewrites the parent nor pushes a duplicate.
func TestRelax_NoImprovementSkips(t *testing.T) {
	g := grid.MustNew([][]int{{0, 0, 0}})
	r := newRunner(g, grid.Cell{Row: 0, Col: 2}, DefaultOptions())
	heap.Init(&r.open)

	r.add(grid.Cell{Row: 0, Col: 1}, noParent, 1) // handle 0
	r.add(grid.Cell{Row: 0, Col: 0}, noParent, 0) // handle 1
	r.relax(1)

	require.Equal(t, noParent, r.nodes[0].parent)
	require.Equal(t, 2, r.res.Pushed)
}

func TestOpenPQ_Ordering(t *testing.T) {
	pq := openPQ{}
	heap.Init(&pq)
	heap.Push(&pq, openItem{handle: 0, g: 2, h: 2, seq: 0}) // f=4 h=2
	heap.Push(&pq, openItem{handle: 1, g: 3, h: 1, seq: 1}) // f=4 h=1
	heap.Push(&pq, openItem{handle: 2, g: 3, h: 1, seq: 2}) // f=4 h=1, later
	heap.Push(&pq, openItem{handle: 3, g: 0, h: 3, seq: 3}) // f=3

	var order []int32
	for pq.Len() > 0 {
		order = append(order, heap.Pop(&pq).(openItem).handle)
	}
	require.Equal(t, []int32{3, 1, 2, 0}, order)
}
