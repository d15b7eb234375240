// Implementation notes:
//
//   - Endpoints are validated before anything is allocated, so a bad call does no search work.
//   - Per-run bookkeeping uses flat row-major slices instead of maps: the membership
//     index ([]int32 handle, -1 = absent) and the closed flags ([]bool).
//   - Nodes are appended to an arena; parents are arena handles, so path reconstruction
//     walks int32 links and the whole tree is reclaimed with the run.
//   - Improvements to an open node are applied in place and re-pushed (lazy decrease-key).

package astar

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/patrol/grid"
)

const noParent int32 = -1

// node is one explored cell. f = g + h.
type node struct {
	cell   grid.Cell
	parent int32
	g, h   int
}

// FindPath returns the shortest 4-connected route from start to goal on g.
//
// Returns:
//
//   - res: search outcome. res.Found is false when no path exists or the step
//     budget ran out (res.Exhausted). Never nil when err is nil.
//   - err: ErrOptionViolation, ErrInvalidGrid or ErrInvalidEndpoint for contract
//     violations; ctx.Err() if the context is cancelled mid-search.
//
// Preconditions and validation (in order):
//  1. All options must be valid (ErrOptionViolation).
//  2. g must be non-nil (ErrInvalidGrid).
//  3. start and goal must be in bounds and free (ErrInvalidEndpoint).
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V)
func FindPath(g *grid.Grid, start, goal grid.Cell, opts ...Option) (*Result, error) {
	// 1) Build and validate Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	// 2) Validate grid
	if g == nil {
		return nil, fmt.Errorf("%w: grid is nil", ErrInvalidGrid)
	}

	// 3) Validate endpoints; no search work before this point
	if g.Blocked(start) {
		return nil, fmt.Errorf("%w: start %v", ErrInvalidEndpoint, start)
	}
	if g.Blocked(goal) {
		return nil, fmt.Errorf("%w: goal %v", ErrInvalidEndpoint, goal)
	}

	// 4) Prepare per-run state
	r := newRunner(g, goal, cfg)
	r.init(start)
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.res, nil
}

// FindPathMatrix is FindPath over a raw occupancy matrix (0 free, non-zero blocked).
// Malformed matrices yield ErrInvalidGrid.
func FindPathMatrix(values [][]int, start, goal grid.Cell, opts ...Option) (*Result, error) {
	g, err := grid.New(values)
	if err != nil {
		return nil, err
	}

	return FindPath(g, start, goal, opts...)
}

// Distance returns the shortest step count between a and b, or -1 if b is
// unreachable from a.
func Distance(g *grid.Grid, a, b grid.Cell) (int, error) {
	res, err := FindPath(g, a, b)
	if err != nil {
		return -1, err
	}

	return res.Cost(), nil
}

// runner holds the mutable state for a single A* execution.
type runner struct {
	grid   *grid.Grid
	opts   Options
	goal   grid.Cell
	nodes  []node  // arena; handles are indices into it
	index  []int32 // row-major cell → handle of best open node, or noParent
	closed []bool  // row-major cell → g finalized
	open   openPQ
	seq    uint64
	res    *Result
}

func newRunner(g *grid.Grid, goal grid.Cell, cfg Options) *runner {
	size := g.Size()
	index := make([]int32, size)
	for i := range index {
		index[i] = noParent
	}
	// The frontier of a grid search is usually far smaller than the grid.
	hint := size / 4
	if hint < 16 {
		hint = 16
	}

	return &runner{
		grid:   g,
		opts:   cfg,
		goal:   goal,
		nodes:  make([]node, 0, hint),
		index:  index,
		closed: make([]bool, size),
		open:   make(openPQ, 0, hint),
		res:    &Result{},
	}
}

// init seeds the open set with the start node.
func (r *runner) init(start grid.Cell) {
	heap.Init(&r.open)
	r.add(start, noParent, 0)
}

// add appends a fresh node to the arena, indexes it and pushes it.
func (r *runner) add(c grid.Cell, parent int32, g int) {
	h := grid.Manhattan(c, r.goal)
	handle := int32(len(r.nodes))
	r.nodes = append(r.nodes, node{cell: c, parent: parent, g: g, h: h})
	r.index[r.grid.Index(c)] = handle
	r.push(handle)
}

// push inserts the current state of node handle into the heap.
func (r *runner) push(handle int32) {
	n := &r.nodes[handle]
	heap.Push(&r.open, openItem{handle: handle, g: n.g, h: n.h, seq: r.seq})
	r.seq++
	r.res.Pushed++
}

// process is the main loop. It pops the minimum-f entry, discards stale
// duplicates, closes the node and either finishes on the goal or relaxes
// its neighbours.
//
// Loop termination conditions:
//
//   - The goal is popped (Found).
//   - The step budget is spent (Exhausted).
//   - The heap becomes empty (no path).
//   - The context is cancelled (error).
func (r *runner) process() error {
	ctx := r.opts.Ctx
	for r.open.Len() > 0 {
		// 1) Honour cancellation once per pop
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// 2) Pop the entry with the lowest (f, h, seq)
		item := heap.Pop(&r.open).(openItem)
		n := r.nodes[item.handle]
		idx := r.grid.Index(n.cell)

		// 3) Skip stale duplicates: an entry is current only if the index still
		//    points at its node and the node's cost has not improved since the push.
		if r.index[idx] != item.handle || item.g != n.g {
			r.res.Stale++
			continue
		}

		// 4) Stop when the expansion budget is spent
		if r.opts.StepBudget > 0 && r.res.Expanded >= r.opts.StepBudget {
			r.res.Exhausted = true
			return nil
		}

		// 5) Close the node and report it
		r.index[idx] = noParent
		r.closed[idx] = true
		r.res.Expanded++
		r.opts.OnExpand(n.cell, n.g)

		// 6) Finish on the goal, otherwise relax its neighbours
		if n.cell == r.goal {
			r.res.Found = true
			r.res.Path = r.reconstruct(item.handle)
			return nil
		}

		r.relax(item.handle)
	}

	return nil
}

// relax examines the four orthogonal neighbours of the node at handle u.
// Assumes nodes[u].g is final.
func (r *runner) relax(u int32) {
	cur := r.nodes[u].cell
	tentative := r.nodes[u].g + 1
	for _, d := range grid.Offsets4 {
		// 1) Skip walls, cells off the map and closed cells
		v := cur.Add(d)
		if r.grid.Blocked(v) {
			continue
		}
		vi := r.grid.Index(v)
		if r.closed[vi] {
			continue
		}

		// 2) First sighting: open a fresh node
		existing := r.index[vi]
		if existing == noParent {
			r.add(v, u, tentative)
			continue
		}

		// 3) Improve in place and re-push; equal cost keeps the first-found parent
		//    (the old heap entry goes stale).
		if tentative >= r.nodes[existing].g {
			continue
		}
		r.nodes[existing].g = tentative
		r.nodes[existing].parent = u
		r.push(existing)
	}
}

// reconstruct walks parent handles from the goal back to the start and
// returns the route in start→goal order.
func (r *runner) reconstruct(goal int32) []grid.Cell {
	path := make([]grid.Cell, 0, r.nodes[goal].g+1)
	for h := goal; h != noParent; h = r.nodes[h].parent {
		path = append(path, r.nodes[h].cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
