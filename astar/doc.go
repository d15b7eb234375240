// Package astar computes shortest obstacle-free routes on a grid.Grid with
// A* search over 4-connected, unit-cost moves and a Manhattan heuristic.
//
// Overview:
//
//   - FindPath is a pure function of (grid, start, goal): it never mutates its
//     inputs and shares no state between calls, so independent searches may run
//     in parallel without locking.
//   - The open set is a binary min-heap ordered by f = g + h, ties broken by the
//     lower h, then by insertion order. Results are reproducible for a fixed input.
//   - A row-major membership index maps each cell to the handle of its best known
//     open node, so "is this cell queued and at what cost" is O(1).
//   - Improving an open node updates it in place and re-pushes it. The superseded
//     heap entry stays behind and is discarded when popped (lazy deletion), so no
//     decrease-key heap is needed.
//   - Search nodes live in a per-run arena; parent links are int32 handles into it.
//
// Outcomes:
//
//   - Result.Found == true: Path holds start..goal inclusive, len(Path)-1 steps.
//   - Result.Found == false: no path exists (NoPathFound). This is a valid
//     negative result, not an error.
//   - Result.Exhausted == true: the step budget ran out first; treat as
//     NoPathFound with the caveat that a path may still exist.
//
// Errors (sentinel):
//
//   - ErrInvalidGrid:     nil or malformed grid (matches grid.ErrInvalidGrid).
//   - ErrInvalidEndpoint: start or goal out of bounds or blocked. No search is run.
//   - ErrOptionViolation: an Option received an invalid argument.
//
// Complexity:
//
//   - Time:  O((V + E) log V) with V = rows×cols, E ≤ 4V.
//   - Space: O(V) for the arena, index, closed flags and the (bounded) stale heap entries.
//
// Example:
//
//	res, err := astar.FindPath(g, start, goal, astar.WithStepBudget(50_000))
//	if err != nil {
//	    return err // caller contract violation
//	}
//	if !res.Found {
//	    // re-plan or pick another target
//	}
package astar
