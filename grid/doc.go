// Package grid models the robot's operating area as an immutable 2D occupancy
// grid of free and blocked cells.
//
// What:
//
//   - Cell is a (Row, Col) value; identity is value equality.
//   - Grid wraps a rectangular rows×cols occupancy matrix, deep-copied on construction.
//   - Regions labels 4-connected components of free cells, answering
//     "can the robot reach that cell at all" in O(1) after one O(W×H) pass.
//
// Why:
//
//   - The pathfinder needs O(1) bounds/blocked checks and a row-major index to
//     keep its per-run bookkeeping in flat slices.
//   - The planner needs a cheap reachability pre-filter before asking for a route.
//
// Formats:
//
//   - New([][]int): 0 is free, any other value is blocked (the mapping subsystem's matrix).
//   - Parse(string): one row per line, '.' or '0' free, '#' or '1' blocked, spaces ignored.
//   - Load(path): .json/.yaml/.yml holds a matrix, anything else is parsed as text.
//
// Complexity:
//
//   - New, Parse:  O(W×H) time and memory.
//   - InBounds, Blocked, Index, At: O(1).
//   - Regions: O(W×H×4), Memory: O(W×H).
//
// Errors:
//
//   - ErrInvalidGrid: umbrella for every construction failure.
//   - ErrEmptyGrid: input has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrBadSymbol: text input contains a character that is neither free nor blocked.
package grid
