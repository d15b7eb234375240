package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid construction. Every construction error matches ErrInvalidGrid.
var (
	// ErrInvalidGrid is the umbrella error for malformed occupancy input.
	ErrInvalidGrid = errors.New("grid: invalid grid")
	// ErrEmptyGrid indicates the input has no rows or no columns.
	ErrEmptyGrid = fmt.Errorf("%w: grid must have at least one row and one column", ErrInvalidGrid)
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = fmt.Errorf("%w: all rows must have the same length", ErrInvalidGrid)
	// ErrBadSymbol indicates an unknown character in textual grid input.
	ErrBadSymbol = fmt.Errorf("%w: unknown cell symbol", ErrInvalidGrid)
)

// Cell is a grid coordinate. Row grows downwards, Col grows to the right.
type Cell struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// String renders the cell as "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Offsets4 lists the orthogonal moves in expansion order: west, east, north, south.
var Offsets4 = [4]Cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Add returns c shifted by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// Manhattan returns |a.Row-b.Row| + |a.Col-b.Col|, the 4-connected unit-cost lower bound.
func Manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// Grid is an immutable occupancy grid. Cells are stored row-major:
// index(r,c) = r*Cols + c.
type Grid struct {
	rows, cols int
	blocked    []bool
}
