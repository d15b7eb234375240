package grid

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// New builds a Grid from a non-empty rectangular matrix where 0 marks a free
// cell and any other value marks a blocked one. The input is copied.
// Returns ErrEmptyGrid or ErrNonRectangular on malformed input.
// Complexity: O(W×H) time and memory.
func New(values [][]int) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for y, row := range values {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, y, len(row), w)
		}
	}
	g := &Grid{rows: h, cols: w, blocked: make([]bool, h*w)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.blocked[y*w+x] = values[y][x] != 0
		}
	}

	return g, nil
}

// MustNew is New that panics on error. Intended for fixtures and examples.
func MustNew(values [][]int) *Grid {
	g, err := New(values)
	if err != nil {
		panic(err)
	}

	return g
}

// Open returns a rows×cols grid with every cell free.
func Open(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, ErrEmptyGrid
	}

	return &Grid{rows: rows, cols: cols, blocked: make([]bool, rows*cols)}, nil
}

// Parse reads a textual grid: one row per non-blank line, '.' or '0' for a
// free cell, '#' or '1' for a blocked cell. Spaces and tabs are ignored.
func Parse(text string) (*Grid, error) {
	var values [][]int
	sc := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		row := make([]int, 0, len(raw))
		for _, ch := range raw {
			switch ch {
			case ' ', '\t':
			case '.', '0':
				row = append(row, 0)
			case '#', '1':
				row = append(row, 1)
			default:
				return nil, fmt.Errorf("%w: %q on line %d", ErrBadSymbol, ch, line)
			}
		}
		values = append(values, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("grid: scan: %w", err)
	}

	return New(values)
}

// Load reads a grid from disk. Files ending in .json, .yaml or .yml must hold
// a matrix of integers; any other file is read with Parse.
func Load(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("grid: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		var values [][]int
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidGrid, path, err)
		}
		return New(values)
	default:
		return Parse(string(data))
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns Rows×Cols.
func (g *Grid) Size() int { return len(g.blocked) }

// InBounds reports whether c lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Blocked reports whether c is out of bounds or marked blocked.
func (g *Grid) Blocked(c Cell) bool {
	if !g.InBounds(c) {
		return true
	}

	return g.blocked[g.Index(c)]
}

// Free reports whether c is in bounds and traversable.
func (g *Grid) Free(c Cell) bool {
	return !g.Blocked(c)
}

// Index maps an in-bounds cell to its row-major index. The result is
// meaningless for out-of-bounds cells; check InBounds first.
func (g *Grid) Index(c Cell) int {
	return c.Row*g.cols + c.Col
}

// At converts a row-major index back to a cell.
func (g *Grid) At(idx int) Cell {
	return Cell{Row: idx / g.cols, Col: idx % g.cols}
}

// Values returns a fresh copy of the occupancy matrix (0 free, 1 blocked).
func (g *Grid) Values() [][]int {
	out := make([][]int, g.rows)
	for r := 0; r < g.rows; r++ {
		out[r] = make([]int, g.cols)
		for c := 0; c < g.cols; c++ {
			if g.blocked[r*g.cols+c] {
				out[r][c] = 1
			}
		}
	}

	return out
}

// String renders the grid with '.' for free and '#' for blocked cells.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.blocked[r*g.cols+c] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}

	return b.String()
}
