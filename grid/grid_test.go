package grid_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/patrol/grid"
)

//----------------------------------------------------------------------------//
// New / Parse validation
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New rejects empty or ragged inputs and that
// every rejection matches ErrInvalidGrid.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name string
		grid [][]int
		err  error
	}{
		{"EmptyRows", [][]int{}, grid.ErrEmptyGrid},
		{"EmptyCols", [][]int{{}}, grid.ErrEmptyGrid},
		{"NonRectangular", [][]int{{0, 0}, {0}}, grid.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.New(tc.grid)
			if !errors.Is(err, tc.err) {
				t.Errorf("New(%v) error = %v; want %v", tc.grid, err, tc.err)
			}
			if !errors.Is(err, grid.ErrInvalidGrid) {
				t.Errorf("New(%v) error = %v; want it to match ErrInvalidGrid", tc.grid, err)
			}
		})
	}
}

// TestNew_CopiesInput checks that mutating the caller's slice does not leak into the grid.
func TestNew_CopiesInput(t *testing.T) {
	values := [][]int{{0, 1}, {0, 0}}
	g, err := grid.New(values)
	require.NoError(t, err)

	values[1][1] = 1
	assert.True(t, g.Free(grid.Cell{Row: 1, Col: 1}))
	assert.True(t, g.Blocked(grid.Cell{Row: 0, Col: 1}))
}

func TestParse(t *testing.T) {
	g, err := grid.Parse(`
		. . # .
		0 1 . .
	`)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, [][]int{{0, 0, 1, 0}, {0, 1, 0, 0}}, g.Values())
	assert.Equal(t, "..#.\n.#..\n", g.String())
}

func TestParse_BadSymbol(t *testing.T) {
	_, err := grid.Parse("..x\n...")
	require.ErrorIs(t, err, grid.ErrBadSymbol)
	require.ErrorIs(t, err, grid.ErrInvalidGrid)
}

func TestOpen(t *testing.T) {
	g, err := grid.Open(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Size())
	for i := 0; i < g.Size(); i++ {
		assert.True(t, g.Free(g.At(i)))
	}

	_, err = grid.Open(0, 2)
	require.ErrorIs(t, err, grid.ErrEmptyGrid)
}

//----------------------------------------------------------------------------//
// Accessors
//----------------------------------------------------------------------------//

// TestInBounds checks InBounds and Blocked on a 2×3 grid.
func TestInBounds(t *testing.T) {
	g := grid.MustNew([][]int{
		{0, 1, 0},
		{1, 0, 1},
	})

	valid := []grid.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 2}, {Row: 1, Col: 1}}
	for _, c := range valid {
		if !g.InBounds(c) {
			t.Errorf("InBounds(%v)=false; want true", c)
		}
	}
	invalid := []grid.Cell{{Row: -1, Col: 0}, {Row: 0, Col: 3}, {Row: 2, Col: 1}, {Row: 1, Col: -1}}
	for _, c := range invalid {
		if g.InBounds(c) {
			t.Errorf("InBounds(%v)=true; want false", c)
		}
		if !g.Blocked(c) {
			t.Errorf("Blocked(%v)=false; out-of-bounds cells must read as blocked", c)
		}
	}
}

func TestIndexRoundTrip(t *testing.T) {
	g, err := grid.Open(4, 7)
	require.NoError(t, err)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := grid.Cell{Row: r, Col: c}
			require.Equal(t, cell, g.At(g.Index(cell)))
		}
	}
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 0, grid.Manhattan(grid.Cell{Row: 2, Col: 2}, grid.Cell{Row: 2, Col: 2}))
	assert.Equal(t, 8, grid.Manhattan(grid.Cell{Row: 4, Col: 0}, grid.Cell{Row: 0, Col: 4}))
	assert.Equal(t, 6, grid.Manhattan(grid.Cell{Row: 1, Col: 1}, grid.Cell{Row: 4, Col: 4}))
}

//----------------------------------------------------------------------------//
// Load
//----------------------------------------------------------------------------//

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "map.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[[0,0,0],[0,1,0]]`), 0o644))
	g, err := grid.Load(jsonPath)
	require.NoError(t, err)
	assert.True(t, g.Blocked(grid.Cell{Row: 1, Col: 1}))

	txtPath := filepath.Join(dir, "map.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("..\n#.\n"), 0o644))
	g, err = grid.Load(txtPath)
	require.NoError(t, err)
	assert.True(t, g.Blocked(grid.Cell{Row: 1, Col: 0}))

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("rows: nope"), 0o644))
	_, err = grid.Load(badPath)
	require.ErrorIs(t, err, grid.ErrInvalidGrid)

	_, err = grid.Load(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}
