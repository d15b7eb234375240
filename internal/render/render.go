// Package render draws maps, routes and zones for terminal output.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/zone"
)

// Glyphs used on the map.
const (
	Free    = '.'
	Blocked = '#'
	Route   = 'X'
	Start   = 'S'
	Goal    = 'G'
	Zone    = 'Z'
)

// Renderer turns a grid and an optional route into text.
type Renderer struct {
	styled bool
	glyph  map[rune]lipgloss.Style
	frame  lipgloss.Style
}

// New returns a Renderer. With styled set, glyphs are colored and the map is
// framed; otherwise the output is plain text.
func New(styled bool) *Renderer {
	return &Renderer{
		styled: styled,
		glyph: map[rune]lipgloss.Style{
			Free:    lipgloss.NewStyle().Foreground(lipgloss.Color("#555555")),
			Blocked: lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Bold(true),
			Route:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true),
			Start:   lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Bold(true),
			Goal:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
			Zone:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F1FA8C")),
		},
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1),
	}
}

// Cells lays out the glyph matrix: free and blocked cells, zone centers,
// then the route on top with its endpoints marked.
func Cells(g *grid.Grid, path []grid.Cell, zones []zone.Entry) [][]rune {
	out := make([][]rune, g.Rows())
	for r := range out {
		out[r] = make([]rune, g.Cols())
		for c := range out[r] {
			if g.Blocked(grid.Cell{Row: r, Col: c}) {
				out[r][c] = Blocked
			} else {
				out[r][c] = Free
			}
		}
	}

	set := func(c grid.Cell, ch rune) {
		if g.InBounds(c) {
			out[c.Row][c.Col] = ch
		}
	}
	for _, z := range zones {
		set(z.Center, Zone)
	}
	for _, c := range path {
		set(c, Route)
	}
	if len(path) > 0 {
		set(path[0], Start)
		set(path[len(path)-1], Goal)
	}

	return out
}

// Map renders g with the route and zone centers overlaid, one row per line,
// glyphs separated by spaces.
func (r *Renderer) Map(g *grid.Grid, path []grid.Cell, zones []zone.Entry) string {
	cells := Cells(g, path, zones)
	lines := make([]string, len(cells))
	var b strings.Builder
	for i, row := range cells {
		b.Reset()
		for j, ch := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			if r.styled {
				b.WriteString(r.glyph[ch].Render(string(ch)))
			} else {
				b.WriteRune(ch)
			}
		}
		lines[i] = b.String()
	}

	body := strings.Join(lines, "\n")
	if !r.styled {
		return body
	}

	return r.frame.Render(body)
}

// Legend explains the glyphs.
func (r *Renderer) Legend() string {
	items := []struct {
		ch   rune
		text string
	}{
		{Start, "start"}, {Goal, "goal"}, {Route, "route"},
		{Zone, "zone"}, {Blocked, "obstacle"}, {Free, "free"},
	}
	parts := make([]string, len(items))
	for i, it := range items {
		ch := string(it.ch)
		if r.styled {
			ch = r.glyph[it.ch].Render(ch)
		}
		parts[i] = ch + " " + it.text
	}

	return strings.Join(parts, "  ")
}
