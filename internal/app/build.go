package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/internal/config"
	"github.com/katalvlaran/patrol/planner"
	"github.com/katalvlaran/patrol/zone"
)

// DefaultMap is the 5×5 inspection floor: two wall segments across row 1
// and two pillars on row 3.
const DefaultMap = `
. . . . .
. # # # .
. . . . .
. # . # .
. . . . .
`

// LoadMap reads the map at path, or the built-in map when path is empty.
func LoadMap(path string) (*grid.Grid, error) {
	if path == "" {
		return grid.Parse(DefaultMap)
	}
	g, err := grid.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}

	return g, nil
}

// LoadTopology reads the zone topology at path, or the built-in layout when
// path is empty.
func LoadTopology(path string) (zone.Topology, error) {
	if path == "" {
		return zone.DefaultTopology(), nil
	}
	top, err := zone.LoadTopology(path)
	if err != nil {
		return zone.Topology{}, fmt.Errorf("load zones: %w", err)
	}

	return top, nil
}

// BuildPlanner wires map, topology and registry into a Planner according to cfg.
func BuildPlanner(cfg *config.Config, logger *slog.Logger, m planner.Metrics, extra ...planner.Option) (*planner.Planner, error) {
	g, err := LoadMap(cfg.Map.Path)
	if err != nil {
		return nil, err
	}
	top, err := LoadTopology(cfg.Zones.Path)
	if err != nil {
		return nil, err
	}
	if err := top.CheckGrid(g); err != nil {
		return nil, err
	}

	reg, err := zone.NewRegistry(top, time.Now())
	if err != nil {
		return nil, err
	}

	opts := []planner.Option{
		planner.WithWeights(cfg.Planner.Weights),
		planner.WithStepBudget(cfg.Planner.StepBudget),
		planner.WithSkipUnreachable(cfg.Planner.SkipUnreachable),
		planner.WithLogger(logger),
		planner.WithMetrics(m),
	}

	return planner.New(reg, g, append(opts, extra...)...)
}
