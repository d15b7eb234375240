package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/patrol/astar"
	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/selector"
	"github.com/katalvlaran/patrol/zone"
)

// mapState is one immutable map generation.
type mapState struct {
	grid    *grid.Grid
	regions *grid.Regions
}

// Planner couples the zone registry with the current map.
type Planner struct {
	reg   *zone.Registry
	state atomic.Pointer[mapState]
	opts  options
}

// New builds a Planner over reg and g. Every zone center must be a free cell of g.
func New(reg *zone.Registry, g *grid.Grid, opts ...Option) (*Planner, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}

	p := &Planner{reg: reg, opts: cfg}
	if err := p.SetGrid(g); err != nil {
		return nil, err
	}

	return p, nil
}

// Registry returns the underlying zone registry.
func (p *Planner) Registry() *zone.Registry { return p.reg }

// Grid returns the current map.
func (p *Planner) Grid() *grid.Grid { return p.state.Load().grid }

// SetGrid replaces the map. A map that blocks or excludes any zone center is
// rejected and the current map stays in place.
func (p *Planner) SetGrid(g *grid.Grid) error {
	if g == nil {
		return fmt.Errorf("%w: grid is nil", grid.ErrInvalidGrid)
	}
	for _, e := range p.reg.Snapshot() {
		if g.Blocked(e.Center) {
			return fmt.Errorf("%w: zone %q center %v is blocked or outside the %dx%d map",
				zone.ErrBadTopology, e.ID, e.Center, g.Rows(), g.Cols())
		}
	}

	p.state.Store(&mapState{grid: g, regions: g.Regions()})
	p.opts.metrics.MapReplaced(g)
	p.opts.logger.Info("map installed",
		slog.Int("rows", g.Rows()),
		slog.Int("cols", g.Cols()))

	return nil
}

// Next selects the most urgent zone for a robot at pos and plans a route to it.
//
// Returns selector.ErrNoZones when there is nothing to inspect, and
// astar.ErrInvalidEndpoint when pos is not a free cell. A plan whose route
// could not be found (Found == false) is still returned without error.
func (p *Planner) Next(ctx context.Context, pos grid.Cell) (*Plan, error) {
	started := time.Now()
	st := p.state.Load()
	if st.grid.Blocked(pos) {
		return nil, fmt.Errorf("%w: robot position %v", astar.ErrInvalidEndpoint, pos)
	}

	selOpts := []selector.Option{
		selector.WithWeights(p.opts.weights),
		selector.WithClock(p.opts.now),
	}
	if p.opts.skipUnreachable {
		selOpts = append(selOpts, selector.WithFilter(func(e zone.Entry) bool {
			return st.regions.Connected(pos, e.Center)
		}))
	}

	sel, err := selector.Next(p.reg, pos, selOpts...)
	if err != nil {
		if errors.Is(err, selector.ErrNoZones) {
			p.opts.logger.Info("no zone to inspect", slog.String("position", pos.String()))
		}
		return nil, err
	}

	res, err := astar.FindPath(st.grid, pos, sel.Target,
		astar.WithContext(ctx),
		astar.WithStepBudget(p.opts.stepBudget))
	if err != nil {
		return nil, fmt.Errorf("planner: route to %s: %w", sel.ZoneID, err)
	}

	plan := &Plan{
		ID:        uuid.NewString(),
		ZoneID:    sel.ZoneID,
		Target:    sel.Target,
		Priority:  sel.Priority,
		Path:      res.Path,
		Found:     res.Found,
		Exhausted: res.Exhausted,
		Expanded:  res.Expanded,
		CreatedAt: p.opts.now(),
	}

	took := time.Since(started)
	p.opts.metrics.PlanComputed(plan, took)
	p.opts.logger.Info("target selected",
		slog.String("plan_id", plan.ID),
		slog.String("zone", string(plan.ZoneID)),
		slog.String("target", plan.Target.String()),
		slog.Float64("priority", plan.Priority),
		slog.Bool("found", plan.Found),
		slog.Int("steps", plan.Steps()),
		slog.Duration("took", took))

	return plan, nil
}

// Route plans a path between two arbitrary cells on the current map.
func (p *Planner) Route(ctx context.Context, start, goal grid.Cell, opts ...astar.Option) (*astar.Result, error) {
	started := time.Now()
	all := append([]astar.Option{
		astar.WithContext(ctx),
		astar.WithStepBudget(p.opts.stepBudget),
	}, opts...)

	res, err := astar.FindPath(p.Grid(), start, goal, all...)
	if err != nil {
		return nil, err
	}
	p.opts.metrics.RouteComputed(res, time.Since(started))

	return res, nil
}

// Complete records an inspection of zone id with the observed risk.
func (p *Planner) Complete(id zone.ID, risk float64) (zone.Record, error) {
	rec, err := p.reg.RecordInspection(id, risk, p.opts.now())
	if err != nil {
		p.opts.logger.Warn("inspection rejected",
			slog.String("zone", string(id)),
			slog.Float64("risk", risk),
			slog.String("error", err.Error()))
		return zone.Record{}, err
	}

	p.opts.metrics.InspectionRecorded(id, rec)
	p.opts.logger.Info("inspection recorded",
		slog.String("zone", string(id)),
		slog.Float64("risk", risk),
		slog.Float64("avg_risk", rec.AvgRisk))

	return rec, nil
}

// Zones returns every zone scored for a robot at pos, in identifier order.
func (p *Planner) Zones(pos grid.Cell) ([]selector.Candidate, error) {
	return selector.Score(p.reg.Snapshot(), pos,
		selector.WithWeights(p.opts.weights),
		selector.WithClock(p.opts.now))
}
