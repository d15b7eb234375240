package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/internal/render"
	"github.com/katalvlaran/patrol/planner"
	"github.com/katalvlaran/patrol/zone"
)

// DemoStart is where the demo robot begins: the bottom-right corner (C3).
var DemoStart = grid.Cell{Row: 4, Col: 4}

// DemoInspectionTime is how far the simulated clock moves per inspection.
const DemoInspectionTime = 10 * time.Minute

type demoInspection struct {
	zone zone.ID
	risk float64
}

// demoScript: A3 turns out calm, then C1 is found clean.
var demoScript = []demoInspection{
	{zone: "A3", risk: 0.05},
	{zone: "C1", risk: 0.0},
}

// Demo replays a short patrol on the built-in map and zones: ask for a target,
// inspect, ask again. The clock is simulated from start so the run is
// reproducible. Every plan is printed to w and returned.
func Demo(ctx context.Context, w io.Writer, styled bool, start time.Time) ([]*planner.Plan, error) {
	clock := start
	g, err := grid.Parse(DefaultMap)
	if err != nil {
		return nil, err
	}
	reg, err := zone.NewRegistry(zone.DefaultTopology(), start)
	if err != nil {
		return nil, err
	}
	p, err := planner.New(reg, g, planner.WithClock(func() time.Time { return clock }))
	if err != nil {
		return nil, err
	}
	r := render.New(styled)

	pos := DemoStart
	plans := make([]*planner.Plan, 0, len(demoScript)+1)
	for i := 0; ; i++ {
		plan, err := p.Next(ctx, pos)
		if err != nil {
			return plans, err
		}
		plans = append(plans, plan)

		fmt.Fprintf(w, "%d. robot at %v: inspect %s at %v (priority %.2f)\n",
			i+1, pos, plan.ZoneID, plan.Target, plan.Priority)
		if plan.Found {
			fmt.Fprintf(w, "   route of %d steps\n%s\n", plan.Steps(), indent(r.Map(g, plan.Path, nil), "   "))
		} else {
			fmt.Fprintln(w, "   no route")
		}

		if i == len(demoScript) {
			return plans, nil
		}

		step := demoScript[i]
		target, ok := reg.Get(step.zone)
		if !ok {
			return plans, fmt.Errorf("%w: %q", zone.ErrUnknownZone, step.zone)
		}
		clock = clock.Add(DemoInspectionTime)
		pos = target.Center
		rec, err := p.Complete(step.zone, step.risk)
		if err != nil {
			return plans, err
		}
		fmt.Fprintf(w, "   inspected %s: risk %.2f, average risk now %.2f\n\n", step.zone, step.risk, rec.AvgRisk)
	}
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
