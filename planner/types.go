package planner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/patrol/astar"
	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/selector"
	"github.com/katalvlaran/patrol/zone"
)

var (
	// ErrNilRegistry is returned by New without a registry.
	ErrNilRegistry = errors.New("planner: registry is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("planner: invalid option supplied")
)

// Plan is the outcome of one Next call.
type Plan struct {
	ID       string    `json:"id"`
	ZoneID   zone.ID   `json:"zone_id"`
	Target   grid.Cell `json:"target"`
	Priority float64   `json:"priority"`
	// Path runs from the robot to Target inclusive; nil unless Found.
	Path      []grid.Cell `json:"path"`
	Found     bool        `json:"found"`
	Exhausted bool        `json:"exhausted"`
	Expanded  int         `json:"expanded"`
	CreatedAt time.Time   `json:"created_at"`
}

// Steps returns the number of moves on Path, or -1 without a route.
func (p *Plan) Steps() int {
	if p == nil || !p.Found {
		return -1
	}

	return len(p.Path) - 1
}

// Metrics receives planner observations. Implementations must be safe for
// concurrent use.
type Metrics interface {
	PlanComputed(plan *Plan, took time.Duration)
	RouteComputed(res *astar.Result, took time.Duration)
	InspectionRecorded(id zone.ID, rec zone.Record)
	MapReplaced(g *grid.Grid)
}

type nopMetrics struct{}

func (nopMetrics) PlanComputed(*Plan, time.Duration)          {}
func (nopMetrics) RouteComputed(*astar.Result, time.Duration) {}
func (nopMetrics) InspectionRecorded(zone.ID, zone.Record)    {}
func (nopMetrics) MapReplaced(*grid.Grid)                     {}

// Option configures a Planner.
type Option func(*options)

type options struct {
	weights         selector.Weights
	stepBudget      int
	skipUnreachable bool
	now             func() time.Time
	logger          *slog.Logger
	metrics         Metrics
	err             error
}

func defaultOptions() options {
	return options{
		weights: selector.DefaultWeights(),
		now:     time.Now,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: nopMetrics{},
	}
}

// WithWeights sets the selector weights. Invalid weights yield ErrOptionViolation.
func WithWeights(w selector.Weights) Option {
	return func(o *options) {
		if err := w.Validate(); err != nil {
			o.err = fmt.Errorf("%w: weights: %v", ErrOptionViolation, err)
			return
		}
		o.weights = w
	}
}

// WithStepBudget caps A* expansions per route; 0 means unlimited.
func WithStepBudget(n int) Option {
	return func(o *options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: StepBudget cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.stepBudget = n
	}
}

// WithSkipUnreachable makes Next ignore zones whose center lies in a free
// region the robot cannot reach.
func WithSkipUnreachable(skip bool) Option {
	return func(o *options) {
		o.skipUnreachable = skip
	}
}

// WithClock sets the time source used for scoring and inspections.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
