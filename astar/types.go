package astar

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/patrol/grid"
)

// Sentinel errors returned by FindPath.
var (
	// ErrInvalidGrid indicates a nil or malformed grid. It is grid.ErrInvalidGrid,
	// so errors from grid construction match it as well.
	ErrInvalidGrid = grid.ErrInvalidGrid

	// ErrInvalidEndpoint indicates that start or goal is out of bounds or blocked.
	ErrInvalidEndpoint = errors.New("astar: endpoint out of bounds or blocked")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("astar: invalid option supplied")
)

// Option configures FindPath via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when
// FindPath is invoked.
type Option func(*Options)

// Options holds parameters and callbacks for a single search.
type Options struct {
	// Ctx allows cancellation. Checked once per popped heap entry.
	Ctx context.Context

	// StepBudget, if > 0, caps the number of node expansions. When the cap
	// is hit the search stops with Result.Exhausted set.
	// 0 means unlimited.
	StepBudget int

	// OnExpand is called for every expanded (non-stale) node with its final g.
	OnExpand func(c grid.Cell, g int)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - no step budget
//   - no-op OnExpand hook
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		StepBudget: 0,
		OnExpand:   func(grid.Cell, int) {},
	}
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithStepBudget bounds worst-case latency by limiting node expansions.
//
//	n > 0: at most n expansions
//	n == 0: explicit no limit
//	n < 0: invalid option → ErrOptionViolation
func WithStepBudget(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: StepBudget cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.StepBudget = n
	}
}

// WithOnExpand registers a callback invoked on each node expansion.
func WithOnExpand(fn func(c grid.Cell, g int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// Result is the outcome of one FindPath call.
type Result struct {
	// Path is start..goal inclusive when Found, nil otherwise.
	Path []grid.Cell
	// Found reports whether the goal was reached.
	Found bool
	// Exhausted reports that the step budget stopped the search early.
	Exhausted bool

	// Expanded counts nodes whose g was finalized.
	Expanded int
	// Pushed counts heap insertions, re-pushes included.
	Pushed int
	// Stale counts superseded heap entries discarded on pop.
	Stale int
}

// Cost returns the number of steps on the path, or -1 if no path was found.
func (r *Result) Cost() int {
	if r == nil || !r.Found {
		return -1
	}

	return len(r.Path) - 1
}
