package selector

import (
	"errors"
	"fmt"
	"math"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/zone"
)

var (
	// ErrNoZones reports that there was nothing to choose from. It is a
	// negative result, not a failure.
	ErrNoZones = errors.New("selector: no zones")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("selector: invalid option supplied")
)

// Weights parameterizes the priority score.
type Weights struct {
	// MaxStaleness is the elapsed time at which the time component saturates.
	MaxStaleness time.Duration `yaml:"max_staleness" json:"max_staleness"`
	// TimeWeight scales the saturated staleness ratio.
	TimeWeight float64 `yaml:"time_weight" json:"time_weight"`
	// RiskWeight scales the historical average risk.
	RiskWeight float64 `yaml:"risk_weight" json:"risk_weight"`
	// NeverVisitedBonus is added for zones that were never inspected.
	NeverVisitedBonus float64 `yaml:"never_visited_bonus" json:"never_visited_bonus"`
	// TieEpsilon is the largest priority difference still treated as a tie.
	// Zero means exact equality.
	TieEpsilon float64 `yaml:"tie_epsilon" json:"tie_epsilon"`
}

// DefaultWeights returns the stock tuning: saturation after 5h, time 0.6,
// risk 0.4, exploration bonus 0.5, exact ties.
func DefaultWeights() Weights {
	return Weights{
		MaxStaleness:      5 * time.Hour,
		TimeWeight:        0.6,
		RiskWeight:        0.4,
		NeverVisitedBonus: 0.5,
		TieEpsilon:        0,
	}
}

// Validate implements validation.Validatable.
func (w *Weights) Validate() error {
	return validation.ValidateStruct(w,
		validation.Field(&w.MaxStaleness, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&w.TimeWeight, validation.Min(0.0), finite),
		validation.Field(&w.RiskWeight, validation.Min(0.0), finite),
		validation.Field(&w.NeverVisitedBonus, validation.Min(0.0), finite),
		validation.Field(&w.TieEpsilon, validation.Min(0.0), finite),
	)
}

// finite rejects NaN and infinite weights; an infinite weight times a zero
// component scores NaN, which never compares greater than anything.
var finite = validation.By(func(value interface{}) error {
	f, _ := value.(float64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("must be a finite number")
	}

	return nil
})

// Option configures Select via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when
// Select is invoked.
type Option func(*Options)

// Options holds the parameters of one selection.
type Options struct {
	Weights Weights
	// Now supplies the evaluation time.
	Now func() time.Time
	// Filter, if set, drops zones for which it returns false.
	Filter func(zone.Entry) bool

	err error
}

// DefaultOptions returns DefaultWeights, the wall clock and no filter.
func DefaultOptions() Options {
	return Options{
		Weights: DefaultWeights(),
		Now:     time.Now,
	}
}

// WithWeights replaces the scoring weights. Invalid weights yield ErrOptionViolation.
func WithWeights(w Weights) Option {
	return func(o *Options) {
		if err := w.Validate(); err != nil {
			o.err = fmt.Errorf("%w: weights: %v", ErrOptionViolation, err)
			return
		}
		o.Weights = w
	}
}

// WithNow pins the evaluation time.
func WithNow(t time.Time) Option {
	return func(o *Options) {
		o.Now = func() time.Time { return t }
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

// WithFilter restricts the candidates to zones accepted by keep.
func WithFilter(keep func(zone.Entry) bool) Option {
	return func(o *Options) {
		o.Filter = keep
	}
}

// Candidate is a scored zone.
type Candidate struct {
	ZoneID   zone.ID   `json:"zone_id"`
	Target   grid.Cell `json:"target"`
	Priority float64   `json:"priority"`
	// Distance is the Manhattan distance from the robot to Target.
	Distance int `json:"distance"`
}

// Selection is the chosen zone.
type Selection = Candidate
