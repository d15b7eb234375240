package zone

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/patrol/grid"
)

// Spec declares one zone: its identifier, center cell and optional initial state.
type Spec struct {
	ID     ID        `yaml:"id"`
	Center grid.Cell `yaml:"center"`

	// AvgRisk seeds the historical risk average.
	AvgRisk float64 `yaml:"avg_risk"`
	// InspectedAgo backdates the initial last-inspection time relative to
	// registry construction.
	InspectedAgo time.Duration `yaml:"inspected_ago"`
	// Visited marks the zone as already visited, suppressing the exploration bonus.
	Visited bool `yaml:"visited"`
}

// Validate validates a single zone declaration.
func (s *Spec) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.AvgRisk, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&s.InspectedAgo, validation.Min(time.Duration(0))),
	)
}

// Topology is the static zone layout. Order is irrelevant: the registry
// iterates zones by identifier.
type Topology struct {
	Zones []Spec `yaml:"zones"`
}

// Validate checks every zone declaration and rejects duplicate identifiers.
func (t *Topology) Validate() error {
	seen := mapset.New[ID]()
	for i := range t.Zones {
		s := &t.Zones[i]
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: zone #%d (%q): %v", ErrBadTopology, i, s.ID, err)
		}
		if seen.Has(s.ID) {
			return fmt.Errorf("%w: duplicate zone %q", ErrBadTopology, s.ID)
		}
		seen.Put(s.ID)
	}

	return nil
}

// CheckGrid reports the first zone whose center is out of bounds or blocked on g.
func (t *Topology) CheckGrid(g *grid.Grid) error {
	for _, s := range t.Zones {
		if g.Blocked(s.Center) {
			return fmt.Errorf("%w: zone %q center %v is blocked or outside the %dx%d map",
				ErrBadTopology, s.ID, s.Center, g.Rows(), g.Cols())
		}
	}

	return nil
}

// LoadTopology reads a YAML topology file and validates it.
func LoadTopology(path string) (Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Topology{}, fmt.Errorf("zone: read topology %s: %w", path, err)
	}
	var t Topology
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Topology{}, fmt.Errorf("%w: decode %s: %v", ErrBadTopology, path, err)
	}
	if err := t.Validate(); err != nil {
		return Topology{}, err
	}

	return t, nil
}

// DefaultTopology is the nine-zone layout of the 5×5 inspection map: three
// rows (A top, B middle, C bottom) of three zones each. A3 carries a high
// historical risk and C1 has not been inspected for five hours.
func DefaultTopology() Topology {
	return Topology{Zones: []Spec{
		{ID: "A1", Center: grid.Cell{Row: 0, Col: 0}},
		{ID: "A2", Center: grid.Cell{Row: 0, Col: 2}},
		{ID: "A3", Center: grid.Cell{Row: 0, Col: 4}, AvgRisk: 0.7},
		{ID: "B1", Center: grid.Cell{Row: 2, Col: 0}},
		{ID: "B2", Center: grid.Cell{Row: 2, Col: 2}},
		{ID: "B3", Center: grid.Cell{Row: 2, Col: 4}},
		{ID: "C1", Center: grid.Cell{Row: 4, Col: 0}, InspectedAgo: 5 * time.Hour},
		{ID: "C2", Center: grid.Cell{Row: 4, Col: 2}},
		{ID: "C3", Center: grid.Cell{Row: 4, Col: 4}},
	}}
}
