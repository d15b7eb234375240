package zone

import (
	"errors"
	"time"

	"github.com/katalvlaran/patrol/grid"
)

// Sentinel errors for zone operations.
var (
	// ErrUnknownZone indicates an identifier that is not part of the topology.
	ErrUnknownZone = errors.New("zone: unknown zone")

	// ErrRiskOutOfRange indicates a risk score outside [0,1].
	ErrRiskOutOfRange = errors.New("zone: risk score must be within [0,1]")

	// ErrBadTopology indicates an invalid topology definition.
	ErrBadTopology = errors.New("zone: invalid topology")
)

// EWMA weights applied by RecordInspection. They sum to 1, so the average
// stays a convex combination of its history and the new observation.
const (
	HistoryWeight     = 0.8
	ObservationWeight = 0.2
)

// ID identifies a zone.
type ID string

// Record is the mutable state of one zone.
type Record struct {
	Center        grid.Cell `json:"center"`
	LastInspected time.Time `json:"last_inspected"`
	AvgRisk       float64   `json:"avg_risk"`
	EverVisited   bool      `json:"ever_visited"`
}

// Entry pairs a zone identifier with a copy of its record.
type Entry struct {
	ID ID `json:"id"`
	Record
}
