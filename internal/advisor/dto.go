package advisor

import (
	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/planner"
	"github.com/katalvlaran/patrol/selector"
	"github.com/katalvlaran/patrol/zone"
)

// NextTargetRequest is the body of POST /targets/next.
type NextTargetRequest struct {
	Position *grid.Cell `json:"position"`
}

// NextTargetResponse carries the plan, or a nil plan when no zone is eligible.
type NextTargetResponse struct {
	Plan *planner.Plan `json:"plan"`
}

// InspectionRequest is the body of POST /zones/{id}/inspections.
type InspectionRequest struct {
	Risk *float64 `json:"risk"`
}

// InspectionResponse echoes the updated zone.
type InspectionResponse struct {
	zone.Entry
}

// PathRequest is the body of POST /paths.
type PathRequest struct {
	Start      *grid.Cell `json:"start"`
	Goal       *grid.Cell `json:"goal"`
	StepBudget int        `json:"step_budget"`
}

// PathResponse is the outcome of a path query.
type PathResponse struct {
	Found     bool        `json:"found"`
	Exhausted bool        `json:"exhausted"`
	Steps     int         `json:"steps"`
	Path      []grid.Cell `json:"path"`
	Expanded  int         `json:"expanded"`
}

// ZoneListResponse lists every zone with its state and, when a position is
// given, its score.
type ZoneListResponse struct {
	Zones  []zone.Entry         `json:"zones"`
	Scores []selector.Candidate `json:"scores,omitempty"`
}

// MapResponse is the current occupancy matrix, 0 free and 1 blocked.
type MapResponse struct {
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	Cells [][]int `json:"cells"`
}
