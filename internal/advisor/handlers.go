package advisor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/katalvlaran/patrol/astar"
	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/planner"
	"github.com/katalvlaran/patrol/selector"
	"github.com/katalvlaran/patrol/zone"
)

const maxBody = 1 << 20

// Handler holds the advisor route handlers.
type Handler struct {
	p *planner.Planner
}

// NewHandler creates a new Handler.
func NewHandler(p *planner.Planner) *Handler {
	return &Handler{p: p}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}

	return true
}

// ListZones handles GET /zones. With ?row=&col= each zone is also scored for
// a robot at that cell.
func (h *Handler) ListZones(w http.ResponseWriter, r *http.Request) {
	resp := ZoneListResponse{Zones: h.p.Registry().Snapshot()}

	q := r.URL.Query()
	if q.Has("row") || q.Has("col") {
		row, errR := strconv.Atoi(q.Get("row"))
		col, errC := strconv.Atoi(q.Get("col"))
		if errR != nil || errC != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("row and col must be integers"))
			return
		}
		scores, err := h.p.Zones(grid.Cell{Row: row, Col: col})
		if err != nil {
			writeError(w, "score zones", err)
			return
		}
		resp.Scores = scores
	}

	writeJSON(w, http.StatusOK, resp)
}

// NextTarget handles POST /targets/next.
func (h *Handler) NextTarget(w http.ResponseWriter, r *http.Request) {
	var req NextTargetRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Position == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("position is required"))
		return
	}

	plan, err := h.p.Next(r.Context(), *req.Position)
	if err != nil {
		if errors.Is(err, selector.ErrNoZones) {
			writeJSON(w, http.StatusOK, NextTargetResponse{})
			return
		}
		writeError(w, "next target", err)
		return
	}
	writeJSON(w, http.StatusOK, NextTargetResponse{Plan: plan})
}

// RecordInspection handles POST /zones/{id}/inspections.
func (h *Handler) RecordInspection(w http.ResponseWriter, r *http.Request) {
	id := zone.ID(chi.URLParam(r, "id"))
	var req InspectionRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Risk == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("risk is required"))
		return
	}

	rec, err := h.p.Complete(id, *req.Risk)
	if err != nil {
		writeError(w, "record inspection", err)
		return
	}
	writeJSON(w, http.StatusOK, InspectionResponse{Entry: zone.Entry{ID: id, Record: rec}})
}

// FindPath handles POST /paths.
func (h *Handler) FindPath(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Start == nil || req.Goal == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("start and goal are required"))
		return
	}

	var opts []astar.Option
	if req.StepBudget != 0 {
		opts = append(opts, astar.WithStepBudget(req.StepBudget))
	}
	res, err := h.p.Route(r.Context(), *req.Start, *req.Goal, opts...)
	if err != nil {
		writeError(w, "find path", err)
		return
	}
	writeJSON(w, http.StatusOK, PathResponse{
		Found:     res.Found,
		Exhausted: res.Exhausted,
		Steps:     res.Cost(),
		Path:      res.Path,
		Expanded:  res.Expanded,
	})
}

// Map handles GET /map.
func (h *Handler) Map(w http.ResponseWriter, _ *http.Request) {
	g := h.p.Grid()
	writeJSON(w, http.StatusOK, MapResponse{
		Rows:  g.Rows(),
		Cols:  g.Cols(),
		Cells: g.Values(),
	})
}
