// Package advisor serves the planner over HTTP: the robot asks where to go
// next, reports inspection results and requests routes.
package advisor

import (
	"github.com/go-chi/chi/v5"

	"github.com/katalvlaran/patrol/planner"
)

// NewRouter creates a chi router with all advisor routes mounted.
func NewRouter(p *planner.Planner) chi.Router {
	h := NewHandler(p)

	r := chi.NewRouter()

	r.Get("/zones", h.ListZones)
	r.Post("/zones/{id}/inspections", h.RecordInspection)
	r.Post("/targets/next", h.NextTarget)
	r.Post("/paths", h.FindPath)
	r.Get("/map", h.Map)

	return r
}
