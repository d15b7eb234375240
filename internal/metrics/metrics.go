// Package metrics exposes planner activity as Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/patrol/astar"
	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/planner"
	"github.com/katalvlaran/patrol/zone"
)

// Result label values.
const (
	ResultFound     = "found"
	ResultNoPath    = "no_path"
	ResultExhausted = "exhausted"
)

// Metrics implements planner.Metrics on top of a Prometheus registerer.
type Metrics struct {
	gatherer prometheus.Gatherer

	plans          *prometheus.CounterVec
	planDuration   prometheus.Histogram
	routes         *prometheus.CounterVec
	routeDuration  prometheus.Histogram
	expanded       prometheus.Histogram
	inspections    *prometheus.CounterVec
	avgRisk        *prometheus.GaugeVec
	mapCells       prometheus.Gauge
	mapReplacement prometheus.Counter
}

var _ planner.Metrics = (*Metrics)(nil)

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWith(reg, reg)
}

// NewWith registers the collectors on reg; g serves Handler.
func NewWith(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		gatherer: g,
		plans: f.NewCounterVec(prometheus.CounterOpts{
			Name: "patrol_plans_total",
			Help: "Planning cycles by route result",
		}, []string{"result"}),
		planDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "patrol_plan_duration_seconds",
			Help:    "Selection plus routing latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14), // 50µs to ~400ms
		}),
		routes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "patrol_routes_total",
			Help: "Standalone path queries by result",
		}, []string{"result"}),
		routeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "patrol_route_duration_seconds",
			Help:    "Path query latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
		}),
		expanded: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "patrol_astar_expanded_nodes",
			Help:    "Nodes expanded per A* search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		inspections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "patrol_inspections_total",
			Help: "Recorded inspections per zone",
		}, []string{"zone"}),
		avgRisk: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "patrol_zone_avg_risk",
			Help: "Historical average risk per zone",
		}, []string{"zone"}),
		mapCells: f.NewGauge(prometheus.GaugeOpts{
			Name: "patrol_map_cells",
			Help: "Cells in the current map",
		}),
		mapReplacement: f.NewCounter(prometheus.CounterOpts{
			Name: "patrol_map_installs_total",
			Help: "Maps installed since start",
		}),
	}
}

// Handler serves the collected metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func result(found, exhausted bool) string {
	switch {
	case found:
		return ResultFound
	case exhausted:
		return ResultExhausted
	default:
		return ResultNoPath
	}
}

// PlanComputed implements planner.Metrics.
func (m *Metrics) PlanComputed(p *planner.Plan, took time.Duration) {
	m.plans.WithLabelValues(result(p.Found, p.Exhausted)).Inc()
	m.planDuration.Observe(took.Seconds())
	m.expanded.Observe(float64(p.Expanded))
}

// RouteComputed implements planner.Metrics.
func (m *Metrics) RouteComputed(res *astar.Result, took time.Duration) {
	m.routes.WithLabelValues(result(res.Found, res.Exhausted)).Inc()
	m.routeDuration.Observe(took.Seconds())
	m.expanded.Observe(float64(res.Expanded))
}

// InspectionRecorded implements planner.Metrics.
func (m *Metrics) InspectionRecorded(id zone.ID, rec zone.Record) {
	m.inspections.WithLabelValues(string(id)).Inc()
	m.avgRisk.WithLabelValues(string(id)).Set(rec.AvgRisk)
}

// MapReplaced implements planner.Metrics.
func (m *Metrics) MapReplaced(g *grid.Grid) {
	m.mapCells.Set(float64(g.Size()))
	m.mapReplacement.Inc()
}
