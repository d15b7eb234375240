package zone

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"
)

// Registry maps zone identifiers to records. The key set is fixed at
// construction.
type Registry struct {
	mu      sync.RWMutex
	ids     []ID // sorted, immutable
	records map[ID]*Record
}

// NewRegistry validates top and builds a registry whose records start at
// now (minus each zone's InspectedAgo).
func NewRegistry(top Topology, now time.Time) (*Registry, error) {
	if err := top.Validate(); err != nil {
		return nil, err
	}
	r := &Registry{
		ids:     make([]ID, 0, len(top.Zones)),
		records: make(map[ID]*Record, len(top.Zones)),
	}
	for _, s := range top.Zones {
		r.ids = append(r.ids, s.ID)
		r.records[s.ID] = &Record{
			Center:        s.Center,
			LastInspected: now.Add(-s.InspectedAgo),
			AvgRisk:       s.AvgRisk,
			EverVisited:   s.Visited,
		}
	}
	sort.Slice(r.ids, func(i, j int) bool { return r.ids[i] < r.ids[j] })

	return r, nil
}

// Len returns the number of zones.
func (r *Registry) Len() int { return len(r.ids) }

// IDs returns the zone identifiers in lexicographic order.
func (r *Registry) IDs() []ID {
	out := make([]ID, len(r.ids))
	copy(out, r.ids)

	return out
}

// Get returns a copy of the record for id.
func (r *Registry) Get(id ID) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return Record{}, false
	}

	return *rec, true
}

// Snapshot copies every record, ordered by identifier, under one read lock.
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.ids))
	for i, id := range r.ids {
		out[i] = Entry{ID: id, Record: *r.records[id]}
	}

	return out
}

// RecordInspection applies a completed inspection of zone id: the visit time
// becomes now, the zone is marked visited and risk is folded into AvgRisk.
// Inputs are validated before anything changes; on error the registry is
// untouched. Returns the updated record.
func (r *Registry) RecordInspection(id ID, risk float64, now time.Time) (Record, error) {
	// The key set is fixed at construction, so the lookup needs no lock.
	rec, ok := r.records[id]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownZone, id)
	}
	if math.IsNaN(risk) || risk < 0 || risk > 1 {
		return Record{}, fmt.Errorf("%w: got %v", ErrRiskOutOfRange, risk)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	rec.LastInspected = now
	rec.EverVisited = true
	rec.AvgRisk = clampUnit(HistoryWeight*rec.AvgRisk + ObservationWeight*risk)

	return *rec, nil
}

// clampUnit pins v to [0,1]; rounding can leave a convex combination one ulp outside.
func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
