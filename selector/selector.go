package selector

import (
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/zone"
)

// Priority scores rec at time now. Higher is more urgent.
// A LastInspected in the future (clock skew) counts as zero elapsed time.
func Priority(rec zone.Record, now time.Time, w Weights) float64 {
	elapsed := now.Sub(rec.LastInspected)
	if elapsed < 0 {
		elapsed = 0
	}

	var ratio float64
	switch {
	case w.MaxStaleness > 0:
		ratio = math.Min(float64(elapsed)/float64(w.MaxStaleness), 1)
	case elapsed > 0:
		ratio = 1
	}

	p := ratio*w.TimeWeight + rec.AvgRisk*w.RiskWeight
	if !rec.EverVisited {
		p += w.NeverVisitedBonus
	}

	return p
}

// Score evaluates every entry accepted by the filter, in lexicographic
// identifier order. The input slice is not modified.
func Score(entries []zone.Entry, pos grid.Cell, opts ...Option) ([]Candidate, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	return score(entries, pos, cfg), nil
}

// score evaluates entries against one clock reading.
func score(entries []zone.Entry, pos grid.Cell, cfg Options) []Candidate {
	// 1) Visit zones by identifier; sort a copy only when the caller's slice is unsorted
	ordered := entries
	if !sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID }) {
		ordered = make([]zone.Entry, len(entries))
		copy(ordered, entries)
		sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	}

	// 2) Read the clock once so every zone is scored at the same instant
	now := cfg.Now()
	out := make([]Candidate, 0, len(ordered))
	for _, e := range ordered {
		// 3) Drop filtered zones, then score the rest
		if cfg.Filter != nil && !cfg.Filter(e) {
			continue
		}
		out = append(out, Candidate{
			ZoneID:   e.ID,
			Target:   e.Center,
			Priority: Priority(e.Record, now, cfg.Weights),
			Distance: grid.Manhattan(pos, e.Center),
		})
	}

	return out
}

// Select returns the most urgent zone for a robot at pos.
//
// Candidates are visited in lexicographic identifier order. Every zone whose
// priority is within TieEpsilon of the maximum is tied; among tied zones a
// strictly smaller Manhattan distance to pos wins, otherwise the earlier zone
// is kept. With TieEpsilon 0 only exact maxima tie.
//
// Returns ErrNoZones when entries is empty or every entry is filtered out,
// and ErrOptionViolation for invalid options.
func Select(entries []zone.Entry, pos grid.Cell, opts ...Option) (Selection, error) {
	// 1) Build and validate Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return Selection{}, cfg.err
	}

	// 2) Score candidates; nothing left is a negative result
	cands := score(entries, pos, cfg)
	if len(cands) == 0 {
		return Selection{}, ErrNoZones
	}

	return pick(cands, cfg.Weights.TieEpsilon), nil
}

// pick chooses from non-empty cands in two passes. Ties are measured against
// the overall maximum, never against the current winner, so a chain of near
// ties cannot drift more than eps below it.
func pick(cands []Candidate, eps float64) Candidate {
	// 1) Find the maximum priority.
	maxP := cands[0].Priority
	for _, c := range cands[1:] {
		if c.Priority > maxP {
			maxP = c.Priority
		}
	}

	// 2) Take the closest candidate within eps of it; the earlier one on equal distance.
	best := -1
	for i, c := range cands {
		if maxP-c.Priority > eps {
			continue
		}
		if best < 0 || c.Distance < cands[best].Distance {
			best = i
		}
	}

	return cands[best]
}

// Next selects from a consistent snapshot of reg.
func Next(reg *zone.Registry, pos grid.Cell, opts ...Option) (Selection, error) {
	if reg == nil {
		return Selection{}, ErrNoZones
	}

	return Select(reg.Snapshot(), pos, opts...)
}
