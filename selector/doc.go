// Package selector decides which zone the robot should inspect next.
//
// Each zone gets a priority from three signals:
//
//	time_component = clamp(elapsed / MaxStaleness, 0, 1) * TimeWeight
//	risk_component = AvgRisk * RiskWeight
//	priority       = time_component + risk_component (+ NeverVisitedBonus if never visited)
//
// Select visits zones in lexicographic identifier order. Zones tied at the
// maximum priority go to the one with the strictly smaller Manhattan distance
// to the robot; equal distances keep the earlier zone. The outcome is
// therefore reproducible across runs.
//
// By default priorities must equal the maximum exactly to tie. Weights.TieEpsilon
// widens that to max-p <= eps for callers that want near-equal scores broken by
// distance. The tolerance is always measured from the maximum, so the winner
// is never more than eps below it.
//
// An empty candidate set is reported as ErrNoZones. That is an expected
// outcome the caller handles as control flow, in the manner of io.EOF.
package selector
