// Package zone keeps per-zone inspection state for the target selector.
//
// A Registry is built once from an explicit Topology (zone identifiers and
// their center cells). The key set never changes afterwards; the only mutator
// is RecordInspection, which stamps the visit time and folds the reported risk
// into an exponentially weighted moving average:
//
//	avg_risk = 0.8*avg_risk + 0.2*risk
//
// Registry methods are safe for concurrent use. Snapshot copies every record
// under a read lock, so a selection scan never observes a half-applied update.
//
// Errors:
//
//   - ErrUnknownZone:    RecordInspection on an identifier outside the topology.
//   - ErrRiskOutOfRange: risk score outside [0,1] or NaN.
//   - ErrBadTopology:    empty identifiers, duplicates or out-of-range initial state.
package zone
