// Package cliff computes value-over-next-available (VONA) gaps.
package cliff

import (
	"sort"

	"github.com/okian/sherrin/internal/draft/model"
)

// Entry pairs an available candidate with its resolved final value.
type Entry struct {
	CandidateID string
	FinalValue  float64
}

// Compute returns the per-candidate VONA: the value gap to the next-best
// available candidate at the same resolved position. The last candidate in
// a group has no successor and keeps its full final value as the gap.
func Compute(byPosition map[model.Position][]Entry) map[string]float64 {
	out := make(map[string]float64)
	for _, group := range byPosition {
		sorted := append([]Entry(nil), group...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].FinalValue > sorted[j].FinalValue
		})
		for i, e := range sorted {
			if i+1 < len(sorted) {
				out[e.CandidateID] = e.FinalValue - sorted[i+1].FinalValue
			} else {
				out[e.CandidateID] = e.FinalValue
			}
		}
	}
	return out
}

// Flagged reports whether a gap crosses the do-not-skip threshold.
func Flagged(vona, threshold float64) bool {
	return vona >= threshold
}
