// Package composite blends valuation signals into tunable draft scores.
package composite

import (
	"github.com/okian/sherrin/internal/draft/roster"
)

// NeutralNormalized is the min-max fallback when the pool has zero variance
// or fewer than two members (midpoint of the 0-100 range).
const NeutralNormalized = 50.0

const normalizedMax = 100.0

// Inputs carries the base composite signals for one candidate.
type Inputs struct {
	FinalValue  float64
	ScarcityPct float64
	ByeValue    float64
}

// Base computes the base composite: a linear combination of final value,
// positional scarcity and bye balance under the configured weights.
func Base(in Inputs, w roster.Weights) float64 {
	return in.FinalValue*w.Value + in.ScarcityPct*w.Scarcity + in.ByeValue*w.Bye
}

// PickNowInputs carries the extended phase-aware signals for one candidate.
// All fields must already be normalized to the 0-100 range.
type PickNowInputs struct {
	Value       float64
	Cliff       float64
	MarketGap   float64
	Consistency float64
	RiskPenalty float64
}

// PickNow computes the extended phase-aware composite. Risk enters as a
// penalty and can push the score negative for badly flagged candidates.
func PickNow(in PickNowInputs, w roster.PhaseWeights) float64 {
	return in.Value*w.Value +
		in.Cliff*w.Cliff +
		in.MarketGap*w.MarketGap +
		in.Consistency*w.Consistency -
		in.RiskPenalty*w.Risk
}

// Normalize min-max scales values to 0-100 against the given pool. When the
// pool has fewer than two members or zero variance every entry maps to the
// neutral midpoint, which keeps the blend stable instead of dividing by
// zero.
func Normalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) < 2 {
		for i := range out {
			out[i] = NeutralNormalized
		}
		return out
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		for i := range out {
			out[i] = NeutralNormalized
		}
		return out
	}

	for i, v := range values {
		out[i] = (v - lo) / (hi - lo) * normalizedMax
	}
	return out
}
