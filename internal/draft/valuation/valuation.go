// Package valuation computes replacement levels and value over replacement.
package valuation

import (
	"math"
	"sort"

	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/internal/draft/roster"
)

// Levels holds the per-position replacement level for the current pool.
type Levels map[model.Position]float64

// ReplacementLevels computes, for each position, the projected score of the
// last candidate who would still be rostered league-wide given the available
// pool. A pool smaller than the slot count degrades to the worst remaining
// eligible candidate; an empty pool degrades to 0. Pool exhaustion is not an
// error.
func ReplacementLevels(available []model.Candidate, cfg roster.Config) Levels {
	levels := make(Levels, len(model.Positions()))
	for _, p := range model.Positions() {
		var scores []float64
		for _, c := range available {
			if c.EligibleAt(p) {
				scores = append(scores, c.Projected)
			}
		}
		if len(scores) == 0 {
			levels[p] = 0
			continue
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
		slots := cfg.RosterableSlots(p)
		if slots > 0 && len(scores) >= slots {
			levels[p] = scores[slots-1]
		} else {
			levels[p] = scores[len(scores)-1]
		}
	}
	return levels
}

// Result is the per-candidate valuation output.
type Result struct {
	PerPosition  map[model.Position]float64
	BestPosition model.Position
	Bonus        float64
	FinalValue   float64
}

// Compute evaluates a candidate against the current replacement levels.
// The resolved value is an explicit fold over the eligibility set keeping
// the running maximum, so a later position can never silently overwrite an
// earlier, better one. Ties resolve to the earlier eligibility entry. The
// flex bonus applies only to candidates with 2+ eligible positions.
func Compute(c model.Candidate, levels Levels, cfg roster.Config) Result {
	res := Result{PerPosition: make(map[model.Position]float64, len(c.Positions))}

	best := math.Inf(-1)
	for _, p := range c.Positions {
		v := c.Projected - levels[p]
		res.PerPosition[p] = v
		if v > best {
			best = v
			res.BestPosition = p
		}
	}
	if len(c.Positions) == 0 {
		// No recognized eligibility: degraded data, value 0 at no position.
		res.FinalValue = 0
		return res
	}

	res.FinalValue = best
	if c.MultiPosition() {
		res.Bonus = cfg.FlexBonus
		res.FinalValue += res.Bonus
	}
	return res
}
