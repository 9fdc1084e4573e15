// Package scarcity tracks per-position depletion and urgency.
package scarcity

import (
	"math"

	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/internal/draft/roster"
)

// Urgency classification thresholds.
const (
	criticalPct    = 80
	highPct        = 60
	mediumPct      = 40
	premiumHighMax = 2
)

// Urgency classifies how pressing a position has become.
type Urgency string

// Urgency levels, most pressing first.
const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
)

// PositionScarcity is the depletion summary for one position.
type PositionScarcity struct {
	Position         model.Position `json:"position"`
	AvailableCount   int            `json:"available_count"`
	PremiumRemaining int            `json:"premium_remaining"`
	ScarcityPct      int            `json:"scarcity_pct"`
	Urgency          Urgency        `json:"urgency"`
}

// Compute summarizes depletion for every position over the whole pool.
// ScarcityPct is the drafted share of league-wide rosterable slots, capped
// at 100. A position with zero configured slots reports 100.
func Compute(all []model.Candidate, cfg roster.Config) map[model.Position]PositionScarcity {
	out := make(map[model.Position]PositionScarcity, len(model.Positions()))
	for _, p := range model.Positions() {
		var available, drafted, premium int
		for _, c := range all {
			if !c.EligibleAt(p) {
				continue
			}
			if c.Available() {
				available++
				if c.IsPremium() {
					premium++
				}
			} else {
				drafted++
			}
		}

		slots := cfg.RosterableSlots(p)
		pct := 100
		if slots > 0 {
			pct = int(math.Round(float64(drafted) / float64(slots) * 100))
			if pct > 100 {
				pct = 100
			}
		}

		out[p] = PositionScarcity{
			Position:         p,
			AvailableCount:   available,
			PremiumRemaining: premium,
			ScarcityPct:      pct,
			Urgency:          classify(pct, premium),
		}
	}
	return out
}

// classify applies the ordered urgency rules; the first match wins.
func classify(pct, premiumRemaining int) Urgency {
	switch {
	case pct >= criticalPct || premiumRemaining == 0:
		return UrgencyCritical
	case pct >= highPct || premiumRemaining <= premiumHighMax:
		return UrgencyHigh
	case pct >= mediumPct:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}
