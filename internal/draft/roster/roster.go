// Package roster defines static league configuration for a draft.
package roster

import (
	"math"

	"github.com/okian/sherrin/internal/draft/model"
)

// Default league configuration constants. Slot counts reproduce the
// league-wide rosterable totals of the source dataset (DEF 42, MID 36,
// RUC 12, FWD 42 for a six-team league).
const (
	defaultTeams     = 6
	defaultBench     = 4
	defaultFlexBonus = 5.0
	defaultVONA      = 10.0
	defaultRunWindow = 5
)

// Phase identifies a stage of the draft used for weight selection.
type Phase string

// Draft phases.
const (
	PhaseEarly Phase = "early"
	PhaseMid   Phase = "mid"
	PhaseLate  Phase = "late"
)

// Weights is the base composite weight vector. Weights are non-negative
// and need not sum to 1; the composite is a plain linear combination.
type Weights struct {
	Value    float64 `koanf:"value" json:"value"`
	Scarcity float64 `koanf:"scarcity" json:"scarcity"`
	Bye      float64 `koanf:"bye" json:"bye"`
}

// PhaseWeights is the extended pick-now weight vector for one draft phase.
type PhaseWeights struct {
	Value       float64 `koanf:"value" json:"value"`
	Cliff       float64 `koanf:"cliff" json:"cliff"`
	MarketGap   float64 `koanf:"market_gap" json:"market_gap"`
	Consistency float64 `koanf:"consistency" json:"consistency"`
	Risk        float64 `koanf:"risk" json:"risk"` // subtracted as a penalty
}

// Config is the static league configuration. It carries no draft state.
type Config struct {
	Teams       int                    `json:"teams"`
	Starters    map[model.Position]int `json:"starters"`
	Emergencies map[model.Position]int `json:"emergencies"`
	Bench       int                    `json:"bench"` // position-agnostic, excluded from replacement math
	FlexBonus   float64                `json:"flex_bonus"`

	Weights Weights `json:"weights"`

	// Phase boundaries as fractions of total draft picks completed,
	// ordered: [0, EarlyEnd) early, [EarlyEnd, LateStart) mid, rest late.
	EarlyEnd  float64 `json:"early_end"`
	LateStart float64 `json:"late_start"`

	PhaseEarlyWeights PhaseWeights `json:"phase_early_weights"`
	PhaseMidWeights   PhaseWeights `json:"phase_mid_weights"`
	PhaseLateWeights  PhaseWeights `json:"phase_late_weights"`

	ByeRounds     []int   `json:"bye_rounds"`
	VONAThreshold float64 `json:"vona_threshold"`
	RunWindow     int     `json:"run_window"`
}

// Default returns the default six-team league configuration.
func Default() Config {
	return Config{
		Teams: defaultTeams,
		Starters: map[model.Position]int{
			model.Defender: 5,
			model.Midfield: 5,
			model.Ruck:     1,
			model.Forward:  5,
		},
		Emergencies: map[model.Position]int{
			model.Defender: 2,
			model.Midfield: 1,
			model.Ruck:     1,
			model.Forward:  2,
		},
		Bench:     defaultBench,
		FlexBonus: defaultFlexBonus,
		Weights:   Weights{Value: 0.7, Scarcity: 0.2, Bye: 0.1},
		EarlyEnd:  0.30,
		LateStart: 0.70,
		// Early drafts chase raw value; mid drafts weigh cliffs and market
		// gaps; late drafts favour consistency and punish risk harder.
		PhaseEarlyWeights: PhaseWeights{Value: 0.55, Cliff: 0.15, MarketGap: 0.15, Consistency: 0.10, Risk: 0.05},
		PhaseMidWeights:   PhaseWeights{Value: 0.40, Cliff: 0.25, MarketGap: 0.20, Consistency: 0.10, Risk: 0.05},
		PhaseLateWeights:  PhaseWeights{Value: 0.30, Cliff: 0.15, MarketGap: 0.15, Consistency: 0.25, Risk: 0.15},
		ByeRounds:         []int{12, 13, 14, 15},
		VONAThreshold:     defaultVONA,
		RunWindow:         defaultRunWindow,
	}
}

// Validate rejects configuration errors before any computation begins.
func (c Config) Validate() error {
	if c.Teams < 2 {
		return ErrTeamCount
	}
	for _, p := range model.Positions() {
		if c.Starters[p] < 0 || c.Emergencies[p] < 0 {
			return ErrNegativeSlots
		}
	}
	if c.Bench < 0 {
		return ErrNegativeSlots
	}
	if c.FlexBonus < 0 {
		return ErrNegativeBonus
	}
	if c.Weights.Value < 0 || c.Weights.Scarcity < 0 || c.Weights.Bye < 0 {
		return ErrNegativeWeight
	}
	if c.EarlyEnd < 0 || c.LateStart > 1 || c.EarlyEnd > c.LateStart {
		return ErrPhaseBounds
	}
	if c.VONAThreshold < 0 {
		return ErrNegativeThreshold
	}
	return nil
}

// RosterableSlots returns the league-wide rosterable slot count at p:
// (starters + emergencies) x teams. Bench slots are excluded.
func (c Config) RosterableSlots(p model.Position) int {
	return (c.Starters[p] + c.Emergencies[p]) * c.Teams
}

// TotalPicks returns the total number of picks in a full draft.
func (c Config) TotalPicks() int {
	perTeam := c.Bench
	for _, p := range model.Positions() {
		perTeam += c.Starters[p] + c.Emergencies[p]
	}
	return perTeam * c.Teams
}

// PhaseAt maps the current overall pick to a draft phase by comparing
// completed-pick progress against the configured boundaries.
func (c Config) PhaseAt(currentPick int) Phase {
	total := c.TotalPicks()
	if total <= 0 {
		return PhaseEarly
	}
	progress := float64(currentPick-1) / float64(total)
	switch {
	case progress < c.EarlyEnd:
		return PhaseEarly
	case progress < c.LateStart:
		return PhaseMid
	default:
		return PhaseLate
	}
}

// PhaseWeightsAt returns the pick-now weight vector for the current pick.
func (c Config) PhaseWeightsAt(currentPick int) PhaseWeights {
	switch c.PhaseAt(currentPick) {
	case PhaseMid:
		return c.PhaseMidWeights
	case PhaseLate:
		return c.PhaseLateWeights
	default:
		return c.PhaseEarlyWeights
	}
}

// ValidBye reports whether round is in the configured closed bye set.
func (c Config) ValidBye(round int) bool {
	for _, b := range c.ByeRounds {
		if b == round {
			return true
		}
	}
	return false
}

// SnakeRound returns the 1-indexed round for an overall pick.
func (c Config) SnakeRound(pick int) int {
	if c.Teams <= 0 || pick <= 0 {
		return 0
	}
	return int(math.Ceil(float64(pick) / float64(c.Teams)))
}

// SnakeSlot returns the 1-indexed position within the round for a pick.
func (c Config) SnakeSlot(pick int) int {
	if c.Teams <= 0 || pick <= 0 {
		return 0
	}
	return ((pick - 1) % c.Teams) + 1
}
