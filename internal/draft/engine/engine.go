// Package engine runs the full draft valuation pipeline over a snapshot.
//
// Every call is a pure function of the snapshot and roster configuration:
// replacement levels -> per-candidate valuation -> scarcity and bye balance
// -> composite scores -> VONA cliffs, with run detection and pick
// forecasting computed independently from the event log. There is no cache
// and no partial-update path; callers re-evaluate after every mutation.
package engine

import (
	"sort"
	"strings"

	"github.com/okian/sherrin/internal/draft/byes"
	"github.com/okian/sherrin/internal/draft/cliff"
	"github.com/okian/sherrin/internal/draft/composite"
	"github.com/okian/sherrin/internal/draft/forecast"
	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/internal/draft/roster"
	"github.com/okian/sherrin/internal/draft/runs"
	"github.com/okian/sherrin/internal/draft/scarcity"
	"github.com/okian/sherrin/internal/draft/valuation"
)

// Risk penalty mapping for the pick-now blend (already on the 0-100 scale).
const (
	riskPenaltyHigh   = 100.0
	riskPenaltyMedium = 60.0
	riskPenaltyLow    = 25.0
)

// CandidateMetrics is the derived valuation output for one candidate. It is
// recomputed in full on every evaluation and carries no identity of its own
// beyond the candidate it describes.
type CandidateMetrics struct {
	CandidateID string           `json:"candidate_id"`
	Name        string           `json:"name"`
	Club        string           `json:"club"`
	Positions   []model.Position `json:"positions"`
	Projected   float64          `json:"projected"`
	ByeRound    int              `json:"bye_round"`
	Drafted     bool             `json:"drafted"`
	Owner       int              `json:"owner,omitempty"`
	OverallPick int              `json:"overall_pick,omitempty"`

	PerPosition  map[model.Position]float64 `json:"per_position"`
	BestPosition model.Position             `json:"best_position"`
	Bonus        float64                    `json:"bonus"`
	FinalValue   float64                    `json:"final_value"`

	ScarcityPct int              `json:"scarcity_pct"`
	Urgency     scarcity.Urgency `json:"urgency"`
	ByeValue    int              `json:"bye_value"`

	Composite float64 `json:"composite"`
	PickNow   float64 `json:"pick_now"`

	Cliff     float64 `json:"cliff"`
	CliffFlag bool    `json:"cliff_flag"`

	ValueRank   int `json:"value_rank,omitempty"`   // 1-based rank among available, by final value
	MarketDelta int `json:"market_delta,omitempty"` // market rank minus value rank; positive = market undervalues
}

// Board is the full evaluation output for one snapshot.
type Board struct {
	Metrics     []CandidateMetrics                          `json:"metrics"`
	Levels      valuation.Levels                            `json:"levels"`
	Scarcity    map[model.Position]scarcity.PositionScarcity `json:"scarcity"`
	Runs        []runs.Alert                                `json:"runs"`
	Phase       roster.Phase                                `json:"phase"`
	CurrentPick int                                         `json:"current_pick"`
}

// Evaluate runs the pipeline for every candidate in the snapshot. Bye
// balance for available candidates is judged against myTeam's current
// roster; drafted candidates are judged against their owner's roster at the
// time of the call, excluding themselves. The returned board lists
// available candidates first, ordered by composite score.
func Evaluate(snap model.Snapshot, cfg roster.Config, myTeam int) Board {
	available := snap.Available()
	levels := valuation.ReplacementLevels(available, cfg)
	scarcityByPos := scarcity.Compute(snap.Candidates, cfg)

	teamRosters := make(map[int][]model.Candidate)
	for _, c := range snap.Candidates {
		if c.Drafted {
			teamRosters[c.Owner] = append(teamRosters[c.Owner], c)
		}
	}

	metrics := make([]CandidateMetrics, 0, len(snap.Candidates))
	for _, c := range snap.Candidates {
		val := valuation.Compute(c, levels, cfg)

		m := CandidateMetrics{
			CandidateID:  c.ID,
			Name:         c.Name,
			Club:         c.Club,
			Positions:    append([]model.Position(nil), c.Positions...),
			Projected:    c.Projected,
			ByeRound:     c.ByeRound,
			Drafted:      c.Drafted,
			Owner:        c.Owner,
			OverallPick:  c.OverallPick,
			PerPosition:  val.PerPosition,
			BestPosition: val.BestPosition,
			Bonus:        val.Bonus,
			FinalValue:   val.FinalValue,
		}

		if s, ok := scarcityByPos[val.BestPosition]; ok {
			m.ScarcityPct = s.ScarcityPct
			m.Urgency = s.Urgency
		}

		m.ByeValue = byes.Value(c.ByeRound, rosterFor(c, myTeam, teamRosters))
		m.Composite = composite.Base(composite.Inputs{
			FinalValue:  m.FinalValue,
			ScarcityPct: float64(m.ScarcityPct),
			ByeValue:    float64(m.ByeValue),
		}, cfg.Weights)

		metrics = append(metrics, m)
	}

	byIdx := make(map[string]int, len(metrics))
	for i, m := range metrics {
		byIdx[m.CandidateID] = i
	}

	attachCliffs(metrics, byIdx, cfg)
	attachMarketRanks(snap, metrics, byIdx)
	attachPickNow(snap, metrics, byIdx, cfg)

	sortBoard(metrics)

	return Board{
		Metrics:     metrics,
		Levels:      levels,
		Scarcity:    scarcityByPos,
		Runs:        runs.Detect(snap.Events, candidateIndex(snap), cfg.RunWindow),
		Phase:       cfg.PhaseAt(snap.NextPick),
		CurrentPick: snap.NextPick,
	}
}

// Project runs the snake-order pick forecast for myTeam.
func Project(snap model.Snapshot, cfg roster.Config, myTeam int) forecast.Forecast {
	available := make(map[model.Position]int, len(model.Positions()))
	for _, c := range snap.Available() {
		for _, p := range c.Positions {
			available[p]++
		}
	}
	return forecast.Project(snap.NextPick, myTeam, cfg.Teams, snap.Events, candidateIndex(snap), available)
}

// rosterFor picks the reference roster for bye scoring: the owner's roster
// minus the candidate itself when drafted, otherwise myTeam's roster.
func rosterFor(c model.Candidate, myTeam int, teamRosters map[int][]model.Candidate) []model.Candidate {
	if !c.Drafted {
		return teamRosters[myTeam]
	}
	owned := teamRosters[c.Owner]
	out := make([]model.Candidate, 0, len(owned))
	for _, tc := range owned {
		if tc.ID != c.ID {
			out = append(out, tc)
		}
	}
	return out
}

// attachCliffs computes VONA gaps over available candidates grouped by
// resolved best position.
func attachCliffs(metrics []CandidateMetrics, byIdx map[string]int, cfg roster.Config) {
	groups := make(map[model.Position][]cliff.Entry)
	for _, m := range metrics {
		if m.Drafted || m.BestPosition == "" {
			continue
		}
		groups[m.BestPosition] = append(groups[m.BestPosition], cliff.Entry{
			CandidateID: m.CandidateID,
			FinalValue:  m.FinalValue,
		})
	}
	for id, gap := range cliff.Compute(groups) {
		i := byIdx[id]
		metrics[i].Cliff = gap
		metrics[i].CliffFlag = cliff.Flagged(gap, cfg.VONAThreshold)
	}
}

// attachMarketRanks ranks available candidates by final value and derives
// the market-vs-value delta for candidates with a known market rank.
func attachMarketRanks(snap model.Snapshot, metrics []CandidateMetrics, byIdx map[string]int) {
	type ranked struct {
		id    string
		value float64
	}
	var avail []ranked
	for _, m := range metrics {
		if !m.Drafted {
			avail = append(avail, ranked{id: m.CandidateID, value: m.FinalValue})
		}
	}
	sort.SliceStable(avail, func(i, j int) bool {
		if avail[i].value != avail[j].value {
			return avail[i].value > avail[j].value
		}
		return avail[i].id < avail[j].id
	})

	marketRanks := make(map[string]int, len(snap.Candidates))
	for _, c := range snap.Candidates {
		marketRanks[c.ID] = c.MarketRank
	}
	for rank, r := range avail {
		i := byIdx[r.id]
		metrics[i].ValueRank = rank + 1
		if mr := marketRanks[r.id]; mr > 0 {
			metrics[i].MarketDelta = mr - metrics[i].ValueRank
		}
	}
}

// attachPickNow blends the phase-aware pick-now score for available
// candidates. Final value, cliff and market gap are min-max normalized over
// the available pool; consistency and risk are already on the 0-100 scale.
func attachPickNow(snap model.Snapshot, metrics []CandidateMetrics, byIdx map[string]int, cfg roster.Config) {
	byID := candidateIndex(snap)

	var ids []string
	var values, cliffs, gaps []float64
	for _, m := range metrics {
		if m.Drafted {
			continue
		}
		ids = append(ids, m.CandidateID)
		values = append(values, m.FinalValue)
		cliffs = append(cliffs, m.Cliff)
		gaps = append(gaps, float64(m.MarketDelta))
	}

	normValues := composite.Normalize(values)
	normCliffs := composite.Normalize(cliffs)
	normGaps := composite.Normalize(gaps)
	weights := cfg.PhaseWeightsAt(snap.NextPick)

	for i, id := range ids {
		c := byID[id]
		idx := byIdx[id]
		metrics[idx].PickNow = composite.PickNow(composite.PickNowInputs{
			Value:       normValues[i],
			Cliff:       normCliffs[i],
			MarketGap:   normGaps[i],
			Consistency: consistencySignal(c),
			RiskPenalty: riskPenalty(c.Risk),
		}, weights)
	}
}

// consistencySignal scores last-season steadiness as average-to-peak ratio
// on the 0-100 scale; candidates without history score neutral.
func consistencySignal(c model.Candidate) float64 {
	if c.PeakScore <= 0 || c.AvgScore <= 0 {
		return composite.NeutralNormalized
	}
	ratio := c.AvgScore / c.PeakScore * 100
	if ratio > 100 {
		ratio = 100
	}
	return ratio
}

// riskPenalty maps the qualitative risk tag onto the 0-100 penalty scale.
func riskPenalty(risk string) float64 {
	switch strings.ToLower(strings.TrimSpace(risk)) {
	case "high":
		return riskPenaltyHigh
	case "medium", "med":
		return riskPenaltyMedium
	case "low":
		return riskPenaltyLow
	default:
		return 0
	}
}

// sortBoard orders available candidates first by composite score, then
// drafted candidates by pick order. Ties resolve deterministically.
func sortBoard(metrics []CandidateMetrics) {
	sort.SliceStable(metrics, func(i, j int) bool {
		a, b := metrics[i], metrics[j]
		if a.Drafted != b.Drafted {
			return !a.Drafted
		}
		if a.Drafted {
			return a.OverallPick < b.OverallPick
		}
		if a.Composite != b.Composite {
			return a.Composite > b.Composite
		}
		if a.FinalValue != b.FinalValue {
			return a.FinalValue > b.FinalValue
		}
		return a.CandidateID < b.CandidateID
	})
}

func candidateIndex(snap model.Snapshot) map[string]model.Candidate {
	byID := make(map[string]model.Candidate, len(snap.Candidates))
	for _, c := range snap.Candidates {
		byID[c.ID] = c
	}
	return byID
}
