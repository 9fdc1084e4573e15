// Package forecast projects snake-draft pick order and positional attrition.
package forecast

import (
	"math"

	"github.com/okian/sherrin/internal/draft/model"
)

// minHistory is the event count below which attrition assumes an even split.
const minHistory = 3

// Forecast summarizes the outlook until a team's next turn.
type Forecast struct {
	PicksUntilMyTurn   int                    `json:"picks_until_my_turn"`
	MyNextOverallPick  int                    `json:"my_next_overall_pick"`
	EstimatedLoss      map[model.Position]int `json:"estimated_loss"`
	ProjectedAvailable map[model.Position]int `json:"projected_available"`
}

// TeamAtPick resolves the snake order: in round R (1-indexed), the team at
// slot s picks s-th when R is odd and (teams+1-s)-th when R is even.
func TeamAtPick(pick, teams int) int {
	if pick <= 0 || teams <= 0 {
		return 0
	}
	round := (pick-1)/teams + 1
	slot := (pick-1)%teams + 1
	if round%2 == 1 {
		return slot
	}
	return teams + 1 - slot
}

// NextPickFor returns the first overall pick at or after currentPick that
// belongs to team. The search is bounded to 2 x teams picks ahead, which
// always contains the next occurrence of any team in a snake order.
func NextPickFor(team, currentPick, teams int) int {
	if team < 1 || team > teams || currentPick < 1 {
		return 0
	}
	for p := currentPick; p <= currentPick+2*teams; p++ {
		if TeamAtPick(p, teams) == team {
			return p
		}
	}
	return 0
}

// Project computes the picks until myTeam's next turn and the expected
// positional attrition by then. Attrition uses the primary-position share
// of up to the last 2 x teams events; with fewer than three events it
// assumes an even split across the four positions.
func Project(currentPick, myTeam, teams int, events []model.DraftEvent, byID map[string]model.Candidate, available map[model.Position]int) Forecast {
	next := NextPickFor(myTeam, currentPick, teams)
	until := 0
	if next > 0 {
		until = next - currentPick
	}

	f := Forecast{
		PicksUntilMyTurn:   until,
		MyNextOverallPick:  next,
		EstimatedLoss:      make(map[model.Position]int, len(model.Positions())),
		ProjectedAvailable: make(map[model.Position]int, len(model.Positions())),
	}

	window := events
	if limit := 2 * teams; len(window) > limit {
		window = window[len(window)-limit:]
	}

	if len(window) < minHistory {
		split := int(math.Round(float64(until) / float64(len(model.Positions()))))
		for _, p := range model.Positions() {
			f.EstimatedLoss[p] = split
		}
	} else {
		counts := make(map[model.Position]int)
		for _, e := range window {
			if c, ok := byID[e.CandidateID]; ok {
				if p := c.Primary(); p != "" {
					counts[p]++
				}
			}
		}
		for _, p := range model.Positions() {
			share := float64(counts[p]) / float64(len(window))
			f.EstimatedLoss[p] = int(math.Round(share * float64(until)))
		}
	}

	for _, p := range model.Positions() {
		remaining := available[p] - f.EstimatedLoss[p]
		if remaining < 0 {
			remaining = 0
		}
		f.ProjectedAvailable[p] = remaining
	}
	return f
}
