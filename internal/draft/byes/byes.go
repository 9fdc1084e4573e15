// Package byes scores candidates by bye-round balance for an owning team.
package byes

import (
	"math"

	"github.com/okian/sherrin/internal/draft/model"
)

// NeutralScore is returned when the owning team has no candidates yet.
const NeutralScore = 50

// Value scores a bye round in [0,100] against a team's current bye
// distribution. Rounds the team is least exposed to score highest; the
// team's most crowded round scores 0. A missing bye round simply counts
// as its own (empty) bucket and lands on the high end.
func Value(byeRound int, teamCandidates []model.Candidate) int {
	if len(teamCandidates) == 0 {
		return NeutralScore
	}

	counts := make(map[int]int)
	for _, c := range teamCandidates {
		counts[c.ByeRound]++
	}

	maxCount := 1 // floor to avoid division by zero
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
	}
	thisCount := counts[byeRound]

	return int(math.Round(float64(maxCount-thisCount) / float64(maxCount) * 100))
}
