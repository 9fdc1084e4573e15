package mockdraft

import (
	"fmt"
	"math/rand"

	"github.com/okian/sherrin/internal/draft/model"
)

// Projection bands per primary position, loosely shaped like a real
// season's scoring spread.
const (
	midBase = 95.0
	midSpan = 30.0
	rucBase = 90.0
	rucSpan = 25.0
	defBase = 80.0
	defSpan = 25.0
	fwdBase = 78.0
	fwdSpan = 27.0

	dualPositionShare = 0.15
)

var clubs = []string{
	"ADE", "BRL", "CAR", "COL", "ESS", "FRE", "GEE", "GCS", "GWS",
	"HAW", "MEL", "NTH", "PTA", "RIC", "STK", "SYD", "WBD", "WCE",
}

var byeRounds = []int{12, 13, 14, 15}

var riskTags = []string{"low", "low", "low", "medium", "medium", "high"}

// positionMix skews the pool toward the positions a real list carries:
// plenty of mids and flanks, few genuine rucks.
var positionMix = []model.Position{
	model.Midfield, model.Midfield, model.Midfield,
	model.Defender, model.Defender,
	model.Forward, model.Forward,
	model.Ruck,
}

// generatePool builds a synthetic candidate pool. The same seed always
// produces the same pool, which keeps reruns comparable.
func generatePool(cfg *Config) []model.Candidate {
	rng := rand.New(rand.NewSource(cfg.Seed))

	candidates := make([]model.Candidate, cfg.Candidates)
	for i := range candidates {
		primary := positionMix[rng.Intn(len(positionMix))]
		positions := []model.Position{primary}
		if rng.Float64() < dualPositionShare {
			if secondary := pairFor(primary, rng); secondary != "" {
				positions = append(positions, secondary)
			}
		}

		projected := projectionFor(primary, rng)
		candidates[i] = model.Candidate{
			ID:        fmt.Sprintf("mock_%04d", i+1),
			Name:      fmt.Sprintf("Player %04d", i+1),
			Club:      clubs[rng.Intn(len(clubs))],
			Positions: positions,
			Projected: projected,
			ByeRound:  byeRounds[rng.Intn(len(byeRounds))],
			AvgScore:  projected * (0.85 + rng.Float64()*0.1),
			PeakScore: projected * (1.1 + rng.Float64()*0.25),
			Risk:      riskTags[rng.Intn(len(riskTags))],
		}
	}

	// Market rank follows projection with a little market noise.
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	for i := range order {
		j := rng.Intn(len(order))
		order[i], order[j] = order[j], order[i]
	}
	rank := 1
	for _, idx := range sortedByProjection(candidates, order) {
		candidates[idx].MarketRank = rank
		rank++
	}
	return candidates
}

// pairFor returns a plausible second position, "" when the primary does
// not pair.
func pairFor(primary model.Position, rng *rand.Rand) model.Position {
	switch primary {
	case model.Midfield:
		if rng.Intn(2) == 0 {
			return model.Forward
		}
		return model.Defender
	case model.Forward:
		return model.Midfield
	case model.Defender:
		return model.Midfield
	case model.Ruck:
		return model.Forward
	}
	return ""
}

func projectionFor(p model.Position, rng *rand.Rand) float64 {
	switch p {
	case model.Midfield:
		return midBase + rng.Float64()*midSpan
	case model.Ruck:
		return rucBase + rng.Float64()*rucSpan
	case model.Defender:
		return defBase + rng.Float64()*defSpan
	default:
		return fwdBase + rng.Float64()*fwdSpan
	}
}

// sortedByProjection returns candidate indices ordered by projection desc,
// with the pre-shuffled order as the tie-break noise.
func sortedByProjection(candidates []model.Candidate, shuffled []int) []int {
	out := append([]int(nil), shuffled...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && candidates[out[j]].Projected > candidates[out[j-1]].Projected; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
