package valuation_test

import (
	"testing"

	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/internal/draft/roster"
	"github.com/okian/sherrin/internal/draft/valuation"
	. "github.com/smartystreets/goconvey/convey"
)

func cand(id string, pos string, score float64) model.Candidate {
	return model.Candidate{
		ID:        id,
		Name:      id,
		Positions: model.ParsePositions(pos),
		Projected: score,
		ByeRound:  12,
	}
}

// smallConfig keeps rosterable slots tiny so cutoff ranks are easy to pin:
// 2 teams x (1 starter + 1 emergency) = 4 slots per position.
func smallConfig() roster.Config {
	cfg := roster.Default()
	cfg.Teams = 2
	for _, p := range model.Positions() {
		cfg.Starters[p] = 1
		cfg.Emergencies[p] = 1
	}
	return cfg
}

func TestReplacementLevels(t *testing.T) {
	Convey("Given a pool larger than the rosterable slot count", t, func() {
		cfg := smallConfig()
		pool := []model.Candidate{
			cand("a", "MID", 110),
			cand("b", "MID", 100),
			cand("c", "MID", 95),
			cand("d", "MID", 90),
			cand("e", "MID", 80),
			cand("f", "MID", 70),
		}

		Convey("Then the level is the score at the exact cutoff rank", func() {
			levels := valuation.ReplacementLevels(pool, cfg)
			// 4 slots -> 0-indexed rank 3 -> 90.
			So(levels[model.Midfield], ShouldEqual, 90)
		})
	})

	Convey("Given a pool smaller than the slot count", t, func() {
		cfg := smallConfig()
		pool := []model.Candidate{
			cand("a", "RUC", 105),
			cand("b", "RUC", 88),
		}

		Convey("Then the level degrades to the worst remaining candidate", func() {
			levels := valuation.ReplacementLevels(pool, cfg)
			So(levels[model.Ruck], ShouldEqual, 88)
		})
	})

	Convey("Given an exhausted position pool", t, func() {
		cfg := smallConfig()
		pool := []model.Candidate{cand("a", "MID", 100)}

		Convey("Then the level degrades to zero without error", func() {
			levels := valuation.ReplacementLevels(pool, cfg)
			So(levels[model.Forward], ShouldEqual, 0)
		})
	})

	Convey("Given multi-position candidates", t, func() {
		cfg := smallConfig()
		pool := []model.Candidate{
			cand("a", "MID/FWD", 100),
			cand("b", "FWD", 90),
			cand("c", "FWD", 85),
			cand("d", "FWD", 80),
			cand("e", "FWD", 75),
		}

		Convey("Then they count toward every eligible position's pool", func() {
			levels := valuation.ReplacementLevels(pool, cfg)
			// FWD pool sorted: 100, 90, 85, 80, 75 -> rank 3 -> 80.
			So(levels[model.Forward], ShouldEqual, 80)
			// MID pool has only one member -> worst remaining.
			So(levels[model.Midfield], ShouldEqual, 100)
		})
	})
}

func TestCompute(t *testing.T) {
	Convey("Given replacement levels and a flex bonus of 5", t, func() {
		cfg := smallConfig()
		cfg.FlexBonus = 5
		levels := valuation.Levels{
			model.Defender: 70,
			model.Midfield: 90,
			model.Ruck:     60,
			model.Forward:  75,
		}

		Convey("When valuing a single-position candidate", func() {
			res := valuation.Compute(cand("a", "MID", 100), levels, cfg)

			Convey("Then value is score minus level with no bonus", func() {
				So(res.FinalValue, ShouldEqual, 10)
				So(res.Bonus, ShouldEqual, 0)
				So(res.BestPosition, ShouldEqual, model.Midfield)
			})
		})

		Convey("When valuing a dual-position candidate whose later position is better", func() {
			// MID value = 10, FWD value = 25. A last-write-wins loop would
			// also land on FWD here, so pin the reverse ordering too.
			res := valuation.Compute(cand("a", "MID/FWD", 100), levels, cfg)

			Convey("Then the maximum across positions is kept, plus bonus", func() {
				So(res.PerPosition[model.Midfield], ShouldEqual, 10)
				So(res.PerPosition[model.Forward], ShouldEqual, 25)
				So(res.BestPosition, ShouldEqual, model.Forward)
				So(res.FinalValue, ShouldEqual, 30)
			})
		})

		Convey("When valuing a dual-position candidate whose earlier position is better", func() {
			// FWD listed first with value 25; MID second with value 10.
			// A loop that keeps the last-processed position would report 10.
			res := valuation.Compute(cand("a", "FWD/MID", 100), levels, cfg)

			Convey("Then the earlier maximum survives the fold", func() {
				So(res.BestPosition, ShouldEqual, model.Forward)
				So(res.FinalValue, ShouldEqual, 30)
			})
		})

		Convey("When valuing a triple-position candidate", func() {
			res := valuation.Compute(cand("a", "DEF/MID/FWD", 100), levels, cfg)

			Convey("Then every eligible position is evaluated", func() {
				So(len(res.PerPosition), ShouldEqual, 3)
				So(res.BestPosition, ShouldEqual, model.Defender) // 30 beats 10 and 25
				So(res.FinalValue, ShouldEqual, 35)
			})
		})

		Convey("When two positions tie for the maximum", func() {
			tied := valuation.Levels{
				model.Midfield: 80,
				model.Forward:  80,
			}
			res := valuation.Compute(cand("a", "MID/FWD", 100), tied, cfg)

			Convey("Then the earlier eligibility entry wins", func() {
				So(res.BestPosition, ShouldEqual, model.Midfield)
			})
		})

		Convey("When a candidate has no recognized eligibility", func() {
			res := valuation.Compute(model.Candidate{ID: "x", Projected: 90}, levels, cfg)

			Convey("Then the value degrades to zero without error", func() {
				So(res.FinalValue, ShouldEqual, 0)
				So(res.BestPosition, ShouldEqual, model.Position(""))
			})
		})
	})
}
