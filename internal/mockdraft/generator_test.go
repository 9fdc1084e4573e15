package mockdraft

import (
	"testing"

	"github.com/okian/sherrin/internal/draft/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGeneratePool(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		cfg := &Config{Candidates: 200, Seed: 42}
		pool := generatePool(cfg)

		Convey("Then the pool has the requested size with unique IDs", func() {
			So(pool, ShouldHaveLength, 200)
			seen := make(map[string]bool, len(pool))
			for _, c := range pool {
				So(seen[c.ID], ShouldBeFalse)
				seen[c.ID] = true
			}
		})

		Convey("Then every candidate is draftable", func() {
			for _, c := range pool {
				So(len(c.Positions), ShouldBeGreaterThan, 0)
				So(c.Projected, ShouldBeGreaterThan, 0)
				So(c.ByeRound, ShouldBeBetweenOrEqual, 12, 15)
				So(c.MarketRank, ShouldBeBetweenOrEqual, 1, 200)
			}
		})

		Convey("Then market rank loosely follows projection", func() {
			var topRankProjection, bottomRankProjection float64
			for _, c := range pool {
				if c.MarketRank <= 10 {
					topRankProjection += c.Projected
				}
				if c.MarketRank > 190 {
					bottomRankProjection += c.Projected
				}
			}
			So(topRankProjection, ShouldBeGreaterThan, bottomRankProjection)
		})

		Convey("Then every position appears in the mix", func() {
			counts := make(map[model.Position]int)
			for _, c := range pool {
				counts[c.Positions[0]]++
			}
			for _, p := range model.Positions() {
				So(counts[p], ShouldBeGreaterThan, 0)
			}
		})

		Convey("Then the same seed reproduces the pool", func() {
			again := generatePool(&Config{Candidates: 200, Seed: 42})
			So(again[0], ShouldResemble, pool[0])
			So(again[199], ShouldResemble, pool[199])
		})
	})
}
