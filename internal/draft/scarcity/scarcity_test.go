package scarcity_test

import (
	"testing"

	"github.com/okian/sherrin/internal/draft/model"
	"github.com/okian/sherrin/internal/draft/roster"
	"github.com/okian/sherrin/internal/draft/scarcity"
	. "github.com/smartystreets/goconvey/convey"
)

// pool builds n MID candidates with the first premium tagged drafted ones.
func pool(total, draftedCount, premiumAvailable int) []model.Candidate {
	out := make([]model.Candidate, 0, total)
	for i := 0; i < total; i++ {
		c := model.Candidate{
			ID:        string(rune('a' + i)),
			Positions: []model.Position{model.Midfield},
			Projected: 100,
			ByeRound:  12,
		}
		if i < draftedCount {
			c.Drafted = true
			c.Owner = 1
			c.OverallPick = i + 1
		} else if premiumAvailable > 0 {
			c.Category = model.CategoryPremium
			premiumAvailable--
		}
		out = append(out, c)
	}
	return out
}

// cfg yields 10 rosterable MID slots (2 teams x 5 starters).
func cfg() roster.Config {
	c := roster.Default()
	c.Teams = 2
	for _, p := range model.Positions() {
		c.Starters[p] = 5
		c.Emergencies[p] = 0
	}
	return c
}

func TestCompute(t *testing.T) {
	Convey("Given a 10-slot MID configuration", t, func() {
		cfg := cfg()

		Convey("When 4 of 10 slots are drafted with premium stock left", func() {
			s := scarcity.Compute(pool(20, 4, 5), cfg)[model.Midfield]

			Convey("Then scarcity is 40 and urgency medium", func() {
				So(s.ScarcityPct, ShouldEqual, 40)
				So(s.Urgency, ShouldEqual, scarcity.UrgencyMedium)
				So(s.AvailableCount, ShouldEqual, 16)
				So(s.PremiumRemaining, ShouldEqual, 5)
			})
		})

		Convey("When 6 of 10 slots are drafted", func() {
			s := scarcity.Compute(pool(20, 6, 5), cfg)[model.Midfield]

			Convey("Then urgency escalates to high", func() {
				So(s.ScarcityPct, ShouldEqual, 60)
				So(s.Urgency, ShouldEqual, scarcity.UrgencyHigh)
			})
		})

		Convey("When 8 of 10 slots are drafted", func() {
			s := scarcity.Compute(pool(20, 8, 5), cfg)[model.Midfield]

			Convey("Then urgency is critical", func() {
				So(s.ScarcityPct, ShouldEqual, 80)
				So(s.Urgency, ShouldEqual, scarcity.UrgencyCritical)
			})
		})

		Convey("When scarcity is low but no premium candidates remain", func() {
			s := scarcity.Compute(pool(20, 1, 0), cfg)[model.Midfield]

			Convey("Then urgency is critical regardless of percentage", func() {
				So(s.ScarcityPct, ShouldEqual, 10)
				So(s.Urgency, ShouldEqual, scarcity.UrgencyCritical)
			})
		})

		Convey("When scarcity is low and premium stock is down to 2", func() {
			s := scarcity.Compute(pool(20, 1, 2), cfg)[model.Midfield]

			Convey("Then urgency is high", func() {
				So(s.Urgency, ShouldEqual, scarcity.UrgencyHigh)
			})
		})

		Convey("When more eligible candidates are drafted than slots exist", func() {
			s := scarcity.Compute(pool(20, 15, 5), cfg)[model.Midfield]

			Convey("Then the percentage caps at 100", func() {
				So(s.ScarcityPct, ShouldEqual, 100)
			})
		})

		Convey("Then scarcity is monotonically non-decreasing as picks accrue", func() {
			prev := -1
			for drafted := 0; drafted <= 20; drafted++ {
				s := scarcity.Compute(pool(20, drafted, 5), cfg)[model.Midfield]
				So(s.ScarcityPct, ShouldBeGreaterThanOrEqualTo, prev)
				prev = s.ScarcityPct
			}
		})
	})
}
