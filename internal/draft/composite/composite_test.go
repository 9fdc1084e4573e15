package composite_test

import (
	"testing"

	"github.com/okian/sherrin/internal/draft/composite"
	"github.com/okian/sherrin/internal/draft/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBase(t *testing.T) {
	Convey("Given the default weight vector", t, func() {
		w := roster.Weights{Value: 0.7, Scarcity: 0.2, Bye: 0.1}

		Convey("Then the composite is a plain linear combination", func() {
			got := composite.Base(composite.Inputs{FinalValue: 30, ScarcityPct: 50, ByeValue: 80}, w)
			So(got, ShouldAlmostEqual, 30*0.7+50*0.2+80*0.1, 1e-9)
		})

		Convey("Then weights that do not sum to 1 are used as given", func() {
			heavy := roster.Weights{Value: 2, Scarcity: 1, Bye: 1}
			got := composite.Base(composite.Inputs{FinalValue: 10, ScarcityPct: 10, ByeValue: 10}, heavy)
			So(got, ShouldAlmostEqual, 40, 1e-9)
		})
	})
}

func TestPickNow(t *testing.T) {
	Convey("Given a phase weight vector", t, func() {
		w := roster.PhaseWeights{Value: 0.4, Cliff: 0.25, MarketGap: 0.2, Consistency: 0.1, Risk: 0.05}

		Convey("Then risk enters as a penalty", func() {
			safe := composite.PickNow(composite.PickNowInputs{Value: 80, Cliff: 60, MarketGap: 50, Consistency: 70, RiskPenalty: 0}, w)
			risky := composite.PickNow(composite.PickNowInputs{Value: 80, Cliff: 60, MarketGap: 50, Consistency: 70, RiskPenalty: 100}, w)
			So(risky, ShouldBeLessThan, safe)
			So(safe-risky, ShouldAlmostEqual, 5, 1e-9)
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given a pool with spread", t, func() {
		got := composite.Normalize([]float64{10, 20, 30})

		Convey("Then values map onto 0-100 min-max", func() {
			So(got[0], ShouldAlmostEqual, 0, 1e-9)
			So(got[1], ShouldAlmostEqual, 50, 1e-9)
			So(got[2], ShouldAlmostEqual, 100, 1e-9)
		})
	})

	Convey("Given a pool with zero variance", t, func() {
		got := composite.Normalize([]float64{42, 42, 42})

		Convey("Then every entry lands on the neutral midpoint", func() {
			for _, v := range got {
				So(v, ShouldAlmostEqual, composite.NeutralNormalized, 1e-9)
			}
		})
	})

	Convey("Given a single-candidate pool", t, func() {
		got := composite.Normalize([]float64{99})

		Convey("Then the lone entry is neutral rather than undefined", func() {
			So(got[0], ShouldAlmostEqual, composite.NeutralNormalized, 1e-9)
		})
	})

	Convey("Given an empty pool", t, func() {
		So(composite.Normalize(nil), ShouldBeEmpty)
	})
}
