package dedupe_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/okian/sherrin/internal/draft/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh deduper", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("Then the first sighting records and the second reports seen", func() {
			So(d.SeenAndRecord(ctx, "evt-1"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "evt-1"), ShouldBeTrue)
			So(d.Size(), ShouldEqual, 1)
		})

		Convey("Then unrecording allows a retry", func() {
			So(d.SeenAndRecord(ctx, "evt-2"), ShouldBeFalse)
			d.Unrecord(ctx, "evt-2")
			So(d.SeenAndRecord(ctx, "evt-2"), ShouldBeFalse)
		})
	})

	Convey("Given a bounded deduper of size 3", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		Convey("When a fourth ID arrives", func() {
			for i := 1; i <= 4; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("evt-%d", i)), ShouldBeFalse)
			}

			Convey("Then the oldest entry was evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "evt-1"), ShouldBeFalse) // forgotten
				So(d.SeenAndRecord(ctx, "evt-4"), ShouldBeTrue)  // retained
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

		Convey("Then nothing is evicted", func() {
			for i := 0; i < 100; i++ {
				So(d.SeenAndRecord(ctx, fmt.Sprintf("evt-%d", i)), ShouldBeFalse)
			}
			So(d.Size(), ShouldEqual, 100)
		})
	})
}
