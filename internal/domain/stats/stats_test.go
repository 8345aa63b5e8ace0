package stats_test

import (
	"testing"
	"time"

	"github.com/okian/swish/internal/domain/model"
	"github.com/okian/swish/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompute(t *testing.T) {
	Convey("Given an empty record set", t, func() {
		agg := stats.Compute(nil)

		Convey("Then the aggregate is all zeros with a 0.00 percentage", func() {
			So(agg.SeriesCount, ShouldEqual, 0)
			So(agg.TotalMadeShots, ShouldEqual, 0)
			So(agg.TotalShots, ShouldEqual, 0)
			So(agg.Percentage, ShouldEqual, "0.00")
		})
	})

	Convey("Given three records with madeShots 20, 30 and 40", t, func() {
		records := []model.Series{
			{ID: "a", MadeShots: 20},
			{ID: "b", MadeShots: 30},
			{ID: "c", MadeShots: 40},
		}
		agg := stats.Compute(records)

		Convey("Then totals and percentage follow the fixed series size", func() {
			So(agg.SeriesCount, ShouldEqual, 3)
			So(agg.TotalMadeShots, ShouldEqual, 90)
			So(agg.TotalShots, ShouldEqual, 150)
			So(agg.Percentage, ShouldEqual, "60.00")
		})

		Convey("And the math is order-independent", func() {
			reversed := []model.Series{records[2], records[1], records[0]}
			So(stats.Compute(reversed), ShouldResemble, agg)
		})
	})

	Convey("Given a single perfect-range record", t, func() {
		agg := stats.Compute([]model.Series{{MadeShots: 33}})

		Convey("Then the percentage keeps two decimal places", func() {
			So(agg.Percentage, ShouldEqual, "66.00")
			So(agg.TotalShots, ShouldEqual, 50)
		})
	})
}

func TestSortChronological(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	Convey("Given records with mixed timestamps", t, func() {
		records := []model.Series{
			{ID: "late", MadeShots: 12, Timestamp: t0.Add(2 * time.Hour)},
			{ID: "pending", MadeShots: 15}, // no server timestamp yet
			{ID: "early", MadeShots: 18, Timestamp: t0},
		}

		sorted := stats.SortChronological(records)

		Convey("Then records without a timestamp sort first", func() {
			So(sorted[0].ID, ShouldEqual, "pending")
			So(sorted[1].ID, ShouldEqual, "early")
			So(sorted[2].ID, ShouldEqual, "late")
		})

		Convey("And the input slice is not modified", func() {
			So(records[0].ID, ShouldEqual, "late")
		})
	})

	Convey("Given several records without timestamps", t, func() {
		records := []model.Series{
			{ID: "a", MadeShots: 10},
			{ID: "b", MadeShots: 11},
		}

		Convey("Then their relative order is preserved", func() {
			sorted := stats.SortChronological(records)
			So(sorted[0].ID, ShouldEqual, "a")
			So(sorted[1].ID, ShouldEqual, "b")
		})
	})
}
