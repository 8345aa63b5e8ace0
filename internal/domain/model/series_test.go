package model_test

import (
	"testing"
	"time"

	"github.com/okian/swish/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestValidMadeShots(t *testing.T) {
	Convey("Given the selectable made-shot range", t, func() {
		Convey("Then the boundaries are inclusive", func() {
			So(model.ValidMadeShots(10), ShouldBeTrue)
			So(model.ValidMadeShots(40), ShouldBeTrue)
		})

		Convey("Then values outside the range are rejected", func() {
			So(model.ValidMadeShots(9), ShouldBeFalse)
			So(model.ValidMadeShots(41), ShouldBeFalse)
			So(model.ValidMadeShots(0), ShouldBeFalse)
			So(model.ValidMadeShots(-3), ShouldBeFalse)
		})
	})
}

func TestSeriesHasTimestamp(t *testing.T) {
	Convey("Given series records", t, func() {
		Convey("When the store has not assigned a timestamp", func() {
			s := model.Series{ID: "a", MadeShots: 20}
			So(s.HasTimestamp(), ShouldBeFalse)
		})

		Convey("When the store has assigned a timestamp", func() {
			s := model.Series{ID: "b", MadeShots: 20, Timestamp: time.Now()}
			So(s.HasTimestamp(), ShouldBeTrue)
		})
	})
}

func TestValidView(t *testing.T) {
	Convey("Given the three page views", t, func() {
		So(model.ValidView(model.ViewEntry), ShouldBeTrue)
		So(model.ValidView(model.ViewAggregation), ShouldBeTrue)
		So(model.ValidView(model.ViewHistory), ShouldBeTrue)
		So(model.ValidView(model.View("settings")), ShouldBeFalse)
		So(model.ValidView(model.View("")), ShouldBeFalse)
	})
}
