package message_test

import (
	"fmt"
	"testing"

	"github.com/okian/swish/internal/domain/message"
	. "github.com/smartystreets/goconvey/convey"
)

func TestForMadeShots(t *testing.T) {
	Convey("Given the message tier table", t, func() {
		Convey("When the count is in the top tier (>= 35)", func() {
			So(message.ForMadeShots(35), ShouldEqual, "Impressive! You made 35 shots. Keep it up!")
			So(message.ForMadeShots(38), ShouldEqual, "Impressive! You made 38 shots. Keep it up!")
			So(message.ForMadeShots(40), ShouldEqual, "Impressive! You made 40 shots. Keep it up!")
		})

		Convey("When the count is in the second tier (25-34)", func() {
			So(message.ForMadeShots(25), ShouldEqual, "Well done! You made 25 shots. Almost perfect!")
			So(message.ForMadeShots(34), ShouldEqual, "Well done! You made 34 shots. Almost perfect!")
		})

		Convey("When the count is in the third tier (15-24)", func() {
			So(message.ForMadeShots(15), ShouldEqual, "Not bad, you made 15 shots. You'll improve with practice!")
			So(message.ForMadeShots(24), ShouldEqual, "Not bad, you made 24 shots. You'll improve with practice!")
		})

		Convey("When the count is below 15", func() {
			So(message.ForMadeShots(10), ShouldEqual, "You made 10 shots. Don't be discouraged, keep practicing!")
			So(message.ForMadeShots(14), ShouldEqual, "You made 14 shots. Don't be discouraged, keep practicing!")
		})

		Convey("Then every count in the selectable range lands in exactly one tier", func() {
			for n := 10; n <= 40; n++ {
				msg := message.ForMadeShots(n)
				So(msg, ShouldContainSubstring, fmt.Sprintf("%d shots", n))
			}
		})
	})
}
