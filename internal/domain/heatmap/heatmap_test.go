package heatmap_test

import (
	"testing"

	"github.com/okian/scout/internal/domain/heatmap"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScale(t *testing.T) {
	Convey("Given a tightly bunched set of scores", t, func() {
		s := heatmap.FromScores([]float64{70, 69, 71})

		Convey("Then the range is widened downwards to the minimum spread", func() {
			So(s.Max(), ShouldEqual, 71)
			So(s.Min(), ShouldEqual, 56)
			So(s.Range(), ShouldEqual, heatmap.MinSpread)
		})

		Convey("And the extremes map to red and green", func() {
			So(s.Color(56).Hue, ShouldEqual, 0)
			So(s.Color(71).Hue, ShouldEqual, 120)
		})

		Convey("And 69 is not pushed to the red end", func() {
			So(s.Color(69).Hue, ShouldBeBetween, 70, 90)
		})
	})

	Convey("Given a wide range", t, func() {
		s := heatmap.NewScale(20, 80)

		Convey("Then bounds are kept", func() {
			So(s.Min(), ShouldEqual, 20)
			So(s.Max(), ShouldEqual, 80)
		})

		Convey("And the midpoint is eased towards red", func() {
			So(s.Color(50).Hue, ShouldEqual, 15)
		})

		Convey("And out of range scores are clamped", func() {
			So(s.Color(-10).Hue, ShouldEqual, 0)
			So(s.Color(200).Hue, ShouldEqual, 120)
		})

		Convey("And the hue rises with the score", func() {
			prev := -1.0
			for score := 20.0; score <= 80; score += 2.5 {
				h := s.Color(score).Hue
				So(h, ShouldBeGreaterThanOrEqualTo, prev)
				prev = h
			}
		})

		Convey("And saturation and lightness are fixed", func() {
			c := s.Color(42)
			So(c.Saturation, ShouldEqual, 70)
			So(c.Lightness, ShouldEqual, 35)
		})
	})

	Convey("Given no scores", t, func() {
		s := heatmap.FromScores(nil)

		Convey("Then the scale covers 0 to 100", func() {
			So(s.Min(), ShouldEqual, 0)
			So(s.Max(), ShouldEqual, 100)
		})
	})

	Convey("Given identical scores", t, func() {
		s := heatmap.FromScores([]float64{50, 50})

		Convey("Then the range never collapses", func() {
			So(s.Min(), ShouldEqual, 35)
			So(s.Color(50).Hue, ShouldEqual, 120)
		})
	})

	Convey("Given a colour", t, func() {
		c := heatmap.HSL{Hue: 118.6, Saturation: 70, Lightness: 35}

		Convey("Then it renders as CSS", func() {
			So(c.CSS(), ShouldEqual, "hsl(119, 70%, 35%)")
		})
	})
}
