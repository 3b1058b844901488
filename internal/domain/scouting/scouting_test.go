package scouting_test

import (
	"testing"

	"github.com/okian/scout/internal/domain/scouting"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRanks(t *testing.T) {
	Convey("Given the category table", t, func() {
		Convey("Then known categories rank by position on the pitch", func() {
			So(scouting.CategoryRank("Center Back"), ShouldEqual, 0)
			So(scouting.CategoryRank("Central Midfield"), ShouldEqual, 4)
			So(scouting.CategoryRank("Striker"), ShouldEqual, 8)
			So(scouting.CategoryRank("striker"), ShouldEqual, 8)
		})

		Convey("And unknown categories sort last", func() {
			So(scouting.CategoryRank("Goalkeeper"), ShouldEqual, scouting.UnknownCategoryRank)
			So(scouting.CategoryRank(""), ShouldEqual, scouting.UnknownCategoryRank)
		})
	})

	Convey("Given the personality table", t, func() {
		So(scouting.PersonalityRank("Model Citizen"), ShouldEqual, 1)
		So(scouting.PersonalityRank("fairly professional"), ShouldEqual, 10)
		So(scouting.PersonalityRank("Slack"), ShouldEqual, 70)
		So(scouting.PersonalityRank("  "), ShouldEqual, scouting.UnknownPersonalityRank)
		So(scouting.PersonalityRank("Mystery"), ShouldEqual, scouting.UnknownPersonalityRank)
		So(scouting.PersonalityRank("Resolute"), ShouldBeLessThan, scouting.PersonalityRank("Balanced"))
	})

	Convey("Given the playing time table", t, func() {
		So(scouting.PlayingTimeRank("Star Player"), ShouldEqual, 1)
		So(scouting.PlayingTimeRank("Surplus to Requirements"), ShouldEqual, 8)
		So(scouting.PlayingTimeRank(""), ShouldEqual, scouting.UnknownPlayingTimeRank)
		So(scouting.PlayingTimeRank("Captain"), ShouldEqual, scouting.UnknownPlayingTimeRank)
	})
}
