package model_test

import (
	"testing"

	"github.com/okian/scout/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestPlayer(t *testing.T) {
	convey.Convey("Given a player", t, func() {
		p := model.Player{Name: "Kai Havertz", HeightFeet: 6, HeightInches: 4}

		convey.Convey("Then names match regardless of case and padding", func() {
			convey.So(p.Is("kai havertz"), convey.ShouldBeTrue)
			convey.So(p.Is("  KAI HAVERTZ "), convey.ShouldBeTrue)
			convey.So(p.Is("Kai"), convey.ShouldBeFalse)
			convey.So(model.Key(" Kai "), convey.ShouldEqual, "kai")
		})

		convey.Convey("Then the height converts to centimetres", func() {
			convey.So(p.HeightCM(), convey.ShouldEqual, 193)
		})

		convey.Convey("When the height is unknown", func() {
			p.HeightFeet, p.HeightInches = 0, 0
			convey.So(p.HeightCM(), convey.ShouldEqual, 0)
		})
	})
}

func TestSquadRecords(t *testing.T) {
	convey.Convey("Given a tactic", t, func() {
		tactic := model.Tactic{
			Name:                 "4-3-3 Attack",
			InPossessionRoleIDs:  []string{"in-1", "in-2"},
			OutPossessionRoleIDs: []string{"out-1"},
		}

		convey.Convey("Then role IDs are picked by phase", func() {
			convey.So(tactic.RoleIDs("InPossession"), convey.ShouldResemble, []string{"in-1", "in-2"})
			convey.So(tactic.RoleIDs("outpossession"), convey.ShouldResemble, []string{"out-1"})
			convey.So(tactic.RoleIDs("Transition"), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a tagged player", t, func() {
		p := model.Player{Name: "Kai", TagIDs: []string{"t1", "t2"}}

		convey.Convey("Then tag membership is by exact ID", func() {
			convey.So(p.HasTag("t2"), convey.ShouldBeTrue)
			convey.So(p.HasTag("T2"), convey.ShouldBeFalse)
		})
	})
}
