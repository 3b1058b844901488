package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/scout/internal/domain/attributes"
	"github.com/okian/scout/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRosterStore(t *testing.T) {
	Convey("Given an empty roster", t, func() {
		ctx := context.Background()
		s, err := NewRosterStore(t.TempDir(), WithMaxPlayers(2))
		So(err, ShouldBeNil)

		Convey("Then listing returns an empty slice", func() {
			players, err := s.List(ctx)
			So(err, ShouldBeNil)
			So(players, ShouldNotBeNil)
			So(players, ShouldBeEmpty)
		})

		Convey("Then unknown names are not found", func() {
			_, err := s.Get(ctx, "Nobody")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(errors.Is(s.Delete(ctx, "Nobody"), ErrNotFound), ShouldBeTrue)
		})

		Convey("Then blank names are rejected", func() {
			So(errors.Is(s.Upsert(ctx, model.Player{Name: "  "}), ErrInvalidPlayer), ShouldBeTrue)
		})

		Convey("When players are stored", func() {
			So(s.Upsert(ctx, model.Player{Name: "Ada Striker", Snapshot: attributes.Uniform(14, false)}), ShouldBeNil)
			So(s.Upsert(ctx, model.Player{Name: "Bo Keeper", Snapshot: attributes.Uniform(12, true)}), ShouldBeNil)

			Convey("Then lookups ignore case", func() {
				p, err := s.Get(ctx, "ada striker")
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Ada Striker")
				So(p.Snapshot.Technical.Finishing, ShouldEqual, 14)
				So(p.Snapshot.Goalkeeping, ShouldBeNil)
			})

			Convey("Then an upsert with the same name replaces the entry", func() {
				So(s.Upsert(ctx, model.Player{Name: "ADA STRIKER", PositionID: "ST"}), ShouldBeNil)
				players, _ := s.List(ctx)
				So(len(players), ShouldEqual, 2)
				So(players[0].PositionID, ShouldEqual, "ST")
			})

			Convey("Then the roster cap applies to new names only", func() {
				So(errors.Is(s.Upsert(ctx, model.Player{Name: "Cy"}), ErrRosterFull), ShouldBeTrue)
			})

			Convey("Then deleting removes exactly one player", func() {
				So(s.Delete(ctx, "BO KEEPER"), ShouldBeNil)
				players, _ := s.List(ctx)
				So(len(players), ShouldEqual, 1)
				So(players[0].Name, ShouldEqual, "Ada Striker")
			})
		})
	})
}
