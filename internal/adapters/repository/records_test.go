package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/scout/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTagStore(t *testing.T) {
	Convey("Given an empty tag store", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		s, err := NewFileTagStore(dir)
		So(err, ShouldBeNil)

		Convey("Then listing returns an empty slice", func() {
			tags, err := s.List(ctx)
			So(err, ShouldBeNil)
			So(tags, ShouldNotBeNil)
			So(tags, ShouldBeEmpty)
		})

		Convey("Then blank names are rejected", func() {
			_, err := s.Save(ctx, model.Tag{Name: " "})
			So(errors.Is(err, ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("When a tag without an ID is saved", func() {
			saved, err := s.Save(ctx, model.Tag{Name: " First Team ", IsRostered: true})
			So(err, ShouldBeNil)

			Convey("Then it gets an ID and a trimmed name", func() {
				So(saved.ID, ShouldNotBeBlank)
				So(saved.Name, ShouldEqual, "First Team")
			})

			Convey("Then saving with the same ID replaces it", func() {
				saved.Name = "Reserves"
				_, err := s.Save(ctx, saved)
				So(err, ShouldBeNil)
				tags, _ := s.List(ctx)
				So(tags, ShouldHaveLength, 1)
				So(tags[0].Name, ShouldEqual, "Reserves")
				So(tags[0].IsRostered, ShouldBeTrue)
			})

			Convey("Then a second store on the same dir sees it", func() {
				other, err := NewFileTagStore(dir)
				So(err, ShouldBeNil)
				tags, err := other.List(ctx)
				So(err, ShouldBeNil)
				So(tags, ShouldHaveLength, 1)
				So(tags[0].ID, ShouldEqual, saved.ID)
			})

			Convey("Then deleting it twice reports not found", func() {
				So(s.Delete(ctx, saved.ID), ShouldBeNil)
				So(errors.Is(s.Delete(ctx, saved.ID), ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestPositionStore(t *testing.T) {
	Convey("Given an empty position store", t, func() {
		ctx := context.Background()
		s, err := NewFilePositionStore(t.TempDir())
		So(err, ShouldBeNil)

		Convey("Then unknown IDs are not found", func() {
			_, err := s.Get(ctx, "st")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("When a position is saved without a colour", func() {
			saved, err := s.Save(ctx, model.Position{ID: "st", Name: "Striker", Code: " ST "})
			So(err, ShouldBeNil)

			Convey("Then it takes the default colour", func() {
				So(saved.ColorHex, ShouldEqual, model.DefaultPositionColor)
				So(saved.Code, ShouldEqual, "ST")
			})

			Convey("Then it can be read back by ID", func() {
				got, err := s.Get(ctx, "st")
				So(err, ShouldBeNil)
				So(got, ShouldResemble, saved)
			})

			Convey("Then an explicit colour is kept on update", func() {
				_, err := s.Save(ctx, model.Position{ID: "st", Name: "Striker", ColorHex: "#FF0000"})
				So(err, ShouldBeNil)
				got, _ := s.Get(ctx, "st")
				So(got.ColorHex, ShouldEqual, "#FF0000")
			})
		})
	})
}

func TestTacticStore(t *testing.T) {
	Convey("Given an empty tactic store", t, func() {
		ctx := context.Background()
		s, err := NewFileTacticStore(t.TempDir())
		So(err, ShouldBeNil)

		Convey("Then blank names are rejected", func() {
			_, err := s.Save(ctx, model.Tactic{})
			So(errors.Is(err, ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("When a tactic without role lists is saved", func() {
			saved, err := s.Save(ctx, model.Tactic{Name: "High Press"})
			So(err, ShouldBeNil)

			Convey("Then both role lists are empty, not nil", func() {
				got, err := s.Get(ctx, saved.ID)
				So(err, ShouldBeNil)
				So(got.InPossessionRoleIDs, ShouldNotBeNil)
				So(got.InPossessionRoleIDs, ShouldBeEmpty)
				So(got.OutPossessionRoleIDs, ShouldNotBeNil)
			})
		})

		Convey("When tactics are saved and one is deleted", func() {
			a, _ := s.Save(ctx, model.Tactic{Name: "A", InPossessionRoleIDs: []string{"r1"}})
			b, _ := s.Save(ctx, model.Tactic{Name: "B"})
			So(s.Delete(ctx, a.ID), ShouldBeNil)

			Convey("Then only the other remains", func() {
				tactics, err := s.List(ctx)
				So(err, ShouldBeNil)
				So(tactics, ShouldHaveLength, 1)
				So(tactics[0].ID, ShouldEqual, b.ID)
			})
		})
	})
}
