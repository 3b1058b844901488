package attributes_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/okian/scout/internal/domain/attributes"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given a goalkeeper snapshot with every attribute at 13", t, func() {
		s := attributes.Uniform(13, true)

		Convey("Then every registered name resolves to 13", func() {
			for _, name := range attributes.Names() {
				So(attributes.Resolve(s, name), ShouldEqual, 13)
			}
		})

		Convey("And lookup ignores case", func() {
			So(attributes.Resolve(s, "workrate"), ShouldEqual, 13)
			So(attributes.Resolve(s, "JUMPINGREACH"), ShouldEqual, 13)
			So(attributes.Resolve(s, "gkpassing"), ShouldEqual, 13)
		})

		Convey("And unknown names resolve to zero", func() {
			So(attributes.Resolve(s, "Throw-ins"), ShouldEqual, 0)
			So(attributes.Resolve(s, ""), ShouldEqual, 0)
			So(attributes.Resolve(s, " Pace"), ShouldEqual, 0)
		})
	})

	Convey("Given a snapshot with distinct values per field", t, func() {
		s := &attributes.Snapshot{
			Technical:   &attributes.Technical{Passing: 7, FirstTouch: 9},
			Mental:      &attributes.Mental{Vision: 18},
			Physical:    &attributes.Physical{NaturalFitness: 4},
			SetPieces:   &attributes.SetPieces{PenaltyTaking: 15},
			Goalkeeping: &attributes.Goalkeeping{Passing: 11, FirstTouch: 12, Reflexes: 19},
		}

		Convey("Then each name reads its own field", func() {
			So(attributes.Resolve(s, "Passing"), ShouldEqual, 7)
			So(attributes.Resolve(s, "FirstTouch"), ShouldEqual, 9)
			So(attributes.Resolve(s, "GkPassing"), ShouldEqual, 11)
			So(attributes.Resolve(s, "GkFirstTouch"), ShouldEqual, 12)
			So(attributes.Resolve(s, "Reflexes"), ShouldEqual, 19)
			So(attributes.Resolve(s, "Vision"), ShouldEqual, 18)
			So(attributes.Resolve(s, "NaturalFitness"), ShouldEqual, 4)
			So(attributes.Resolve(s, "PenaltyTaking"), ShouldEqual, 15)
		})
	})

	Convey("Given snapshots with absent groups", t, func() {
		Convey("When the snapshot is nil", func() {
			So(attributes.Resolve(nil, "Pace"), ShouldEqual, 0)
		})

		Convey("When only the mental group is present", func() {
			s := &attributes.Snapshot{Mental: &attributes.Mental{Bravery: 16}}
			So(attributes.Resolve(s, "Bravery"), ShouldEqual, 16)
			for _, name := range []string{"Pace", "Crossing", "Corners", "Reflexes", "GkPassing"} {
				So(attributes.Resolve(s, name), ShouldEqual, 0)
			}
		})

		Convey("When a field player is asked for goalkeeping attributes", func() {
			s := attributes.Uniform(20, false)
			So(s.IsGoalkeeper(), ShouldBeFalse)
			So(attributes.Resolve(s, "Handling"), ShouldEqual, 0)
		})
	})
}

func TestNames(t *testing.T) {
	Convey("Given the attribute registry", t, func() {
		names := attributes.Names()

		Convey("Then it covers all 49 attributes", func() {
			So(len(names), ShouldEqual, 49)
		})

		Convey("And names are sorted and unique ignoring case", func() {
			So(sort.StringsAreSorted(names), ShouldBeTrue)
			seen := map[string]bool{}
			for _, n := range names {
				key := strings.ToLower(n)
				So(seen[key], ShouldBeFalse)
				seen[key] = true
				So(attributes.IsKnown(n), ShouldBeTrue)
			}
		})

		Convey("And callers cannot mutate the registry through the result", func() {
			names[0] = "Mutated"
			So(attributes.Names()[0], ShouldNotEqual, "Mutated")
			So(attributes.IsKnown("Mutated"), ShouldBeFalse)
		})
	})
}
