package roles_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/okian/scout/internal/domain/roles"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRoles() []roles.Definition {
	return []roles.Definition{
		{ID: "in-st-poacher", Name: "Poacher", Category: "Striker", Phase: "InPossession", Weights: map[string]float64{"Finishing": 3, "OffTheBall": 2}},
		{ID: "in-cb-bpd", Name: "Ball-Playing Defender", Category: "Center Back", Phase: "inpossession", Weights: map[string]float64{"Passing": 2}},
		{ID: "out-st-press", Name: "Pressing Forward", Category: "Striker", Phase: "OutPossession", Weights: map[string]float64{"WorkRate": 3}},
		{ID: "odd", Name: "Oddball", Category: "Wing", Phase: "SetPiece", Weights: map[string]float64{"Corners": 1}},
	}
}

func TestCatalog_ReplaceAndQuery(t *testing.T) {
	Convey("Given an empty catalog", t, func() {
		c := roles.NewCatalog()

		Convey("Then queries return empty sets", func() {
			So(c.Query(roles.PhaseInPossession), ShouldBeEmpty)
			So(c.All(), ShouldBeEmpty)
			So(c.Len(), ShouldEqual, 0)
			So(c.Version(), ShouldEqual, 0)
		})

		Convey("When the zero value is used directly", func() {
			var zero roles.Catalog
			So(zero.Query("InPossession"), ShouldBeEmpty)
		})

		Convey("When roles are loaded", func() {
			So(c.Replace(sampleRoles()), ShouldBeNil)

			Convey("Then query returns only matching phases ignoring case", func() {
				in := c.Query(roles.PhaseInPossession)
				So(len(in), ShouldEqual, 2)
				So(in[0].ID, ShouldEqual, "in-st-poacher")
				So(in[1].ID, ShouldEqual, "in-cb-bpd")

				lower := c.Query("inpossession")
				So(len(lower), ShouldEqual, 2)

				out := c.Query("OUTPOSSESSION")
				So(len(out), ShouldEqual, 1)
				So(out[0].Name, ShouldEqual, "Pressing Forward")
			})

			Convey("And unknown phases match nothing", func() {
				So(c.Query("Transition"), ShouldBeEmpty)
				So(c.Query(""), ShouldBeEmpty)
			})

			Convey("And find looks up by id", func() {
				d, ok := c.Find("out-st-press")
				So(ok, ShouldBeTrue)
				So(d.Category, ShouldEqual, "Striker")
				_, ok = c.Find("missing")
				So(ok, ShouldBeFalse)
			})

			Convey("And the version advances on every replace", func() {
				So(c.Version(), ShouldEqual, 1)
				So(c.Replace(sampleRoles()[:1]), ShouldBeNil)
				So(c.Version(), ShouldEqual, 2)
				So(c.Len(), ShouldEqual, 1)
			})

			Convey("And replacing with an empty set clears every phase", func() {
				So(c.Replace([]roles.Definition{}), ShouldBeNil)
				So(c.Query(roles.PhaseInPossession), ShouldBeEmpty)
				So(c.Query(roles.PhaseOutPossession), ShouldBeEmpty)
				So(c.Query("SetPiece"), ShouldBeEmpty)
				So(c.Len(), ShouldEqual, 0)
			})
		})

		Convey("When replace is called with nil", func() {
			So(c.Replace(sampleRoles()), ShouldBeNil)
			err := c.Replace(nil)

			Convey("Then it fails with invalid argument and keeps the old set", func() {
				So(errors.Is(err, roles.ErrInvalidArgument), ShouldBeTrue)
				So(c.Len(), ShouldEqual, 4)
			})
		})
	})
}

func TestCatalog_Isolation(t *testing.T) {
	Convey("Given a catalog loaded from a caller-owned slice", t, func() {
		src := sampleRoles()
		c := roles.NewCatalog()
		So(c.Replace(src), ShouldBeNil)

		Convey("When the caller mutates its slice and maps afterwards", func() {
			src[0].Name = "Changed"
			src[0].Weights["Finishing"] = 99

			Convey("Then the catalog is unaffected", func() {
				d, _ := c.Find("in-st-poacher")
				So(d.Name, ShouldEqual, "Poacher")
				So(d.Weights["Finishing"], ShouldEqual, 3)
			})
		})

		Convey("When a reader mutates a queried role", func() {
			got := c.Query(roles.PhaseInPossession)
			got[0].Weights["Finishing"] = 0

			Convey("Then later readers still see the original weights", func() {
				again := c.Query(roles.PhaseInPossession)
				So(again[0].Weights["Finishing"], ShouldEqual, 3)
			})
		})

		Convey("And two catalogs never interfere", func() {
			other := roles.NewCatalog()
			So(other.Len(), ShouldEqual, 0)
			So(c.Len(), ShouldEqual, 4)
		})
	})
}

func TestCatalog_ConcurrentReplace(t *testing.T) {
	Convey("Given readers racing a writer", t, func() {
		c := roles.NewCatalog()
		full := sampleRoles()
		So(c.Replace(full), ShouldBeNil)

		var wg sync.WaitGroup
		inconsistent := make(chan int, 1000)
		for r := 0; r < 8; r++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 500; i++ {
					n := len(c.Query(roles.PhaseInPossession))
					// Each published set has either both in-possession roles or none.
					if n != 0 && n != 2 {
						inconsistent <- n
					}
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if i%2 == 0 {
					_ = c.Replace([]roles.Definition{})
				} else {
					_ = c.Replace(full)
				}
			}
		}()
		wg.Wait()
		close(inconsistent)

		Convey("Then no reader observes a partial set", func() {
			So(len(inconsistent), ShouldEqual, 0)
			So(c.Version(), ShouldEqual, 201)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given role definitions with authoring mistakes", t, func() {
		defs := []roles.Definition{
			{ID: "ok", Name: "Fine", Phase: "InPossession", Weights: map[string]float64{"Pace": 1}},
			{ID: "typo", Name: "Typo", Phase: "InPossession", Weights: map[string]float64{"Natual Fitness": 1}},
			{ID: "empty", Name: "Empty", Phase: "OutPossession"},
			{ID: "phase", Name: "Phase", Phase: "Both", Weights: map[string]float64{"Pace": -1}},
		}

		warnings := roles.Validate(defs)

		Convey("Then each problem is reported once", func() {
			byRole := map[string]int{}
			for _, w := range warnings {
				byRole[w.RoleID]++
			}
			So(byRole["ok"], ShouldEqual, 0)
			So(byRole["typo"], ShouldEqual, 1)
			So(byRole["empty"], ShouldEqual, 1)
			So(byRole["phase"], ShouldEqual, 2)
		})
	})
}
