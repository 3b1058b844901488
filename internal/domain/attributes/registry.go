package attributes

import (
	"sort"
	"strings"
)

// accessor reads one attribute from a snapshot. Accessors never see a nil
// snapshot; they return zero when their group is absent.
type accessor func(s *Snapshot) int

type entry struct {
	name string
	get  accessor
}

func technical(f func(*Technical) int) accessor {
	return func(s *Snapshot) int {
		if s.Technical == nil {
			return 0
		}
		return f(s.Technical)
	}
}

func setPieces(f func(*SetPieces) int) accessor {
	return func(s *Snapshot) int {
		if s.SetPieces == nil {
			return 0
		}
		return f(s.SetPieces)
	}
}

func mental(f func(*Mental) int) accessor {
	return func(s *Snapshot) int {
		if s.Mental == nil {
			return 0
		}
		return f(s.Mental)
	}
}

func physical(f func(*Physical) int) accessor {
	return func(s *Snapshot) int {
		if s.Physical == nil {
			return 0
		}
		return f(s.Physical)
	}
}

func goalkeeping(f func(*Goalkeeping) int) accessor {
	return func(s *Snapshot) int {
		if s.Goalkeeping == nil {
			return 0
		}
		return f(s.Goalkeeping)
	}
}

// Goalkeeping FirstTouch and Passing share their names with Technical
// attributes, so they are registered with a Gk prefix.
var entries = []entry{
	// Technical
	{"Crossing", technical(func(t *Technical) int { return t.Crossing })},
	{"Dribbling", technical(func(t *Technical) int { return t.Dribbling })},
	{"Finishing", technical(func(t *Technical) int { return t.Finishing })},
	{"FirstTouch", technical(func(t *Technical) int { return t.FirstTouch })},
	{"Heading", technical(func(t *Technical) int { return t.Heading })},
	{"LongShots", technical(func(t *Technical) int { return t.LongShots })},
	{"Marking", technical(func(t *Technical) int { return t.Marking })},
	{"Passing", technical(func(t *Technical) int { return t.Passing })},
	{"Tackling", technical(func(t *Technical) int { return t.Tackling })},
	{"Technique", technical(func(t *Technical) int { return t.Technique })},

	// Set pieces
	{"Corners", setPieces(func(p *SetPieces) int { return p.Corners })},
	{"FreeKickTaking", setPieces(func(p *SetPieces) int { return p.FreeKickTaking })},
	{"LongThrows", setPieces(func(p *SetPieces) int { return p.LongThrows })},
	{"PenaltyTaking", setPieces(func(p *SetPieces) int { return p.PenaltyTaking })},

	// Mental
	{"Aggression", mental(func(m *Mental) int { return m.Aggression })},
	{"Anticipation", mental(func(m *Mental) int { return m.Anticipation })},
	{"Bravery", mental(func(m *Mental) int { return m.Bravery })},
	{"Composure", mental(func(m *Mental) int { return m.Composure })},
	{"Concentration", mental(func(m *Mental) int { return m.Concentration })},
	{"Decisions", mental(func(m *Mental) int { return m.Decisions })},
	{"Determination", mental(func(m *Mental) int { return m.Determination })},
	{"Flair", mental(func(m *Mental) int { return m.Flair })},
	{"Leadership", mental(func(m *Mental) int { return m.Leadership })},
	{"OffTheBall", mental(func(m *Mental) int { return m.OffTheBall })},
	{"Positioning", mental(func(m *Mental) int { return m.Positioning })},
	{"Teamwork", mental(func(m *Mental) int { return m.Teamwork })},
	{"Vision", mental(func(m *Mental) int { return m.Vision })},
	{"WorkRate", mental(func(m *Mental) int { return m.WorkRate })},

	// Physical
	{"Acceleration", physical(func(p *Physical) int { return p.Acceleration })},
	{"Agility", physical(func(p *Physical) int { return p.Agility })},
	{"Balance", physical(func(p *Physical) int { return p.Balance })},
	{"JumpingReach", physical(func(p *Physical) int { return p.JumpingReach })},
	{"NaturalFitness", physical(func(p *Physical) int { return p.NaturalFitness })},
	{"Pace", physical(func(p *Physical) int { return p.Pace })},
	{"Stamina", physical(func(p *Physical) int { return p.Stamina })},
	{"Strength", physical(func(p *Physical) int { return p.Strength })},

	// Goalkeeping
	{"AerialReach", goalkeeping(func(g *Goalkeeping) int { return g.AerialReach })},
	{"CommandOfArea", goalkeeping(func(g *Goalkeeping) int { return g.CommandOfArea })},
	{"Communication", goalkeeping(func(g *Goalkeeping) int { return g.Communication })},
	{"Eccentricity", goalkeeping(func(g *Goalkeeping) int { return g.Eccentricity })},
	{"GkFirstTouch", goalkeeping(func(g *Goalkeeping) int { return g.FirstTouch })},
	{"Handling", goalkeeping(func(g *Goalkeeping) int { return g.Handling })},
	{"Kicking", goalkeeping(func(g *Goalkeeping) int { return g.Kicking })},
	{"OneOnOnes", goalkeeping(func(g *Goalkeeping) int { return g.OneOnOnes })},
	{"GkPassing", goalkeeping(func(g *Goalkeeping) int { return g.Passing })},
	{"Punching", goalkeeping(func(g *Goalkeeping) int { return g.Punching })},
	{"Reflexes", goalkeeping(func(g *Goalkeeping) int { return g.Reflexes })},
	{"RushingOut", goalkeeping(func(g *Goalkeeping) int { return g.RushingOut })},
	{"Throwing", goalkeeping(func(g *Goalkeeping) int { return g.Throwing })},
}

// registry is keyed by lower-cased name; it is built once and never mutated.
var registry = func() map[string]accessor {
	m := make(map[string]accessor, len(entries))
	for _, e := range entries {
		m[strings.ToLower(e.name)] = e.get
	}
	return m
}()

var sortedNames = func() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	sort.Strings(names)
	return names
}()

// Resolve returns the value of the named attribute. Lookup is
// case-insensitive. Unknown names, a nil snapshot and absent groups all
// resolve to 0 so that hand-edited role weights cannot break analysis.
func Resolve(s *Snapshot, name string) int {
	if s == nil {
		return 0
	}
	get, ok := registry[strings.ToLower(name)]
	if !ok {
		return 0
	}
	return get(s)
}

// IsKnown reports whether name is a canonical attribute name (case-insensitive).
func IsKnown(name string) bool {
	_, ok := registry[strings.ToLower(name)]
	return ok
}

// Names returns the canonical attribute names in sorted order. The returned
// slice is a copy.
func Names() []string {
	out := make([]string, len(sortedNames))
	copy(out, sortedNames)
	return out
}
