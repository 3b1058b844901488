// Package roles defines role weight profiles and the hot-swappable catalog
// that scoring reads them from.
package roles

import (
	"strings"
)

// Possession phases a role can belong to.
const (
	PhaseInPossession  = "InPossession"
	PhaseOutPossession = "OutPossession"
)

// Definition is a user-editable role weight profile. JSON field names match
// the role files produced by the role editor.
type Definition struct {
	ID       string             `json:"Id"`
	Name     string             `json:"Name"`
	Category string             `json:"Category"`
	Phase    string             `json:"Phase"`
	Weights  map[string]float64 `json:"Weights"`
}

// MatchesPhase reports whether the role belongs to phase, ignoring case.
func (d Definition) MatchesPhase(phase string) bool {
	return strings.EqualFold(d.Phase, phase)
}

// clone returns a deep copy so catalog readers never share a weight map
// with the caller that supplied it.
func (d Definition) clone() Definition {
	out := d
	if d.Weights != nil {
		out.Weights = make(map[string]float64, len(d.Weights))
		for k, v := range d.Weights {
			out.Weights[k] = v
		}
	}
	return out
}

// Clone deep-copies a slice of definitions. A nil input yields nil.
func Clone(defs []Definition) []Definition {
	if defs == nil {
		return nil
	}
	out := make([]Definition, len(defs))
	for i, d := range defs {
		out[i] = d.clone()
	}
	return out
}
