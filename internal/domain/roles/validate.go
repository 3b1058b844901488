package roles

import (
	"fmt"
	"strings"

	"github.com/okian/scout/internal/domain/attributes"
)

// Warning flags a role definition that loads fine but will likely score
// differently than its author intended.
type Warning struct {
	RoleID  string `json:"role_id"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Validate inspects defs and reports authoring problems. Warnings never
// prevent a set from being loaded: unknown attributes still count toward
// the maximum possible score and simply contribute nothing.
func Validate(defs []Definition) []Warning {
	var out []Warning
	warn := func(d Definition, format string, args ...any) {
		out = append(out, Warning{RoleID: d.ID, Role: d.Name, Message: fmt.Sprintf(format, args...)})
	}
	for _, d := range defs {
		if strings.TrimSpace(d.Name) == "" {
			warn(d, "role has no name")
		}
		if !d.MatchesPhase(PhaseInPossession) && !d.MatchesPhase(PhaseOutPossession) {
			warn(d, "unknown phase %q", d.Phase)
		}
		if len(d.Weights) == 0 {
			warn(d, "role has no weights and will always score 0")
		}
		for attr, w := range d.Weights {
			if !attributes.IsKnown(attr) {
				warn(d, "unknown attribute %q", attr)
			}
			if w <= 0 {
				warn(d, "non-positive weight %v for %q", w, attr)
			}
		}
	}
	return out
}
