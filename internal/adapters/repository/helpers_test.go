package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/scout/internal/domain/roles"
)

func sampleRoles() []roles.Definition {
	return []roles.Definition{
		{
			ID: "inpossession-striker-advanced-forward", Name: "Advanced Forward", Category: "Striker",
			Phase: roles.PhaseInPossession, Weights: map[string]float64{"Finishing": 3, "Pace": 3, "Composure": 2},
		},
		{
			ID: "outpossession-striker-pressing-forward", Name: "Pressing Forward", Category: "Striker",
			Phase: roles.PhaseOutPossession, Weights: map[string]float64{"WorkRate": 3, "Stamina": 3},
		},
	}
}

func writeBaseline(t *testing.T, dir string, defs []roles.Definition) string {
	t.Helper()
	raw, err := json.Marshal(defs)
	if err != nil {
		t.Fatalf("marshal baseline: %v", err)
	}
	path := filepath.Join(dir, "roles.json")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write baseline: %v", err)
	}
	return path
}
