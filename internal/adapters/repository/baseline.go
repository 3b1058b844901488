package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/okian/scout/internal/domain/roles"
)

// LoadBaseline reads the factory role set from a JSON file. A missing file
// wraps ErrBaselineMissing.
func LoadBaseline(path string) ([]roles.Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, ErrBaselineMissing)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var defs []roles.Definition
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if defs == nil {
		defs = []roles.Definition{}
	}
	return defs, nil
}

// withIDs returns a copy of defs where every empty ID is filled with a new
// UUID.
func withIDs(defs []roles.Definition) []roles.Definition {
	out := roles.Clone(defs)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}
