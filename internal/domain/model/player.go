// Package model contains domain models passed between layers.
package model

import (
	"strings"

	"github.com/okian/scout/internal/domain/attributes"
)

// Player is one roster entry. Name is the identity and compares
// case-insensitively.
type Player struct {
	Name         string               `json:"id"`
	DateOfBirth  string               `json:"date_of_birth,omitempty"`
	HeightFeet   int                  `json:"height_feet,omitempty"`
	HeightInches int                  `json:"height_inches,omitempty"`
	TagIDs       []string             `json:"tag_ids,omitempty"`
	PositionID   string               `json:"position_id,omitempty"`
	Snapshot     *attributes.Snapshot `json:"snapshot,omitempty"`
}

// Key returns the lookup key for name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Is reports whether p is the player called name.
func (p Player) Is(name string) bool {
	return Key(p.Name) == Key(name)
}

// HeightCM converts the imperial height to centimetres, 0 when unknown.
func (p Player) HeightCM() int {
	inches := p.HeightFeet*12 + p.HeightInches
	if inches <= 0 {
		return 0
	}
	return int(float64(inches)*2.54 + 0.5)
}
