package model

import (
	"strings"

	"github.com/okian/scout/internal/domain/roles"
)

// DefaultPositionColor is used for positions saved without a colour.
const DefaultPositionColor = "#0000FF"

// Tag labels roster players. Players reference tags by ID.
type Tag struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsRostered bool   `json:"is_rostered"`
	IsDefault  bool   `json:"is_default"`
	IsArchived bool   `json:"is_archived"`
}

// Position is a player's primary pitch position, shown with its code and colour.
type Position struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	ColorHex string `json:"color_hex"`
}

// Tactic picks the roles a formation uses in each phase.
type Tactic struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	InPossessionRoleIDs  []string `json:"in_possession_role_ids"`
	OutPossessionRoleIDs []string `json:"out_possession_role_ids"`
}

// RoleIDs returns the tactic's role IDs for phase (case-insensitive); unknown
// phases yield nil.
func (t Tactic) RoleIDs(phase string) []string {
	switch {
	case strings.EqualFold(phase, roles.PhaseInPossession):
		return t.InPossessionRoleIDs
	case strings.EqualFold(phase, roles.PhaseOutPossession):
		return t.OutPossessionRoleIDs
	default:
		return nil
	}
}

// HasTag reports whether p carries the tag with id.
func (p Player) HasTag(id string) bool {
	for _, t := range p.TagIDs {
		if t == id {
			return true
		}
	}
	return false
}
