// Package types contains the report shapes shared by the service and its transports.
package types

import (
	"github.com/okian/scout/internal/domain/heatmap"
	"github.com/okian/scout/internal/domain/matrix"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/scoring"
)

// Scale is the effective range a heatmap was drawn with.
type Scale struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ScaleOf reports the bounds of s.
func ScaleOf(s heatmap.Scale) Scale {
	return Scale{Min: s.Min(), Max: s.Max()}
}

// Cell is a coloured fit result inside a report matrix.
type Cell struct {
	scoring.FitResult
	Color heatmap.HSL `json:"color"`
	CSS   string      `json:"css"`
}

// Report is the role matrix of one player for one phase.
type Report struct {
	Player   model.Player     `json:"player"`
	Phase    string           `json:"phase"`
	Analysis scoring.Analysis `json:"analysis"`
	Headers  []string         `json:"headers"`
	Rows     [][]*Cell        `json:"rows"`
	Scale    Scale            `json:"scale"`

	// Squad annotations resolved from the player's IDs. Tactic is set when
	// the matrix is narrowed to one tactic's roles.
	Tags     []model.Tag     `json:"tags"`
	Position *model.Position `json:"position,omitempty"`
	Tactic   *model.Tactic   `json:"tactic,omitempty"`

	// Scouting ranks of the snapshot's personality and squad status; lower
	// is better.
	PersonalityRank int `json:"personality_rank"`
	PlayingTimeRank int `json:"playing_time_rank"`
}

// Colorize pairs every non-empty matrix cell with its colour on scale.
// Empty cells stay nil.
func Colorize(m matrix.Matrix, scale heatmap.Scale) [][]*Cell {
	rows := make([][]*Cell, len(m.Rows))
	for i, row := range m.Rows {
		out := make([]*Cell, len(row))
		for j, r := range row {
			if r == nil {
				continue
			}
			c := scale.Color(r.Score)
			out[j] = &Cell{FitResult: *r, Color: c, CSS: c.CSS()}
		}
		rows[i] = out
	}
	return rows
}

// RankingEntry is one player's position in a role ranking.
type RankingEntry struct {
	Rank   int         `json:"rank"`
	Player string      `json:"player"`
	Score  float64     `json:"score"`
	Color  heatmap.HSL `json:"color"`
}

// Ranking orders the roster by fit for one role.
type Ranking struct {
	RoleID   string         `json:"role_id"`
	RoleName string         `json:"role_name"`
	Category string         `json:"category"`
	Phase    string         `json:"phase"`
	Entries  []RankingEntry `json:"entries"`
}
