package rosterreport

import "time"

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds configuration for one report run
type Config struct {
	BaselinePath string // Baseline role file
	DataDir      string // Directory holding roles.json edits and roster.json
	Workers      int    // Analysis workers
	Format       string // text or json
	OutputFile   string // Optional JSON copy of the report
	Verbose      bool   // Log every player as it is scored
}

// Row is the report line for one player.
type Row struct {
	Player            string   `json:"player"`
	Scouted           bool     `json:"scouted"`
	BestInPossession  *Best    `json:"best_in_possession"`
	BestOutPossession *Best    `json:"best_out_possession"`
	Gegenpress        float64  `json:"gegenpress"`
	Speed             float64  `json:"speed"`
	DNA               float64  `json:"dna"`
}

// Best names a player's top role in one phase.
type Best struct {
	Role     string  `json:"role"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// Stats holds run statistics
type Stats struct {
	Players   int
	Scouted   int
	Roles     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
