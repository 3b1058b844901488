package rosterreport

import (
	"io"
	"os"

	"github.com/okian/scout/pkg/logger"
)

// SetupLogging initialises the shared logger, writing to w (stderr when nil)
// so the report itself can own stdout.
func SetupLogging(w io.Writer, verbose bool) error {
	if w == nil {
		w = os.Stderr
	}
	if err := logger.Init(logger.WithOutput(w)); err != nil {
		return err
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return logger.SetLevelString("warn")
}

// ShowHelp prints usage information for the roster report tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Scout Roster Report
===================

Scores every roster player against the role catalog offline and prints
each player's best in and out of possession role.

Usage:
  go run ./cmd/roster-report [options]

Options:
  -baseline string
        Baseline role file (default "data/roles.json")
  -data string
        Directory holding local role edits and the roster (default "data/local")
  -workers int
        Number of analysis workers (default CPU cores)
  -format string
        Output format: text or json (default "text")
  -output string
        Also write the JSON report to this file
  -verbose
        Enable debug logging on stderr
  -help
        Show this help message

Examples:
  # Report on the default roster
  go run ./cmd/roster-report

  # JSON report for another squad
  go run ./cmd/roster-report -data ./squads/u21 -format json
`)
}
