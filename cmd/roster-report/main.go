package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/scout/internal/rosterreport"
)

// Default configuration constants.
const (
	defaultBaseline = "data/roles.json"
	defaultDataDir  = "data/local"
	defaultTimeout  = 5 * time.Minute
)

func main() {
	var (
		baseline   = flag.String("baseline", defaultBaseline, "Baseline role file")
		dataDir    = flag.String("data", defaultDataDir, "Directory holding local role edits and the roster")
		workers    = flag.Int("workers", runtime.NumCPU(), "Number of analysis workers")
		format     = flag.String("format", rosterreport.FormatText, "Output format: text or json")
		outputFile = flag.String("output", "", "Also write the JSON report to this file")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		rosterreport.ShowHelp(os.Stdout)
		return
	}

	if err := rosterreport.SetupLogging(os.Stderr, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	config := &rosterreport.Config{
		BaselinePath: *baseline,
		DataDir:      *dataDir,
		Workers:      *workers,
		Format:       *format,
		OutputFile:   *outputFile,
		Verbose:      *verbose,
	}

	if err := rosterreport.Run(ctx, config, os.Stdout); err != nil {
		os.Stderr.WriteString("Report failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
