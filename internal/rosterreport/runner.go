// Package rosterreport scores a whole roster offline and prints each
// player's strongest roles.
package rosterreport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	repository "github.com/okian/scout/internal/adapters/repository"
	service "github.com/okian/scout/internal/app"
	"github.com/okian/scout/internal/domain/attributes"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	reportPermission    = 0600
)

// ErrUnknownFormat is returned for a format other than text or json.
var ErrUnknownFormat = errors.New("unknown output format")

// Run loads the roles and roster, scores every scouted player and writes the
// report to w.
func Run(ctx context.Context, config *Config, w io.Writer) error {
	if config.Format == "" {
		config.Format = FormatText
	}
	if config.Format != FormatText && config.Format != FormatJSON {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, config.Format)
	}

	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("roster-report")
	log.Info(ctx, "starting roster report",
		logger.String("baseline", config.BaselinePath),
		logger.String("dataDir", config.DataDir),
		logger.Int("workers", config.Workers),
		logger.String("format", config.Format))

	svc, err := openService(ctx, config, log)
	if err != nil {
		return err
	}
	defer svc.Stop()

	rows, err := buildRows(ctx, svc, config.Verbose, log, stats)
	if err != nil {
		return err
	}

	if config.OutputFile != "" {
		if err := saveReport(config.OutputFile, rows); err != nil {
			log.Warn(ctx, "failed to save report to file", logger.Error(err))
		}
	}

	switch config.Format {
	case FormatJSON:
		err = writeJSON(w, rows)
	default:
		err = writeTable(w, rows)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "report completed",
		logger.Int("players", stats.Players),
		logger.Int("scouted", stats.Scouted),
		logger.Int("roles", stats.Roles),
		logger.Duration("duration", stats.Duration))
	return nil
}

func openService(ctx context.Context, config *Config, log logger.Logger) (*service.Service, error) {
	storeLog := repository.WithLogger(log)
	roleStore, err := repository.NewFileRoleStore(config.BaselinePath, config.DataDir, storeLog)
	if err != nil {
		return nil, fmt.Errorf("role store: %w", err)
	}
	players, err := repository.NewRosterStore(config.DataDir, storeLog)
	if err != nil {
		return nil, fmt.Errorf("roster store: %w", err)
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithRoleStore(roleStore),
		service.WithPlayerStore(players),
	}
	if config.Workers > 0 {
		opts = append(opts, service.WithWorkerCount(config.Workers))
	}
	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("start service: %w", err)
	}
	return svc, nil
}

// buildRows scores the scouted players in one batch. Players without a
// snapshot keep an empty row so the roster stays complete.
func buildRows(ctx context.Context, svc *service.Service, verbose bool, log logger.Logger, stats *Stats) ([]Row, error) {
	players, err := svc.Players(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	all, err := svc.Roles("")
	if err != nil {
		return nil, err
	}
	stats.Players = len(players)
	stats.Roles = len(all)

	scouted := make([]model.Player, 0, len(players))
	snapshots := make([]*attributes.Snapshot, 0, len(players))
	for _, p := range players {
		if p.Snapshot != nil {
			scouted = append(scouted, p)
			snapshots = append(snapshots, p.Snapshot)
		}
	}
	stats.Scouted = len(scouted)

	analyses, err := svc.AnalyzeBatch(ctx, snapshots)
	if err != nil {
		return nil, fmt.Errorf("analyze roster: %w", err)
	}
	byKey := make(map[string]scoring.Analysis, len(scouted))
	for i, p := range scouted {
		byKey[model.Key(p.Name)] = analyses[i]
	}

	rows := make([]Row, 0, len(players))
	for _, p := range players {
		a, ok := byKey[model.Key(p.Name)]
		if !ok {
			rows = append(rows, Row{Player: p.Name})
			continue
		}
		row := Row{
			Player:            p.Name,
			Scouted:           true,
			BestInPossession:  bestOf(a.BestInPossession()),
			BestOutPossession: bestOf(a.BestOutPossession()),
			Gegenpress:        a.Gegenpress,
			Speed:             a.Speed,
			DNA:               a.DNA,
		}
		if verbose {
			log.Debug(ctx, "player scored", logger.String("player", p.Name), logger.Float64("gegenpress", a.Gegenpress))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func bestOf(r *scoring.FitResult) *Best {
	if r == nil {
		return nil
	}
	return &Best{Role: r.RoleName, Category: r.Category, Score: r.Score}
}

func writeJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tIN POSSESSION\tOUT OF POSSESSION\tGEGENPRESS")
	for _, r := range rows {
		if !r.Scouted {
			fmt.Fprintf(tw, "%s\t-\t-\t-\n", r.Player)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\n", r.Player, cell(r.BestInPossession), cell(r.BestOutPossession), r.Gegenpress)
	}
	return tw.Flush()
}

func cell(b *Best) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%s) %.1f", b.Role, b.Category, b.Score)
}

func saveReport(filename string, rows []Row) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	raw, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	return os.WriteFile(filename, raw, reportPermission)
}
