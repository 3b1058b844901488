// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the MCP tools.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	workerpool "github.com/okian/scout/internal/adapters/mq/worker"
	repository "github.com/okian/scout/internal/adapters/repository"
	"github.com/okian/scout/internal/domain/attributes"
	"github.com/okian/scout/internal/domain/heatmap"
	"github.com/okian/scout/internal/domain/matrix"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/roles"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/internal/domain/scouting"
	"github.com/okian/scout/internal/domain/types"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

// Reload sources reported to metrics.
const (
	SourceStartup = "startup"
	SourceAPI     = "api"
	SourceWatcher = "watcher"
	SourceReset   = "reset"
	SourceSave    = "save"
)

// Service owns the role catalog and exposes analysis over the roster.
type Service struct {
	mu sync.RWMutex
	// roleMu serialises writes to the role store so the catalog always
	// mirrors the last completed write.
	roleMu sync.Mutex

	// Core components
	catalog   *roles.Catalog
	analyzer  *scoring.Analyzer
	roleStore repository.RoleStore
	players   repository.PlayerStore
	tags      repository.TagStore
	positions repository.PositionStore
	tactics   repository.TacticStore
	pool      *workerpool.Pool

	// Configuration
	workerCount int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of batch analysis workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRoleStore sets where role definitions are persisted.
func WithRoleStore(store repository.RoleStore) Option {
	return func(s *Service) {
		s.roleStore = store
	}
}

// WithPlayerStore sets the roster store.
func WithPlayerStore(store repository.PlayerStore) Option {
	return func(s *Service) {
		s.players = store
	}
}

// WithTagStore sets the tag store.
func WithTagStore(store repository.TagStore) Option {
	return func(s *Service) {
		s.tags = store
	}
}

// WithPositionStore sets the position store.
func WithPositionStore(store repository.PositionStore) Option {
	return func(s *Service) {
		s.positions = store
	}
}

// WithTacticStore sets the tactic store.
func WithTacticStore(store repository.TacticStore) Option {
	return func(s *Service) {
		s.tactics = store
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalog:     roles.NewCatalog(),
		workerCount: runtime.NumCPU(),
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.analyzer = scoring.NewAnalyzer(s.catalog, scoring.WithObserver(func(elapsed time.Duration, fits int) {
		metrics.RecordAnalysis(float64(elapsed.Microseconds())/1000, fits)
	}))
	return s
}

// Start loads the role set into the catalog and starts the batch workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.roleStore == nil || s.players == nil {
		return fmt.Errorf("start: role and player stores are required: %w", ErrNotConfigured)
	}

	s.logger.Info(ctx, "starting scout service...")

	if err := s.roleStore.Init(ctx); err != nil {
		metrics.RecordRoleStoreError("init")
		return fmt.Errorf("init role store: %w", err)
	}
	if err := s.reload(ctx, SourceStartup); err != nil {
		return err
	}

	s.pool = workerpool.NewPool(s.workerCount, s.analyzer, workerpool.WithLogger(s.logger))
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "scout service started",
		logger.Int("workers", s.workerCount),
		logger.Int("roles", s.catalog.Len()),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping scout service...")
	if s.pool != nil {
		if err := s.pool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
		}
	}
	s.started = false
	s.logger.Info(ctx, "scout service stopped")
}

func (s *Service) batchPool() (*workerpool.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.pool, nil
}

// Catalog exposes the live role catalog.
func (s *Service) Catalog() *roles.Catalog { return s.catalog }

// Analyze scores one snapshot against the current catalog.
func (s *Service) Analyze(snapshot *attributes.Snapshot) scoring.Analysis {
	return s.analyzer.Analyze(snapshot)
}

// AnalyzeBatch scores many snapshots on the worker pool, keeping input order.
func (s *Service) AnalyzeBatch(ctx context.Context, snapshots []*attributes.Snapshot) ([]scoring.Analysis, error) {
	pool, err := s.batchPool()
	if err != nil {
		return nil, err
	}
	return pool.Analyze(ctx, snapshots)
}

// NormalizePhase maps a phase name to its canonical spelling. An empty
// phase means in possession.
func NormalizePhase(phase string) (string, error) {
	switch p := strings.TrimSpace(phase); {
	case p == "", strings.EqualFold(p, roles.PhaseInPossession):
		return roles.PhaseInPossession, nil
	case strings.EqualFold(p, roles.PhaseOutPossession):
		return roles.PhaseOutPossession, nil
	default:
		return "", fmt.Errorf("phase %q: %w", phase, ErrInvalidArgument)
	}
}

// Roles returns the catalog roles for phase, or every role when phase is empty.
func (s *Service) Roles(phase string) ([]roles.Definition, error) {
	if strings.TrimSpace(phase) == "" {
		return s.catalog.All(), nil
	}
	p, err := NormalizePhase(phase)
	if err != nil {
		return nil, err
	}
	return s.catalog.Query(p), nil
}

// AttributeNames lists every attribute name roles may weight.
func (s *Service) AttributeNames() []string {
	return attributes.Names()
}

// SaveRoles persists defs as the new role set and swaps it into the catalog.
// Authoring problems are returned as warnings; they never block the save.
func (s *Service) SaveRoles(ctx context.Context, defs []roles.Definition) ([]roles.Warning, error) {
	if defs == nil {
		return nil, fmt.Errorf("save roles: nil set: %w", ErrInvalidArgument)
	}
	if err := s.requireRoleStore(); err != nil {
		return nil, err
	}

	s.roleMu.Lock()
	defer s.roleMu.Unlock()

	if err := s.roleStore.Save(ctx, defs); err != nil {
		metrics.RecordRoleStoreError("save")
		return nil, fmt.Errorf("save roles: %w", err)
	}
	if err := s.reloadLocked(ctx, SourceSave); err != nil {
		return nil, err
	}
	return roles.Validate(defs), nil
}

// ResetRoles restores the baseline role set, discarding local edits.
func (s *Service) ResetRoles(ctx context.Context) ([]roles.Definition, error) {
	return s.resetRoles(ctx, SourceReset)
}

// ReloadBaseline is ResetRoles for the baseline file watcher.
func (s *Service) ReloadBaseline(ctx context.Context) error {
	_, err := s.resetRoles(ctx, SourceWatcher)
	return err
}

func (s *Service) resetRoles(ctx context.Context, source string) ([]roles.Definition, error) {
	if err := s.requireRoleStore(); err != nil {
		return nil, err
	}

	s.roleMu.Lock()
	defer s.roleMu.Unlock()

	defs, err := s.roleStore.ResetToBaseline(ctx)
	if err != nil {
		metrics.RecordRoleStoreError("reset")
		return nil, fmt.Errorf("reset roles: %w", err)
	}
	if err := s.replace(ctx, defs, source); err != nil {
		return nil, err
	}
	return s.catalog.All(), nil
}

// ReloadRoles re-reads the role store into the catalog. source labels the
// trigger in metrics and logs.
func (s *Service) ReloadRoles(ctx context.Context, source string) error {
	if err := s.requireRoleStore(); err != nil {
		return err
	}
	s.roleMu.Lock()
	defer s.roleMu.Unlock()
	return s.reloadLocked(ctx, source)
}

// reload is used during Start, before any writer can race.
func (s *Service) reload(ctx context.Context, source string) error {
	s.roleMu.Lock()
	defer s.roleMu.Unlock()
	return s.reloadLocked(ctx, source)
}

func (s *Service) reloadLocked(ctx context.Context, source string) error {
	defs, err := s.roleStore.Load(ctx)
	if err != nil {
		metrics.RecordRoleStoreError("load")
		return fmt.Errorf("load roles: %w", err)
	}
	return s.replace(ctx, defs, source)
}

func (s *Service) replace(ctx context.Context, defs []roles.Definition, source string) error {
	if defs == nil {
		defs = []roles.Definition{}
	}
	if err := s.catalog.Replace(defs); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}
	metrics.RecordCatalogReplace(s.catalog.Len(), s.catalog.Version())
	metrics.RecordRoleReload(source)

	for _, w := range roles.Validate(defs) {
		s.logger.Warn(ctx, "role definition problem",
			logger.String("role", w.Role),
			logger.String("role_id", w.RoleID),
			logger.String("problem", w.Message),
		)
	}
	s.logger.Info(ctx, "role catalog replaced",
		logger.String("source", source),
		logger.Int("roles", s.catalog.Len()),
		logger.Uint64("version", s.catalog.Version()),
	)
	return nil
}

func (s *Service) requireRoleStore() error {
	if s.roleStore == nil {
		return fmt.Errorf("role store: %w", ErrNotConfigured)
	}
	return nil
}

func (s *Service) requirePlayers() error {
	if s.players == nil {
		return fmt.Errorf("player store: %w", ErrNotConfigured)
	}
	return nil
}

// translate maps repository sentinels onto service ones.
func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repository.ErrInvalidPlayer), errors.Is(err, repository.ErrRosterFull),
		errors.Is(err, repository.ErrInvalidRecord):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	default:
		return err
	}
}

// Players returns the roster.
func (s *Service) Players(ctx context.Context) ([]model.Player, error) {
	if err := s.requirePlayers(); err != nil {
		return nil, err
	}
	players, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	metrics.UpdateRosterSize(len(players))
	return players, nil
}

// Player returns one roster entry by name, ignoring case.
func (s *Service) Player(ctx context.Context, name string) (model.Player, error) {
	if err := s.requirePlayers(); err != nil {
		return model.Player{}, err
	}
	p, err := s.players.Get(ctx, name)
	if err != nil {
		return model.Player{}, translate(err)
	}
	return p, nil
}

// UpsertPlayer adds p or replaces the entry with the same name.
func (s *Service) UpsertPlayer(ctx context.Context, p model.Player) error {
	if err := s.requirePlayers(); err != nil {
		return err
	}
	if err := s.players.Upsert(ctx, p); err != nil {
		return translate(err)
	}
	return nil
}

// DeletePlayer removes a player by name, ignoring case.
func (s *Service) DeletePlayer(ctx context.Context, name string) error {
	if err := s.requirePlayers(); err != nil {
		return err
	}
	if err := s.players.Delete(ctx, name); err != nil {
		return translate(err)
	}
	return nil
}

// rosterScores analyses every player that has a snapshot and collects the
// fit scores of phase across the whole roster. A non-nil tactic narrows the
// scores to its roles.
func (s *Service) rosterScores(ctx context.Context, players []model.Player, phase string, tactic *model.Tactic) ([]float64, error) {
	snapshots := make([]*attributes.Snapshot, 0, len(players))
	for _, p := range players {
		if p.Snapshot != nil {
			snapshots = append(snapshots, p.Snapshot)
		}
	}
	analyses, err := s.AnalyzeBatch(ctx, snapshots)
	if err != nil {
		return nil, err
	}
	var scores []float64
	for i := range analyses {
		for _, f := range narrow(analyses[i].Fits(phase), phase, tactic) {
			scores = append(scores, f.Score)
		}
	}
	return scores, nil
}

func narrow(fits []scoring.FitResult, phase string, tactic *model.Tactic) []scoring.FitResult {
	if tactic == nil {
		return fits
	}
	return scoring.Only(fits, tactic.RoleIDs(phase))
}

// PlayerReport analyses one player and lays the phase's fits out as a
// category matrix coloured on a scale spanning the whole roster, so the
// same score has the same colour on every player's report.
func (s *Service) PlayerReport(ctx context.Context, name, phase string) (types.Report, error) {
	return s.report(ctx, name, phase, nil)
}

// TacticReport is PlayerReport narrowed to the roles tacticID picks for the
// phase. The colour scale is narrowed the same way. Role IDs no longer in
// the catalog are skipped.
func (s *Service) TacticReport(ctx context.Context, name, phase, tacticID string) (types.Report, error) {
	tactic, err := s.Tactic(ctx, tacticID)
	if err != nil {
		return types.Report{}, err
	}
	return s.report(ctx, name, phase, &tactic)
}

func (s *Service) report(ctx context.Context, name, phase string, tactic *model.Tactic) (types.Report, error) {
	p, err := NormalizePhase(phase)
	if err != nil {
		return types.Report{}, err
	}
	player, err := s.Player(ctx, name)
	if err != nil {
		return types.Report{}, err
	}
	roster, err := s.Players(ctx)
	if err != nil {
		return types.Report{}, err
	}
	scores, err := s.rosterScores(ctx, roster, p, tactic)
	if err != nil {
		return types.Report{}, fmt.Errorf("roster scale: %w", err)
	}
	scale := heatmap.FromScores(scores)

	analysis := s.analyzer.Analyze(player.Snapshot)
	m := matrix.Build(narrow(analysis.Fits(p), p, tactic), scouting.CategoryRank)
	report := types.Report{
		Player:          player,
		Phase:           p,
		Analysis:        analysis,
		Headers:         m.Headers,
		Rows:            types.Colorize(m, scale),
		Scale:           types.ScaleOf(scale),
		Tactic:          tactic,
		PersonalityRank: scouting.UnknownPersonalityRank,
		PlayingTimeRank: scouting.UnknownPlayingTimeRank,
	}
	if player.Snapshot != nil {
		report.PersonalityRank = scouting.PersonalityRank(player.Snapshot.Personality)
		report.PlayingTimeRank = scouting.PlayingTimeRank(player.Snapshot.PlayingTime)
	}
	if report.Tags, err = s.playerTags(ctx, player); err != nil {
		return types.Report{}, err
	}
	if report.Position, err = s.playerPosition(ctx, player); err != nil {
		return types.Report{}, err
	}
	return report, nil
}

// RoleRanking ranks every analysed roster player by fit for one role, best
// first. Ties keep name order.
func (s *Service) RoleRanking(ctx context.Context, roleID string) (types.Ranking, error) {
	def, ok := s.catalog.Find(roleID)
	if !ok {
		return types.Ranking{}, fmt.Errorf("role %q: %w", roleID, ErrNotFound)
	}
	roster, err := s.Players(ctx)
	if err != nil {
		return types.Ranking{}, err
	}

	entries := make([]types.RankingEntry, 0, len(roster))
	scores := make([]float64, 0, len(roster))
	for _, p := range roster {
		if p.Snapshot == nil {
			continue
		}
		score := scoring.RoleScore(p.Snapshot, def.Weights)
		entries = append(entries, types.RankingEntry{Player: p.Name, Score: score})
		scores = append(scores, score)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return model.Key(entries[i].Player) < model.Key(entries[j].Player)
	})

	scale := heatmap.FromScores(scores)
	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Color = scale.Color(entries[i].Score)
	}
	return types.Ranking{
		RoleID:   def.ID,
		RoleName: def.Name,
		Category: def.Category,
		Phase:    def.Phase,
		Entries:  entries,
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"workerCount":    s.workerCount,
		"roles":          s.catalog.Len(),
		"catalogVersion": s.catalog.Version(),
		"attributes":     len(attributes.Names()),
	}

	if s.started && s.players != nil {
		players, err := s.players.List(context.Background())
		if err == nil {
			stats["rosterSize"] = len(players)
			metrics.UpdateRosterSize(len(players))
		}
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
