package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/scout/internal/adapters/http/api"
	"github.com/okian/scout/internal/adapters/http/swagger"
	"github.com/okian/scout/internal/adapters/mcpserver"
	repository "github.com/okian/scout/internal/adapters/repository"
	app "github.com/okian/scout/internal/app"
	"github.com/okian/scout/internal/config"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "scout exited", logger.Error(err))
		os.Exit(1)
	}
}

// run wires every component and blocks until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	svc := app.New(append(st.options(),
		app.WithLogger(log.Named("service")),
		app.WithWorkerCount(cfg.AnalysisWorkers),
	)...)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	if cfg.WatchRoles {
		// Baseline edits replace local edits, as a reset would.
		w := repository.NewRoleWatcher(cfg.BaselineRolesPath, svc.ReloadBaseline,
			repository.WithLogger(log.Named("watcher")))
		if err := w.Start(ctx); err != nil {
			log.Warn(ctx, "role file watch disabled", logger.Error(err))
		} else {
			defer func() { _ = w.Stop() }()
		}
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(cfg, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// stores bundles the persistence the service is wired with.
type stores struct {
	roles     repository.RoleStore
	players   repository.PlayerStore
	tags      repository.TagStore
	positions repository.PositionStore
	tactics   repository.TacticStore
	close     func()
}

// options returns the service options that attach every store.
func (s *stores) options() []app.Option {
	return []app.Option{
		app.WithRoleStore(s.roles),
		app.WithPlayerStore(s.players),
		app.WithTagStore(s.tags),
		app.WithPositionStore(s.positions),
		app.WithTacticStore(s.tactics),
	}
}

// openStores builds the configured role store and the file-backed squad
// stores. close releases any database handle.
func openStores(ctx context.Context, cfg *config.Config, log logger.Logger) (*stores, error) {
	storeLog := repository.WithLogger(log.Named("repository"))
	st := &stores{close: func() {}}
	var err error
	if st.players, err = repository.NewRosterStore(cfg.DataDir, storeLog, repository.WithMaxPlayers(cfg.MaxRosterSize)); err != nil {
		return nil, fmt.Errorf("roster store: %w", err)
	}
	if st.tags, err = repository.NewFileTagStore(cfg.DataDir, storeLog); err != nil {
		return nil, fmt.Errorf("tag store: %w", err)
	}
	if st.positions, err = repository.NewFilePositionStore(cfg.DataDir, storeLog); err != nil {
		return nil, fmt.Errorf("position store: %w", err)
	}
	if st.tactics, err = repository.NewFileTacticStore(cfg.DataDir, storeLog); err != nil {
		return nil, fmt.Errorf("tactic store: %w", err)
	}

	switch cfg.RoleStore {
	case config.RoleStorePostgres:
		db, err := repository.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := repository.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info(ctx, "using postgres role store")
		st.roles = repository.NewPGRoleStore(db, cfg.BaselineRolesPath, storeLog)
		st.close = closeDB(db)
	default:
		roleStore, err := repository.NewFileRoleStore(cfg.BaselineRolesPath, cfg.DataDir, storeLog)
		if err != nil {
			return nil, fmt.Errorf("role store: %w", err)
		}
		log.Info(ctx, "using file role store", logger.String("data_dir", cfg.DataDir))
		st.roles = roleStore
	}
	return st, nil
}

func closeDB(db *sql.DB) func() {
	return func() { _ = db.Close() }
}

// newMux registers the REST API and, when enabled, the MCP tools.
func newMux(cfg *config.Config, svc *app.Service, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	// Register business API routes with the service dependency.
	api.NewServer(svc, svc).Register(mux)
	swagger.Register(mux)

	if cfg.MCPEnabled {
		tools := mcpserver.New(svc, version, mcpserver.WithLogger(log.Named("mcp")))
		mux.Handle(cfg.MCPPath, tools.Handler())
	}
	return mux
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that updates service metrics.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats refreshes the roster and worker gauges as a side effect.
			_ = svc.GetStats()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
