// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and SCOUT_* environment variables on top.
// - Validation failures wrap ErrInvalidConfig; provider failures wrap ErrLoadConfig.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Role store backends.
const (
	RoleStoreFile     = "file"
	RoleStorePostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RoleStore selects where user-edited roles live: file or postgres.
	RoleStore string `koanf:"role_store"`

	// BaselineRolesPath points at the factory role definitions (JSON).
	BaselineRolesPath string `koanf:"baseline_roles_path"`

	// DataDir holds the local role copy and the roster.
	DataDir string `koanf:"data_dir"`

	// DatabaseURL is the Postgres DSN, required when RoleStore is postgres.
	DatabaseURL string `koanf:"database_url"`

	// WatchRoles reloads the catalog when the baseline file changes.
	WatchRoles bool `koanf:"watch_roles"`

	// AnalysisWorkers sets the number of batch analysis workers.
	AnalysisWorkers int `koanf:"analysis_workers"`

	// MaxRosterSize caps the number of stored players.
	MaxRosterSize int `koanf:"max_roster_size"`

	// MCPEnabled mounts the MCP tool server next to the REST API.
	MCPEnabled bool `koanf:"mcp_enabled"`

	// MCPPath is the mount point of the MCP handler.
	MCPPath string `koanf:"mcp_path"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		RoleStore:         RoleStoreFile,
		BaselineRolesPath: "data/roles.json",
		DataDir:           "data/local",
		AnalysisWorkers:   runtime.NumCPU(),
		MaxRosterSize:     500,
		MCPEnabled:        true,
		MCPPath:           "/mcp",
	}
}

// Validate checks field combinations Load cannot express through types.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	}
	switch strings.ToLower(c.RoleStore) {
	case RoleStoreFile:
		if c.DataDir == "" {
			return fmt.Errorf("data_dir must not be empty for file role store: %w", ErrInvalidConfig)
		}
	case RoleStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url must not be empty for postgres role store: %w", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown role_store %q: %w", c.RoleStore, ErrInvalidConfig)
	}
	if c.BaselineRolesPath == "" {
		return fmt.Errorf("baseline_roles_path must not be empty: %w", ErrInvalidConfig)
	}
	if c.AnalysisWorkers < 1 {
		return fmt.Errorf("analysis_workers must be positive: %w", ErrInvalidConfig)
	}
	if c.MaxRosterSize < 1 {
		return fmt.Errorf("max_roster_size must be positive: %w", ErrInvalidConfig)
	}
	if c.MCPEnabled && !strings.HasPrefix(c.MCPPath, "/") {
		return fmt.Errorf("mcp_path must start with '/': %w", ErrInvalidConfig)
	}
	return nil
}
