// Package mcpserver exposes player analysis as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/okian/scout/internal/domain/attributes"
	"github.com/okian/scout/internal/domain/model"
	"github.com/okian/scout/internal/domain/roles"
	"github.com/okian/scout/internal/domain/scoring"
	"github.com/okian/scout/internal/domain/types"
	"github.com/okian/scout/pkg/logger"
	"github.com/okian/scout/pkg/metrics"
)

const serverName = "scout"

// ErrMissingArgument is reported when a required tool argument is empty.
var ErrMissingArgument = errors.New("missing argument")

// Dependencies are the service operations the tools call.
type Dependencies interface {
	Roles(phase string) ([]roles.Definition, error)
	Players(ctx context.Context) ([]model.Player, error)
	Player(ctx context.Context, name string) (model.Player, error)
	Analyze(s *attributes.Snapshot) scoring.Analysis
	PlayerReport(ctx context.Context, name, phase string) (types.Report, error)
	TacticReport(ctx context.Context, name, phase, tacticID string) (types.Report, error)
	Tactics(ctx context.Context) ([]model.Tactic, error)
	RoleRanking(ctx context.Context, roleID string) (types.Ranking, error)
}

// ToolInfo describes a registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlayerArgs selects a roster player.
type PlayerArgs struct {
	Player string `json:"player" jsonschema:"Roster player name (required, case-insensitive)"`
}

// PhaseArgs selects a possession phase.
type PhaseArgs struct {
	Phase string `json:"phase,omitempty" jsonschema:"InPossession or OutPossession (empty = all roles)"`
}

// PlayerReportArgs selects a player, a phase and optionally a tactic.
type PlayerReportArgs struct {
	Player string `json:"player" jsonschema:"Roster player name (required, case-insensitive)"`
	Phase  string `json:"phase,omitempty" jsonschema:"InPossession or OutPossession (default InPossession)"`
	Tactic string `json:"tactic,omitempty" jsonschema:"Tactic id from list_tactics; narrows the matrix to its roles"`
}

// RoleRankingArgs selects a role and how many players to return.
type RoleRankingArgs struct {
	RoleID string `json:"role_id" jsonschema:"Role id from list_roles (required)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum players to return (0 = all)"`
}

// ListPlayersArgs is the input schema for list_players (no parameters).
type ListPlayersArgs struct{}

// ListTacticsArgs is the input schema for list_tactics (no parameters).
type ListTacticsArgs struct{}

// PlayerSummary is the analyze_player result.
type PlayerSummary struct {
	Player            string             `json:"player"`
	BestInPossession  *scoring.FitResult `json:"best_in_possession"`
	BestOutPossession *scoring.FitResult `json:"best_out_possession"`
	Analysis          scoring.Analysis   `json:"analysis"`
}

// Server wraps an MCP server carrying the scout tools.
type Server struct {
	deps     Dependencies
	server   *mcp.Server
	registry []ToolInfo
	log      logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for tool failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// New builds the MCP server and registers every tool.
func New(deps Dependencies, version string, opts ...Option) *Server {
	s := &Server{
		deps:     deps,
		server:   mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil),
		registry: make([]ToolInfo, 0, 6),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	addTool(s, &mcp.Tool{
		Name:        "list_roles",
		Description: "Role definitions with their attribute weights, optionally filtered by phase",
	}, s.listRoles)
	addTool(s, &mcp.Tool{
		Name:        "list_players",
		Description: "Names of every roster player and whether they have an attribute snapshot",
	}, s.listPlayers)
	addTool(s, &mcp.Tool{
		Name:        "analyze_player",
		Description: "Composite metrics and every role fit for one roster player",
	}, s.analyzePlayer)
	addTool(s, &mcp.Tool{
		Name:        "player_report",
		Description: "Role fit matrix by position category with heatmap colours for one player and phase",
	}, s.playerReport)
	addTool(s, &mcp.Tool{
		Name:        "role_ranking",
		Description: "Roster players ranked by fit for one role",
	}, s.roleRanking)
	addTool(s, &mcp.Tool{
		Name:        "list_tactics",
		Description: "Saved tactics with the role ids they play in and out of possession",
	}, s.listTactics)
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcp.Server { return s.server }

// Tools lists the registered tools in registration order.
func (s *Server) Tools() []ToolInfo {
	out := make([]ToolInfo, len(s.registry))
	copy(out, s.registry)
	return out
}

// Handler serves the tools over streamable HTTP with plain JSON responses.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func addTool[T any](s *Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	s.registry = append(s.registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	name := tool.Name
	mcp.AddTool(s.server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args T) (*mcp.CallToolResult, any, error) {
		res, out, err := handler(ctx, req, args)
		if res != nil && res.IsError {
			metrics.RecordErrorByComponent("mcp_"+name, "tool_error")
		}
		return res, out, err
	})
}

func (s *Server) listRoles(_ context.Context, _ *mcp.CallToolRequest, args PhaseArgs) (*mcp.CallToolResult, any, error) {
	defs, err := s.deps.Roles(args.Phase)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(defs)
}

func (s *Server) listPlayers(ctx context.Context, _ *mcp.CallToolRequest, _ ListPlayersArgs) (*mcp.CallToolResult, any, error) {
	players, err := s.deps.Players(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	type entry struct {
		Player      string `json:"player"`
		HasSnapshot bool   `json:"has_snapshot"`
	}
	out := make([]entry, 0, len(players))
	for _, p := range players {
		out = append(out, entry{Player: p.Name, HasSnapshot: p.Snapshot != nil})
	}
	return toolJSON(out)
}

func (s *Server) analyzePlayer(ctx context.Context, _ *mcp.CallToolRequest, args PlayerArgs) (*mcp.CallToolResult, any, error) {
	name := strings.TrimSpace(args.Player)
	if name == "" {
		return toolError(fmt.Errorf("player: %w", ErrMissingArgument)), nil, nil
	}
	p, err := s.deps.Player(ctx, name)
	if err != nil {
		return toolError(err), nil, nil
	}
	a := s.deps.Analyze(p.Snapshot)
	return toolJSON(PlayerSummary{
		Player:            p.Name,
		BestInPossession:  a.BestInPossession(),
		BestOutPossession: a.BestOutPossession(),
		Analysis:          a,
	})
}

func (s *Server) playerReport(ctx context.Context, _ *mcp.CallToolRequest, args PlayerReportArgs) (*mcp.CallToolResult, any, error) {
	name := strings.TrimSpace(args.Player)
	if name == "" {
		return toolError(fmt.Errorf("player: %w", ErrMissingArgument)), nil, nil
	}
	var (
		report types.Report
		err    error
	)
	if tactic := strings.TrimSpace(args.Tactic); tactic != "" {
		report, err = s.deps.TacticReport(ctx, name, args.Phase, tactic)
	} else {
		report, err = s.deps.PlayerReport(ctx, name, args.Phase)
	}
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(report)
}

func (s *Server) roleRanking(ctx context.Context, _ *mcp.CallToolRequest, args RoleRankingArgs) (*mcp.CallToolResult, any, error) {
	roleID := strings.TrimSpace(args.RoleID)
	if roleID == "" {
		return toolError(fmt.Errorf("role_id: %w", ErrMissingArgument)), nil, nil
	}
	ranking, err := s.deps.RoleRanking(ctx, roleID)
	if err != nil {
		s.log.Debug(ctx, "role ranking failed", logger.String("role_id", roleID), logger.Error(err))
		return toolError(err), nil, nil
	}
	if args.Limit > 0 && len(ranking.Entries) > args.Limit {
		ranking.Entries = ranking.Entries[:args.Limit]
	}
	return toolJSON(ranking)
}

func (s *Server) listTactics(ctx context.Context, _ *mcp.CallToolRequest, _ ListTacticsArgs) (*mcp.CallToolResult, any, error) {
	tactics, err := s.deps.Tactics(ctx)
	if err != nil {
		return toolError(err), nil, nil
	}
	if tactics == nil {
		tactics = []model.Tactic{}
	}
	return toolJSON(tactics)
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
