// Package mcpserver exposes the planner as MCP (Model Context Protocol) tools
// so an operator assistant can query and steer the patrol over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/katalvlaran/patrol/astar"
	"github.com/katalvlaran/patrol/grid"
	"github.com/katalvlaran/patrol/internal/render"
	"github.com/katalvlaran/patrol/planner"
	"github.com/katalvlaran/patrol/selector"
	"github.com/katalvlaran/patrol/zone"
)

// Server wraps the MCP server with patrol tools.
type Server struct {
	mcp     *server.MCPServer
	planner *planner.Planner
	render  *render.Renderer
}

// New creates a new MCP server with all patrol tools registered.
func New(p *planner.Planner, version string) *Server {
	s := &Server{planner: p, render: render.New(false)}

	s.mcp = server.NewMCPServer(
		"Patrol",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("list_zones",
		mcp.WithDescription("List every inspection zone with its center, last inspection time, "+
			"average risk and whether it was ever visited."),
	), s.listZones)

	s.mcp.AddTool(mcp.NewTool("next_target",
		mcp.WithDescription("Choose the most urgent zone for a robot at the given cell and plan a route to it."),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Robot row")),
		mcp.WithNumber("col", mcp.Required(), mcp.Description("Robot column")),
	), s.nextTarget)

	s.mcp.AddTool(mcp.NewTool("record_inspection",
		mcp.WithDescription("Record a completed inspection. The risk score updates the zone's "+
			"moving average with weight 0.2."),
		mcp.WithString("zone", mcp.Required(), mcp.Description("Zone identifier, e.g. A3")),
		mcp.WithNumber("risk", mcp.Required(), mcp.Description("Observed risk score in [0,1]")),
	), s.recordInspection)

	s.mcp.AddTool(mcp.NewTool("find_path",
		mcp.WithDescription("Shortest 4-connected route between two free cells, drawn on the map."),
		mcp.WithNumber("start_row", mcp.Required(), mcp.Description("Start row")),
		mcp.WithNumber("start_col", mcp.Required(), mcp.Description("Start column")),
		mcp.WithNumber("goal_row", mcp.Required(), mcp.Description("Goal row")),
		mcp.WithNumber("goal_col", mcp.Required(), mcp.Description("Goal column")),
		mcp.WithNumber("step_budget", mcp.Description("Optional cap on expanded cells; 0 means unlimited")),
	), s.findPath)

	s.mcp.AddTool(mcp.NewTool("show_map",
		mcp.WithDescription("Render the current occupancy map with zone centers marked Z."),
	), s.showMap)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(out)), nil
}

func requireCell(req mcp.CallToolRequest, rowKey, colKey string) (grid.Cell, error) {
	row, err := req.RequireInt(rowKey)
	if err != nil {
		return grid.Cell{}, err
	}
	col, err := req.RequireInt(colKey)
	if err != nil {
		return grid.Cell{}, err
	}

	return grid.Cell{Row: row, Col: col}, nil
}

func (s *Server) listZones(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.planner.Registry().Snapshot())
}

func (s *Server) nextTarget(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pos, err := requireCell(req, "row", "col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	plan, err := s.planner.Next(ctx, pos)
	if err != nil {
		if errors.Is(err, selector.ErrNoZones) {
			return mcp.NewToolResultText("no zone is eligible for inspection"), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(plan)
}

func (s *Server) recordInspection(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("zone")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	risk, err := req.RequireFloat("risk")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := s.planner.Complete(zone.ID(id), risk)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(zone.Entry{ID: zone.ID(id), Record: rec})
}

func (s *Server) findPath(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := requireCell(req, "start_row", "start_col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	goal, err := requireCell(req, "goal_row", "goal_col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var opts []astar.Option
	if budget := req.GetInt("step_budget", 0); budget != 0 {
		opts = append(opts, astar.WithStepBudget(budget))
	}
	res, err := s.planner.Route(ctx, start, goal, opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch {
	case res.Found:
		return mcp.NewToolResultText(fmt.Sprintf("route of %d steps from %v to %v\n\n%s",
			res.Cost(), start, goal, s.render.Map(s.planner.Grid(), res.Path, nil))), nil
	case res.Exhausted:
		return mcp.NewToolResultText(fmt.Sprintf("no route found within the step budget (%d cells expanded)",
			res.Expanded)), nil
	default:
		return mcp.NewToolResultText(fmt.Sprintf("%v is unreachable from %v", goal, start)), nil
	}
}

func (s *Server) showMap(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g := s.planner.Grid()
	return mcp.NewToolResultText(fmt.Sprintf("%dx%d map\n\n%s\n\n%s",
		g.Rows(), g.Cols(),
		s.render.Map(g, nil, s.planner.Registry().Snapshot()),
		s.render.Legend())), nil
}
