// Package mcp provides the Model Context Protocol server for gametracker.
//
// Every tool maps onto one operation of internal/service, so MCP clients
// see exactly the behavior the CLI has.
package mcp

import (
	"context"

	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/asteroid-belt/gametracker/internal/telemetry"
	"github.com/asteroid-belt/gametracker/pkg/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with gametracker tools.
type Server struct {
	svc       *service.Service
	server    *server.MCPServer
	telemetry telemetry.Client
}

// NewServer creates a new MCP server instance.
func NewServer(svc *service.Service, tc telemetry.Client) *Server {
	s := &Server{
		svc:       svc,
		telemetry: tc,
	}

	s.server = server.NewMCPServer(
		"gametracker",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	s.registerTools()
	s.registerResources()

	return s
}

// Serve runs the dropped-game sweeper and serves MCP over stdio until the
// client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.svc.StartSweeper(ctx)
	defer s.svc.StopSweeper()

	return server.ServeStdio(s.server)
}

// registerTools adds all gametracker tools to the MCP server.
func (s *Server) registerTools() {
	// Tags
	s.server.AddTool(getTagTool(), s.handleGetTag)
	s.server.AddTool(setTagTool(), s.handleSetTag)
	s.server.AddTool(removeTagTool(), s.handleRemoveTag)
	s.server.AddTool(resetTagTool(), s.handleResetTag)

	// Sync
	s.server.AddTool(syncGameTool(), s.handleSyncGame)
	s.server.AddTool(syncLibraryTool(), s.handleSyncLibrary)
	s.server.AddTool(getSyncProgressTool(), s.handleGetSyncProgress)
	s.server.AddTool(checkDroppedTool(), s.handleCheckDropped)
	s.server.AddTool(refreshCacheTool(), s.handleRefreshCache)

	// Browse
	s.server.AddTool(getGameDetailsTool(), s.handleGetGameDetails)
	s.server.AddTool(getStatisticsTool(), s.handleGetStatistics)
	s.server.AddTool(listTaggedTool(), s.handleListTagged)
	s.server.AddTool(listBacklogTool(), s.handleListBacklog)
	s.server.AddTool(listGamesTool(), s.handleListGames)

	// Settings
	s.server.AddTool(getSettingsTool(), s.handleGetSettings)
	s.server.AddTool(updateSettingsTool(), s.handleUpdateSettings)
}

// registerResources adds all gametracker resources to the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		mcp.NewResourceTemplate(
			resourcePrefix+"game/{appid}",
			"Game details",
			mcp.WithTemplateDescription("Stats, tag and cached completion time of a game"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleGameResource,
	)

	s.server.AddResource(
		mcp.NewResource(
			resourcePrefix+"statistics",
			"Tag statistics",
			mcp.WithResourceDescription("Number of games per tag"),
			mcp.WithMIMEType("application/json"),
		),
		s.handleStatisticsResource,
	)
}
