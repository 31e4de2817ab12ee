package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// resourcePrefix is the URI scheme for gametracker resources.
const resourcePrefix = "gametracker://"

// parseGameURI extracts the app id from a gametracker://game/{appid} URI.
func parseGameURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, resourcePrefix+"game/") {
		return "", fmt.Errorf("invalid URI scheme: %s", uri)
	}
	appID := strings.TrimPrefix(uri, resourcePrefix+"game/")
	if appID == "" || strings.Contains(appID, "/") {
		return "", fmt.Errorf("invalid game URI: %s", uri)
	}
	return appID, nil
}

// handleGameResource handles gametracker://game/{appid} resources.
func (s *Server) handleGameResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	appID, err := parseGameURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	resp := s.svc.GetGameDetails(ctx, service.GameRequest{AppID: appID})
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if resp.Stats == nil && resp.Tag == nil {
		return nil, fmt.Errorf("game not found: %s", appID)
	}
	return jsonResource(req.Params.URI, resp)
}

// handleStatisticsResource handles the gametracker://statistics resource.
func (s *Server) handleStatisticsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	resp := s.svc.GetTagStatistics(ctx)
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, resp.Stats)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %v", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
