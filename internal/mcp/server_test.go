package mcp

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/asteroid-belt/gametracker/internal/db"
	"github.com/asteroid-belt/gametracker/internal/models"
	"github.com/asteroid-belt/gametracker/internal/service"
	"github.com/asteroid-belt/gametracker/internal/tagging"
	"github.com/asteroid-belt/gametracker/internal/telemetry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTelemetryClient is a mock telemetry client for testing.
type mockTelemetryClient struct {
	mu     sync.Mutex
	events []mockEvent
}

type mockEvent struct {
	name       string
	properties map[string]interface{}
}

func (m *mockTelemetryClient) Track(event string, properties map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, mockEvent{name: event, properties: properties})
}

func (m *mockTelemetryClient) Close()                {}
func (m *mockTelemetryClient) GetTrackingID() string { return "test-tracking-id" }

func (m *mockTelemetryClient) TrackAppStarted(mode string, gameCount int)                          {}
func (m *mockTelemetryClient) TrackCLICommandExecuted(commandName string, hasFlags bool, ms int64) {}
func (m *mockTelemetryClient) TrackCLIError(commandName, errorType string)                         {}
func (m *mockTelemetryClient) TrackCLIHelpViewed(commandName string, cliArgs []string)             {}
func (m *mockTelemetryClient) TrackLibrarySynced(total, synced, newTags, errors int, ms int64)     {}
func (m *mockTelemetryClient) TrackGameSynced(tagChanged, hidden bool)                             {}
func (m *mockTelemetryClient) TrackTagSet(tag string, manual bool) {
	m.Track(telemetry.EventTagSet, map[string]interface{}{"tag": tag, "is_manual": manual})
}
func (m *mockTelemetryClient) TrackTagRemoved()                             {}
func (m *mockTelemetryClient) TrackDroppedSweep(tagged int, scheduled bool) {}
func (m *mockTelemetryClient) TrackSettingsChanged(settingName string)      {}
func (m *mockTelemetryClient) TrackCompletionCacheCleared(entries int64)    {}

// MCP events
func (m *mockTelemetryClient) TrackMCPToolCalled(toolName string, durationMs int64, success bool) {
	m.Track(telemetry.EventMCPToolCalled, map[string]interface{}{"tool_name": toolName, "success": success})
}

func (m *mockTelemetryClient) getEvents() []mockEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := make([]mockEvent, len(m.events))
	copy(events, m.events)
	return events
}

func (m *mockTelemetryClient) hasEvent(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.name == name {
			return true
		}
	}
	return false
}

// Verify mockTelemetryClient satisfies the telemetry.Client interface
var _ telemetry.Client = (*mockTelemetryClient)(nil)

// fakeSearcher answers completion-time searches from a name→hours map.
type fakeSearcher map[string]float64

func (f fakeSearcher) Search(_ context.Context, name string) ([]models.SearchResult, error) {
	h, ok := f[name]
	if !ok {
		return nil, nil
	}
	return []models.SearchResult{{MatchedName: name, Similarity: 1, MainStory: &h}}, nil
}

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	database, err := db.New(db.Config{
		Path:        dbPath,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func setupTestServer(t *testing.T, tc telemetry.Client) (*Server, *db.DB) {
	t.Helper()
	database := setupTestDB(t)
	svc := service.New(database, service.Options{
		Searcher:  fakeSearcher{"Portal": 3},
		Telemetry: tc,
		Sweeper:   tagging.SweeperConfig{InitialDelay: time.Hour, Interval: time.Hour},
	})
	return NewServer(svc, tc), database
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t, nil)

	assert.NotNil(t, server)
	assert.NotNil(t, server.server)
	assert.NotNil(t, server.svc)
	assert.Nil(t, server.telemetry)
}

func TestNewServer_WithTelemetry(t *testing.T) {
	tc := &mockTelemetryClient{}
	server, _ := setupTestServer(t, tc)

	assert.Equal(t, tc, server.telemetry)
}

func TestToolDefinitions(t *testing.T) {
	tools := []mcp.Tool{
		getTagTool(), setTagTool(), removeTagTool(), resetTagTool(),
		syncGameTool(), syncLibraryTool(), getSyncProgressTool(), checkDroppedTool(),
		refreshCacheTool(), getGameDetailsTool(), getStatisticsTool(), listTaggedTool(),
		listBacklogTool(), listGamesTool(), getSettingsTool(), updateSettingsTool(),
	}

	seen := map[string]bool{}
	for _, tool := range tools {
		assert.Contains(t, tool.Name, "gametracker_")
		assert.NotEmpty(t, tool.Description, tool.Name)
		assert.False(t, seen[tool.Name], "duplicate tool %s", tool.Name)
		seen[tool.Name] = true
	}
	assert.Len(t, seen, 16)

	assert.Contains(t, setTagTool().InputSchema.Required, "appid")
	assert.Contains(t, setTagTool().InputSchema.Required, "tag")
	assert.Contains(t, updateSettingsTool().InputSchema.Required, "settings")
	assert.Contains(t, syncGameTool().InputSchema.Properties, "achievements")
}

func TestToolCallTelemetry(t *testing.T) {
	tc := &mockTelemetryClient{}
	server, _ := setupTestServer(t, tc)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"appid": "620", "tag": "completed"}
	_, err := server.handleSetTag(ctx, req)
	require.NoError(t, err)

	req.Params.Arguments = map[string]any{"appid": "620", "tag": "finished"}
	_, err = server.handleSetTag(ctx, req)
	require.NoError(t, err)

	assert.True(t, tc.hasEvent(telemetry.EventTagSet))

	var calls []mockEvent
	for _, e := range tc.getEvents() {
		if e.name == telemetry.EventMCPToolCalled {
			calls = append(calls, e)
		}
	}
	require.Len(t, calls, 2)
	assert.Equal(t, "gametracker_set_tag", calls[0].properties["tool_name"])
	assert.Equal(t, true, calls[0].properties["success"])
	assert.Equal(t, false, calls[1].properties["success"])
}

func TestHandlersWithoutTelemetry(t *testing.T) {
	server, _ := setupTestServer(t, nil)

	// Should not panic with a nil telemetry client
	result, err := server.handleGetStatistics(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, result.IsError)
}
