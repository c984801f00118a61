package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/shoko-rocket/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":    "ab12",
		"level": "Where to go?",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api/sessions/ab12", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api/levels", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/levels", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "square is not empty"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/sessions/ab12/arrows", map[string]int{"x": 1}, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 409 response")
	}
	if err.Error() != "square is not empty" {
		t.Errorf("Expected API error message to pass through, got: %v", err)
	}
}

func toolRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected result with content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["level"] != "Where to go?" {
			t.Errorf("Expected level 'Where to go?', got %q", req["level"])
		}

		resp := service.SessionInfo{
			ID:       "ab12",
			Level:    "Where to go?",
			Author:   "Sega",
			RunState: "stopped",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	result, err := client.handleCreateSession(ctx, toolRequest("create_session", map[string]interface{}{
		"level": "Where to go?",
	}))
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}

	text := textContent(t, result)
	if !strings.Contains(text, "ab12") {
		t.Errorf("Expected session ID in result, got: %s", text)
	}
	if !strings.Contains(text, "Where to go?") {
		t.Errorf("Expected level name in result, got: %s", text)
	}
}

func TestClient_placeArrow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/ab12/arrows" {
			t.Errorf("Expected POST /api/sessions/ab12/arrows, got %s %s", r.Method, r.URL.Path)
		}

		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["direction"] != "up" {
			t.Errorf("Expected direction 'up', got %v", req["direction"])
		}

		resp := service.WorldSnapshot{
			Level:    "Where to go?",
			State:    "game",
			RunState: "stopped",
			Tiles:    []service.TileInfo{{X: 6, Y: 4, Type: "arrow-up"}},
			Stock:    map[string]uint8{"up": 2, "down": 3, "left": 3, "right": 3},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	result, err := client.handlePlaceArrow(ctx, toolRequest("place_arrow", map[string]interface{}{
		"session_id": "ab12",
		"x":          float64(6),
		"y":          float64(4),
		"direction":  "up",
	}))
	if err != nil {
		t.Fatalf("handlePlaceArrow failed: %v", err)
	}

	text := textContent(t, result)
	if !strings.Contains(text, "Placed up arrow at (6,4)") {
		t.Errorf("Expected placement confirmation, got: %s", text)
	}
	if !strings.Contains(text, "up=2") {
		t.Errorf("Expected stock count in result, got: %s", text)
	}
}

func TestClient_step(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/ab12/step" {
			t.Errorf("Expected POST /api/sessions/ab12/step, got %s %s", r.Method, r.URL.Path)
		}

		var req map[string]int
		json.NewDecoder(r.Body).Decode(&req)
		if req["ticks"] != 60 {
			t.Errorf("Expected 60 ticks by default, got %d", req["ticks"])
		}

		resp := service.StepResult{
			Ticks:    60,
			Outcome:  "no-change",
			Snapshot: &service.WorldSnapshot{Level: "Where to go?", RunState: "stopped"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	result, err := client.handleStep(ctx, toolRequest("step", map[string]interface{}{
		"session_id": "ab12",
	}))
	if err != nil {
		t.Fatalf("handleStep failed: %v", err)
	}

	text := textContent(t, result)
	if !strings.Contains(text, "Advanced 60 ticks") {
		t.Errorf("Expected tick count in result, got: %s", text)
	}
}

func TestClient_toolError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	result, err := client.handleGetState(ctx, toolRequest("get_state", map[string]interface{}{
		"session_id": "zzzz",
	}))
	if err != nil {
		t.Fatalf("Tool handlers return API errors as results, got: %v", err)
	}
	if !result.IsError {
		t.Error("Expected error result for unknown session")
	}
}

func TestFormatSnapshot(t *testing.T) {
	snapshot := &service.WorldSnapshot{
		Level:    "Where to go?",
		Author:   "Sega",
		State:    "game",
		RunState: "stopped",
		Mice: []service.WalkerInfo{
			{Type: "mouse", Direction: "right", GridX: 0, GridY: 0},
		},
		Cats: []service.WalkerInfo{
			{Type: "cat", Direction: "left", GridX: 6, GridY: 4},
		},
		Tiles: []service.TileInfo{
			{X: 11, Y: 0, Type: "rocket"},
			{X: 3, Y: 4, Type: "hole"},
			{X: 5, Y: 5, Type: "arrow-up"},
		},
		Stock: map[string]uint8{"up": 2, "down": 3, "left": 3, "right": 3},
	}

	result := formatSnapshot(snapshot)

	expectedFields := []string{
		"Level: Where to go? (by Sega)",
		"State: game, run state: stopped",
		"Mice: 1, cats: 1",
		"up=2 down=3 left=3 right=3",
	}
	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}

	lines := strings.Split(result, "\n")
	var gridLines []string
	for _, line := range lines {
		if len(line) == 14 && (line[1] == ' ') && line[0] >= '0' && line[0] <= '8' {
			gridLines = append(gridLines, line)
		}
	}
	if len(gridLines) != 9 {
		t.Fatalf("Expected 9 grid rows, got %d", len(gridLines))
	}
	if gridLines[0][2] != 'M' {
		t.Errorf("Expected mouse at top-left of grid, got %q", gridLines[0][2])
	}
	if gridLines[0][13] != 'R' {
		t.Errorf("Expected rocket at top-right of grid, got %q", gridLines[0][13])
	}
	if gridLines[4][8] != 'C' {
		t.Errorf("Expected cat at (6,4), got %q", gridLines[4][8])
	}
	if gridLines[4][5] != 'H' {
		t.Errorf("Expected hole at (3,4), got %q", gridLines[4][5])
	}
	if gridLines[5][7] != '^' {
		t.Errorf("Expected arrow at (5,5), got %q", gridLines[5][7])
	}
}

func TestFormatSnapshotNil(t *testing.T) {
	if formatSnapshot(nil) != "No state available" {
		t.Error("Expected placeholder text for nil snapshot")
	}
}
