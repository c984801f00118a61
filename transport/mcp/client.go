package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/shoko-rocket/game/engine"
	"github.com/wricardo/shoko-rocket/game/mapfile"
	"github.com/wricardo/shoko-rocket/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Shoko Rocket",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Shoko Rocket - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Guide every mouse (M) into a rocket (R) by placing direction arrows on
the 12x9 grid. Cats (C) eat mice and must be routed into holes (H) or
kept away. You lose if a mouse dies or a cat boards a rocket; you win
when all mice are rescued.

AVAILABLE TOOLS:
- list_levels: List available levels
- create_session: Start a game session on a level
- get_session: Get session details
- list_sessions: List all active sessions
- get_state: Get the current world (grid, walkers, arrows, stock)
- place_arrow: Place a direction arrow on an empty square
- remove_arrow: Pick an arrow back up
- set_run_state: Start, fast-forward, or pause the simulation
- step: Advance the simulation a fixed number of ticks
- reset: Restore the level to its initial state

Walkers move at fixed speeds: a mouse crosses a square in 60 ticks, a
cat in 90. Place your arrows while stopped, then step or run.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List all available levels",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListLevels)

	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session on the given level",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level": map[string]interface{}{
					"type":        "string",
					"description": "Name of the level to play",
				},
			},
			Required: []string{"level"},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_state",
		Description: "Get the current world state: grid, mice, cats, arrows, and remaining arrow stock",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_arrow",
		Description: "Place a direction arrow on an empty square. Mice and cats turn to follow arrows they step onto. Cats walking against an arrow wear it down.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column), 0 to 11",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row), 0 to 8",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction the arrow points",
				},
			},
			Required: []string{"session_id", "x", "y", "direction"},
		},
	}, c.handlePlaceArrow)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "remove_arrow",
		Description: "Pick an arrow back up, returning it to stock",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column), 0 to 11",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row), 0 to 8",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleRemoveArrow)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_run_state",
		Description: "Change the simulation run state: stopped, running (60 ticks/s real time), or running-fast (180 ticks/s)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"state": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"stopped", "running", "running-fast"},
					"description": "Run state to request",
				},
			},
			Required: []string{"session_id", "state"},
		},
	}, c.handleSetRunState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "step",
		Description: "Advance the simulation a fixed number of ticks (a mouse crosses one square in 60 ticks). Stops early when the game is won or lost.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"ticks": map[string]interface{}{
					"type":        "integer",
					"description": "Number of ticks to advance (default 60, max 3600)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleStep)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset",
		Description: "Reset the session's level to its initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count  int                `json:"count"`
		Levels []mapfile.LevelInfo `json:"levels"`
	}

	err := c.apiCall("GET", "/api/levels", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Available Levels (%d):\n\n", response.Count)
	for _, level := range response.Levels {
		origin := "custom"
		if level.Builtin {
			origin = "builtin"
		}
		result += fmt.Sprintf("- %s (by %s, %s)\n", level.Name, level.Author, origin)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	level, _ := args["level"].(string)

	var info service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", map[string]string{"level": level}, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nLevel: %s (by %s)\nRun state: %s\n",
		info.ID, info.Level, info.Author, info.RunState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Level: %s, Run state: %s, Created: %s)\n",
			s.ID, s.Level, s.RunState, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var info service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session: %s\nLevel: %s (by %s)\nState: %s\nRun state: %s\nCreated: %s\nLast accessed: %s\n",
		info.ID, info.Level, info.Author, info.State, info.RunState,
		info.CreatedAt.Format(time.RFC3339), info.LastAccessedAt.Format(time.RFC3339))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var snapshot service.WorldSnapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&snapshot)), nil
}

func (c *Client) handlePlaceArrow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)
	direction, _ := args["direction"].(string)

	body := map[string]interface{}{
		"x":         int(x),
		"y":         int(y),
		"direction": direction,
	}

	var snapshot service.WorldSnapshot
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/arrows", sessionID), body, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Placed %s arrow at (%d,%d)\n\n%s",
		direction, int(x), int(y), formatSnapshot(&snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRemoveArrow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)

	var snapshot service.WorldSnapshot
	err := c.apiCall("DELETE",
		fmt.Sprintf("/api/sessions/%s/arrows?x=%d&y=%d", sessionID, int(x), int(y)), nil, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Removed arrow at (%d,%d)\n\n%s", int(x), int(y), formatSnapshot(&snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSetRunState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	state, _ := args["state"].(string)

	var snapshot service.WorldSnapshot
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/run", sessionID),
		map[string]string{"state": state}, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Run state: %s\n\n%s", snapshot.RunState, formatSnapshot(&snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	ticks := 60
	if raw, ok := args["ticks"].(float64); ok {
		ticks = int(raw)
	}

	var stepResult service.StepResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/step", sessionID),
		map[string]int{"ticks": ticks}, &stepResult)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Advanced %d ticks, outcome: %s\n\n%s",
		stepResult.Ticks, stepResult.Outcome, formatSnapshot(stepResult.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message  string                 `json:"message"`
		Snapshot *service.WorldSnapshot `json:"snapshot"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatSnapshot(response.Snapshot))
	return mcp.NewToolResultText(result), nil
}

// formatSnapshot renders a world snapshot as a text grid plus a
// summary, readable in a tool result.
func formatSnapshot(snapshot *service.WorldSnapshot) string {
	if snapshot == nil {
		return "No state available"
	}

	// One cell per grid square. Walkers win over tiles so the reader
	// sees where the action is.
	grid := make([][]rune, engine.WorldHeight)
	for y := range grid {
		grid[y] = make([]rune, engine.WorldWidth)
		for x := range grid[y] {
			grid[y][x] = '.'
		}
	}

	for _, tile := range snapshot.Tiles {
		grid[tile.Y][tile.X] = tileRune(tile.Type)
	}
	for _, cat := range snapshot.Cats {
		grid[cat.GridY][cat.GridX] = 'C'
	}
	for _, mouse := range snapshot.Mice {
		grid[mouse.GridY][mouse.GridX] = 'M'
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Level: %s (by %s)\n", snapshot.Level, snapshot.Author)
	fmt.Fprintf(&b, "State: %s, run state: %s\n", snapshot.State, snapshot.RunState)
	fmt.Fprintf(&b, "Mice: %d, cats: %d\n", len(snapshot.Mice), len(snapshot.Cats))
	fmt.Fprintf(&b, "Arrow stock: up=%d down=%d left=%d right=%d\n\n",
		snapshot.Stock["up"], snapshot.Stock["down"], snapshot.Stock["left"], snapshot.Stock["right"])

	b.WriteString("  ")
	for x := 0; x < engine.WorldWidth; x++ {
		fmt.Fprintf(&b, "%d", x%10)
	}
	b.WriteString("\n")
	for y, row := range grid {
		fmt.Fprintf(&b, "%d ", y)
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("\nLegend: M mouse, C cat, R rocket, H hole, ^v<> arrows (u/n/l/r when worn down)\n")
	return b.String()
}

func tileRune(tileType string) rune {
	switch tileType {
	case "rocket":
		return 'R'
	case "hole":
		return 'H'
	case "arrow-up":
		return '^'
	case "arrow-down":
		return 'v'
	case "arrow-left":
		return '<'
	case "arrow-right":
		return '>'
	case "arrow-up-half":
		return 'u'
	case "arrow-down-half":
		return 'n'
	case "arrow-left-half":
		return 'l'
	case "arrow-right-half":
		return 'r'
	default:
		return '?'
	}
}
