package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/lonely-knight/game/board"
	"github.com/wricardo/lonely-knight/game/service"
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

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Lonely Knight",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Lonely Knight - MCP Interface

A knight moves over a terrain board. This is a thin client that proxies all
requests to the REST API server.

AVAILABLE TOOLS:
- create_session / list_sessions / get_session: manage boards
- board_state: print the board with coordinates
- find_path: search a path with "any", "wave" or "astar"
- compare_paths: run all three searches on the same endpoints
- move_knight: replay a path on the board, leaving markers
- validate_path: check a path without touching the board
- set_terrain / reset_board: edit the board or restore its layout
- query_history: past queries of a session
- list_boards: stored layouts
- describe_cell: terrain, cost and legal moves of one cell
- knight_rules: movement and terrain rules

Paths are written as "x,y; x,y; ...", x is the column and y the row.`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func pathRequestProperties() map[string]interface{} {
	return map[string]interface{}{
		"session_id": sessionProperty(),
		"from_x":     intProperty("Origin column"),
		"from_y":     intProperty("Origin row"),
		"to_x":       intProperty("Target column"),
		"to_y":       intProperty("Target row"),
		"check_teleports": map[string]interface{}{
			"type":        "boolean",
			"description": "Let A* hop between the teleport pair",
		},
	}
}

func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new board session, optionally on a stored layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board_id": map[string]interface{}{
					"type":        "string",
					"description": "Layout to use, see list_boards (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active board sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Board operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Show the board with coordinates, markers and teleports",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleBoardState)

	findProps := pathRequestProperties()
	findProps["algorithm"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"any", "wave", "astar"},
		"description": "Search to run (default astar)",
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "find_path",
		Description: "Find a knight path between two cells",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: findProps,
			Required:   []string{"session_id", "from_x", "from_y", "to_x", "to_y"},
		},
	}, c.handleFindPath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "compare_paths",
		Description: "Run every search on the same endpoints and compare length and cost",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: pathRequestProperties(),
			Required:   []string{"session_id", "from_x", "from_y", "to_x", "to_y"},
		},
	}, c.handleComparePaths)

	pathProps := map[string]interface{}{
		"session_id": sessionProperty(),
		"path": map[string]interface{}{
			"type":        "string",
			"description": `Cells in order, e.g. "0,0; 1,2; 3,3"`,
		},
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_knight",
		Description: "Replay a path on the board, marking start, end and visited cells",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: pathProps,
			Required:   []string{"session_id", "path"},
		},
	}, c.handleMoveKnight)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "validate_path",
		Description: "Check whether a path is a legal sequence of knight moves",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: pathProps,
			Required:   []string{"session_id", "path"},
		},
	}, c.handleValidatePath)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_terrain",
		Description: "Change the terrain of one cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"x":          intProperty("Column of the cell"),
				"y":          intProperty("Row of the cell"),
				"terrain": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"free", "barrier", "lava", "rock", "water", "teleport"},
					"description": "New terrain",
				},
			},
			Required: []string{"session_id", "x", "y", "terrain"},
		},
	}, c.handleSetTerrain)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_board",
		Description: "Restore the session board to its layout",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "query_history",
		Description: "Show past queries of a session with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page":       intProperty("Page number (default 1)"),
				"limit":      intProperty("Entries per page (default 20)"),
			},
			Required: []string{"session_id"},
		},
	}, c.handleQueryHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_boards",
		Description: "List stored board layouts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListBoards)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe one cell: terrain, cost and the cells a knight can reach from it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"x":          intProperty("Column of the cell (0-based)"),
				"y":          intProperty("Row of the cell (0-based)"),
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "knight_rules",
		Description: "Explain knight movement, terrain and the search algorithms",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleKnightRules)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
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

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		args = map[string]interface{}{}
	}
	return args
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg reads a JSON number argument; ok is false when it is missing
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func pathRequestFromArgs(args map[string]interface{}) (service.PathRequest, error) {
	var req service.PathRequest
	coords := []*int{&req.Origin.X, &req.Origin.Y, &req.Target.X, &req.Target.Y}
	for i, key := range []string{"from_x", "from_y", "to_x", "to_y"} {
		v, ok := intArg(args, key)
		if !ok {
			return req, fmt.Errorf("%s is required", key)
		}
		*coords[i] = v
	}
	req.Algorithm = stringArg(args, "algorithm")
	req.CheckTeleports, _ = args["check_teleports"].(bool)
	return req, nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	body := map[string]string{}
	if boardID := stringArg(args, "board_id"); boardID != "" {
		body["board_id"] = boardID
	}

	var info service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Created session: %s\nBoard: %s\n\n%s",
		info.ID, info.BoardID, formatBoardState(info.State))), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Board: %s, Created: %s)\n",
			s.ID, s.BoardID, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	var info service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&info)), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	var state service.BoardState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoardState(&state)), nil
}

func (c *Client) handleFindPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	req, err := pathRequestFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.PathResult
	if err := c.apiCall(ctx, "POST", sessionPath(stringArg(args, "session_id"), "/path"), req, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPathResult(&result)), nil
}

func (c *Client) handleComparePaths(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	req, err := pathRequestFromArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.CompareResult
	if err := c.apiCall(ctx, "POST", sessionPath(stringArg(args, "session_id"), "/compare"), req, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCompareResult(&result)), nil
}

func (c *Client) handleMoveKnight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := board.ParsePath(stringArg(args, "path"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.MoveResult
	body := map[string]interface{}{"path": path}
	if err := c.apiCall(ctx, "POST", sessionPath(stringArg(args, "session_id"), "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleValidatePath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := board.ParsePath(stringArg(args, "path"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.ValidationResult
	body := map[string]interface{}{"path": path}
	if err := c.apiCall(ctx, "POST", sessionPath(stringArg(args, "session_id"), "/validate"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("Valid: %v\nValid with teleports: %v\n%s", result.Valid, result.RouteValid, result.Message)
	if result.Cost > 0 {
		text += fmt.Sprintf("\nCost: %d", result.Cost)
	}
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleSetTerrain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required"), nil
	}

	body := map[string]interface{}{
		"changes": []service.TerrainChange{{X: x, Y: y, Terrain: stringArg(args, "terrain")}},
	}

	var state service.BoardState
	if err := c.apiCall(ctx, "POST", sessionPath(stringArg(args, "session_id"), "/terrain"), body, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Cell [%d, %d] set to %s\n\n%s",
		x, y, stringArg(args, "terrain"), formatBoardState(&state))), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(arguments(request), "session_id")

	var response struct {
		Message string              `json:"message"`
		State   *service.BoardState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatBoardState(response.State))), nil
}

func (c *Client) handleQueryHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}

	path := sessionPath(stringArg(args, "session_id"), "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var boards []service.BoardInfo
	if err := c.apiCall(ctx, "GET", "/api/boards", nil, &boards); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Boards:\n\n"
	for _, b := range boards {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Size: %dx%d, Teleports: %d\n\n",
			b.BoardID, b.Name, b.Description, b.Width, b.Height, b.Teleports)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required"), nil
	}

	var state service.BoardState
	if err := c.apiCall(ctx, "GET", sessionPath(stringArg(args, "session_id"), "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(describeCell(&state, board.Coordinate{X: x, Y: y})), nil
}

func (c *Client) handleKnightRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(knightRules), nil
}

const knightRules = `Lonely Knight - Rules

MOVEMENT:
The knight jumps two cells along one axis and one along the other, eight
moves at most. x is the column, y the row, [0, 0] is the top-left cell.

TERRAIN:
• . free      cost 1
• W water     cost 2
• L lava      cost 5
• R rock      impassable, can be jumped over
• B barrier   impassable, and blocks jumps whose approach lines cross it
• T teleport  cost 1; with check_teleports A* may hop between the two teleports for free

BARRIERS:
Each jump has two L-shaped approach lines of two cells each. A line is
walled when both of its cells are barriers; the jump is blocked only when
both lines are walled.

SEARCHES:
• any   depth-first, finds some path quickly, not the shortest
• wave  breadth-first, fewest moves, ignores cost
• astar cheapest path by terrain cost; check_teleports also tries the pair

MARKERS (move_knight):
S start, E end, K knight, * visited cell.

Paths are written "x,y; x,y; ...". A board holds at most two teleports.`
