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

	"github.com/JaredCorduan/rush-hour-solver/game/service"
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
			Timeout: 60 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Rush Hour Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rush Hour Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

PUZZLE RULES:
Vehicles slide along their axis on a square grid. The goal is to get the
player car to the exit on the right edge.

AVAILABLE TOOLS:
- list_puzzles: List the puzzle library
- show_puzzle: Render a puzzle's starting board
- solve_puzzle: Solve a puzzle and return the shortest move sequence
- start_solve: Start a tracked background solve
- solve_status: Check a tracked solve's record
- list_solves: List solve records
- delete_solve: Delete a solve record
- solver_instructions: Get the puzzle rules and move notation`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Puzzle library
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List available puzzle definitions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "show_puzzle",
		Description: "Render a puzzle's starting board as a character grid",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle identifier from list_puzzles",
				},
			},
			Required: []string{"puzzle_id"},
		},
	}, c.handleShowPuzzle)

	// Solving
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_puzzle",
		Description: "Solve a puzzle synchronously and return the shortest move sequence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle identifier from list_puzzles",
				},
				"max_nodes": map[string]interface{}{
					"type":        "integer",
					"description": "Abort after discovering this many board states (optional)",
				},
			},
			Required: []string{"puzzle_id"},
		},
	}, c.handleSolvePuzzle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_solve",
		Description: "Start a tracked solve that runs in the background",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle identifier from list_puzzles",
				},
				"max_nodes": map[string]interface{}{
					"type":        "integer",
					"description": "Abort after discovering this many board states (optional)",
				},
			},
			Required: []string{"puzzle_id"},
		},
	}, c.handleStartSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_status",
		Description: "Get the record of a tracked solve",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"solve_id": map[string]interface{}{
					"type":        "string",
					"description": "Solve ID returned by start_solve",
				},
			},
			Required: []string{"solve_id"},
		},
	}, c.handleSolveStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_solves",
		Description: "List solve records",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of records to return",
				},
			},
		},
	}, c.handleListSolves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_solve",
		Description: "Delete a solve record",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"solve_id": map[string]interface{}{
					"type":        "string",
					"description": "Solve ID to delete",
				},
			},
			Required: []string{"solve_id"},
		},
	}, c.handleDeleteSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solver_instructions",
		Description: "Get the puzzle rules and move notation",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSolverInstructions)
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

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                   `json:"count"`
		Puzzles []*service.PuzzleInfo `json:"puzzles"`
	}

	err := c.apiCall("GET", "/api/puzzles", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Puzzles (%d):\n\n", response.Count)
	for _, p := range response.Puzzles {
		result += fmt.Sprintf("- %s: %s (%dx%d, %d vehicles, player %s)\n",
			p.PuzzleID, p.Name, p.GridSize, p.GridSize, p.Vehicles, p.Player)
		if p.Description != "" {
			result += fmt.Sprintf("  %s\n", p.Description)
		}
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleShowPuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	puzzleID, _ := args["puzzle_id"].(string)

	var rendered struct {
		Name    string   `json:"name"`
		ExitRow int      `json:"exit_row"`
		Player  string   `json:"player"`
		Rows    []string `json:"rows"`
	}

	err := c.apiCall("GET", fmt.Sprintf("/api/puzzles/%s/render", puzzleID), nil, &rendered)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Puzzle: %s\nPlayer: %s | Exit: right edge, row %d\n\n%s\n",
		rendered.Name, rendered.Player, rendered.ExitRow,
		strings.Join(rendered.Rows, "\n"))

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolvePuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	puzzleID, _ := args["puzzle_id"].(string)

	body := map[string]interface{}{
		"puzzle_id": puzzleID,
	}
	if maxNodes, ok := args["max_nodes"].(float64); ok {
		body["max_nodes"] = int(maxNodes)
	}

	var result service.SolveResult
	err := c.apiCall("POST", "/api/solve", body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveResult(puzzleID, &result)), nil
}

func (c *Client) handleStartSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	puzzleID, _ := args["puzzle_id"].(string)

	body := map[string]interface{}{
		"puzzle_id": puzzleID,
	}
	if maxNodes, ok := args["max_nodes"].(float64); ok {
		body["max_nodes"] = int(maxNodes)
	}

	var info service.SolveInfo
	err := c.apiCall("POST", "/api/solves", body, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Started solve %s for puzzle %s\nCheck it with solve_status.",
		info.ID, info.PuzzleName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolveStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	solveID, _ := args["solve_id"].(string)

	var info service.SolveInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/solves/%s", solveID), nil, &info)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSolveInfo(&info)), nil
}

func (c *Client) handleListSolves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := "/api/solves"
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		if limit, ok := args["limit"].(float64); ok {
			path += fmt.Sprintf("?limit=%d", int(limit))
		}
	}

	var response struct {
		Count  int                  `json:"count"`
		Solves []*service.SolveInfo `json:"solves"`
	}

	err := c.apiCall("GET", path, nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Solve Records (%d):\n\n", response.Count)
	for _, s := range response.Solves {
		result += fmt.Sprintf("- %s (Puzzle: %s, Status: %s, Created: %s)\n",
			s.ID, s.PuzzleName, s.Status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDeleteSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	solveID, _ := args["solve_id"].(string)

	err := c.apiCall("DELETE", fmt.Sprintf("/api/solves/%s", solveID), nil, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted solve %s", solveID)), nil
}

func (c *Client) handleSolverInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Rush Hour Solver - Rules and Notation

THE PUZZLE:
A square grid (usually 6x6) holds cars (length 2) and buses (length 3).
Each vehicle is horizontal or vertical and can only slide along its own
axis, through empty cells. One vehicle is the player car: it is
horizontal and sits on the exit row. The puzzle is solved when the
player car reaches the right edge of the exit row.

COORDINATES:
Columns and rows are numbered from 1. (1,1) is the top-left cell.
A vehicle's position is the cell of its top-left end.

MOVE NOTATION:
Each move in a solution reads "<vehicle> -> <direction> <steps>", for
example "b -> up 1" or "R -> right 4". A move slides one vehicle any
number of cells in one direction and counts as a single move; solutions
minimize the number of moves, not the distance traveled.

BOARD RENDERING:
show_puzzle prints one character per cell. '.' is an empty cell; any
other character is the first letter of the vehicle occupying the cell.

OUTCOMES:
- Solvable puzzles return the shortest move sequence.
- Unsolvable puzzles return solvable=false with no moves. That is a
  definite answer: the search exhausted every reachable position.
- A max_nodes limit can abort very large searches early; an aborted
  search says nothing about solvability.

WORKFLOW:
1. list_puzzles to see the library
2. show_puzzle to inspect a starting board
3. solve_puzzle for an immediate answer, or start_solve + solve_status
   for long-running searches`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSolveResult(puzzleID string, result *service.SolveResult) string {
	var b strings.Builder

	if result.Solvable {
		b.WriteString(fmt.Sprintf("Puzzle %s solved in %d moves:\n\n", puzzleID, result.MoveCount))
		for i, move := range result.Moves {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, move))
		}
	} else {
		b.WriteString(fmt.Sprintf("Puzzle %s has no solution.\n", puzzleID))
	}

	b.WriteString(fmt.Sprintf("\nExplored %d boards across %d layers in %dms",
		result.NodesExplored, result.Layers, result.DurationMS))
	return b.String()
}

func formatSolveInfo(info *service.SolveInfo) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Solve: %s\nPuzzle: %s\nStatus: %s\nCreated: %s\n",
		info.ID, info.PuzzleName, info.Status,
		info.CreatedAt.Format("2006-01-02 15:04:05")))

	switch info.Status {
	case service.StatusRunning:
		b.WriteString(fmt.Sprintf("\nStill searching (%d boards explored so far)", info.NodesExplored))
	case service.StatusFailed:
		b.WriteString(fmt.Sprintf("\nFailed: %s", info.Error))
	case service.StatusFinished:
		if info.Solvable {
			b.WriteString(fmt.Sprintf("\nSolved in %d moves:\n", info.MoveCount))
			for i, move := range info.Moves {
				b.WriteString(fmt.Sprintf("%d. %s\n", i+1, move))
			}
		} else {
			b.WriteString("\nNo solution exists.\n")
		}
		b.WriteString(fmt.Sprintf("\nExplored %d boards across %d layers in %dms",
			info.NodesExplored, info.Layers, info.DurationMS))
	}

	return b.String()
}
