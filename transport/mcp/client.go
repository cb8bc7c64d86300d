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

	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/config"
	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/engine"
	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/service"
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
		"Card Table Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Card Table Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.
Gameplay itself runs over WebSocket; these tools give read access to the
table and administrative control over sessions.

AVAILABLE TOOLS:
- table_state: Get the current table snapshot (players, pot, round, turn)
- list_sessions: List all active player sessions
- remove_session: Remove a session by its token
- list_configs: List available table configurations
- get_config: Get a specific table configuration
- server_health: Check server health and connection counts
- table_rules: Get the betting rules enforced by the table`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "table_state",
		Description: "Get the current table state: players, stacks, pot, round, and whose turn it is",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleTableState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active player sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "remove_session",
		Description: "Remove a session by token, freeing its seat for the next connection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"token": map[string]interface{}{
					"type":        "string",
					"description": "Session token to remove",
				},
			},
			Required: []string{"token"},
		},
	}, c.handleRemoveSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available table configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_config",
		Description: "Get a specific table configuration by name",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Configuration name (e.g. 'default')",
				},
			},
			Required: []string{"name"},
		},
	}, c.handleGetConfig)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "server_health",
		Description: "Check server health, connection count, and session count",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleServerHealth)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "table_rules",
		Description: "Get the betting rules and message protocol enforced by the table",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleTableRules)
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

func (c *Client) handleTableState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var snapshot engine.Snapshot
	err := c.apiCall("GET", "/api/state", nil, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSnapshot(&snapshot)), nil
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
		seat := s.PlayerID
		if seat == "" {
			seat = "spectator"
		}
		result += fmt.Sprintf("- %s (Seat: %s, Created: %s, Last activity: %s)\n",
			s.Token, seat, s.CreatedAt.Format("15:04:05"), s.LastActivity.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRemoveSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	token, _ := args["token"].(string)

	var response map[string]string
	err := c.apiCall("DELETE", fmt.Sprintf("/api/sessions/%s", token), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response["message"]), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []config.Info
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, cfg := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Seats: %d, Starting stack: %d\n\n",
			cfg.ConfigID, cfg.Description, cfg.Seats, cfg.StartingStack)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	name, _ := args["name"].(string)

	var cfg engine.TableConfig
	err := c.apiCall("GET", fmt.Sprintf("/api/configs/%s", name), nil, &cfg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Configuration: %s\n%s\nSeats: %d\nStarting stack: %d\nMin bet: %d\nMax bet: %d\n",
		cfg.Name, cfg.Description, cfg.Seats, cfg.StartingStack, cfg.MinBet, cfg.MaxBet)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleServerHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var health struct {
		Status      string `json:"status"`
		Connections int    `json:"connections"`
		Sessions    int    `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/health", nil, &health)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Status: %s\nConnections: %d\nSessions: %d\n",
		health.Status, health.Connections, health.Sessions)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTableRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := `Card Table Rules

SEATING:
• The table seats a fixed number of players (2 by default).
• The first connections to initialize a session take the open seats.
• Later connections join as spectators: they receive every state update
  but cannot act.
• A session that expires (30 minutes of inactivity) frees its seat.

BETTING:
• Actions: fold, check, call, raise.
• Only the current player may act; anyone else gets an error.
• call commits the table minimum bet, capped at the player's stack.
• raise commits the requested amount, floored at the minimum bet and
  capped at the player's stack. A raise for the whole stack is an all-in.
• Chips never go negative and the pot only grows by what players commit.

TURN ORDER:
• The turn passes clockwise, skipping folded and all-in players.
• When one player remains unfolded, or nobody can act, the hand finishes.

PROTOCOL:
• Gameplay runs over WebSocket at /ws with JSON envelopes {type, data}.
• Inbound: session_init, bet_action, heartbeat, logout.
• Outbound: connection_status, game_state_update, heartbeat, error.
• Every applied action broadcasts the new state to all connections.`

	return mcp.NewToolResultText(rules), nil
}

// Formatting helpers

func formatSnapshot(s *engine.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Round: %s | Status: %s | Pot: %d\n", s.Round, s.GameStatus, s.Pot)
	if s.CurrentPlayer != "" {
		fmt.Fprintf(&b, "To act: %s (%.0fs remaining)\n", s.CurrentPlayer, float64(s.TimeRemaining)/1000)
	} else {
		b.WriteString("To act: nobody (hand finished)\n")
	}

	b.WriteString("\nPlayers:\n")
	for _, p := range s.Players {
		flags := make([]string, 0, 3)
		if p.IsFolded {
			flags = append(flags, "folded")
		}
		if p.IsAllIn {
			flags = append(flags, "all-in")
		}
		if p.Position != engine.PositionNone {
			flags = append(flags, string(p.Position))
		}
		suffix := ""
		if len(flags) > 0 {
			suffix = " [" + strings.Join(flags, ", ") + "]"
		}
		fmt.Fprintf(&b, "• %s: stack %d, bet %d%s\n", p.PlayerID, p.ChipStack, p.CurrentBet, suffix)
	}

	if len(s.CommunityCards) > 0 {
		fmt.Fprintf(&b, "\nCommunity cards: %s\n", strings.Join(s.CommunityCards, " "))
	}

	return b.String()
}
