// Package mcp provides the Model Context Protocol surface of the card
// table server.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions proxied onto the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - table_state: Get the current table snapshot
//   - list_sessions: List all active player sessions
//   - remove_session: Remove a session by token
//   - list_configs: List available table configurations
//   - get_config: Get a specific table configuration
//   - server_health: Check server health and counts
//   - table_rules: Get the betting rules and wire protocol
//
// The client is deliberately thin: every tool translates to an HTTP call
// against the REST API, so the MCP process carries no table state of its
// own and can run separately from the game server. Gameplay actions are
// not exposed as tools; they belong to the WebSocket protocol where the
// hub can order them.
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.NewStdioServer(client.GetMCPServer()).Listen(ctx, os.Stdin, os.Stdout)
package mcp
