// Package mcp provides the Model Context Protocol server for Shoko Rocket.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - list_levels: List available levels
//   - create_session: Start a game session on a level
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - get_state: Get the current world with a text grid rendering
//   - place_arrow: Place a direction arrow on an empty square
//   - remove_arrow: Pick an arrow back up
//   - set_run_state: Start, fast-forward, or pause the simulation
//   - step: Advance the simulation a fixed number of ticks
//   - reset: Restore the level to its initial state
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Architecture:
//
// The Client is a thin proxy: every tool call becomes a REST API call
// against the game server, so the MCP surface and the HTTP surface
// always agree on what the game allows.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
