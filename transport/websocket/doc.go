// Package websocket provides the real-time transport for Shoko Rocket.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Snapshot broadcasting to all watchers of a session
//   - A frame-rate runner that drives running games in real time
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup. A Runner ticks
// every running session once per frame (60 frames per second) and pushes
// the resulting world snapshot through the hub.
//
// Message Protocol:
//
// Messages are JSON-encoded. Outgoing messages carry the complete world
// snapshot under "snapshot" with event "state_update"; when a game ends,
// an extra message with event "win" or "lose" follows. Incoming messages
// are ignored; all game mutations (placing arrows, changing run state)
// go through the REST API.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=abc1)
// when establishing the connection. Snapshots are broadcast only to
// clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	runner := websocket.NewRunner(sessionManager, hub)
//	go runner.Run(ctx)
package websocket
