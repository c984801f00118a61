// Package api provides the HTTP REST API for Shoko Rocket.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Level listing and packed level download
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Levels:
//   - GET /api/levels - List available levels
//   - GET /api/levels/{name} - Download a level in its 199-byte packed form
//
// Session Management:
//   - POST /api/sessions - Create a session: {"level": "Where to go?"}
//   - GET /api/sessions - List sessions (sort/order/limit query params)
//   - GET /api/sessions/{id} - Get a specific session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get the world snapshot
//   - POST /api/sessions/{id}/arrows - Place an arrow: {"x": 3, "y": 4, "direction": "up"}
//   - DELETE /api/sessions/{id}/arrows?x=3&y=4 - Pick an arrow back up
//   - POST /api/sessions/{id}/run - Change run state: {"state": "running"}
//   - POST /api/sessions/{id}/step - Advance N ticks: {"ticks": 60}
//   - POST /api/sessions/{id}/reset - Reload the level from scratch
//
// WebSocket:
//   - GET /ws?session={id} - Subscribe to real-time snapshots
//
// Request/Response Format:
//
// All endpoints accept and return JSON, except the packed level
// download which returns application/octet-stream. Mutating endpoints
// respond with the full world snapshot so clients never need a
// follow-up state fetch.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "square is not empty"
//	}
//
// Conflicts with the current game state (occupied square, exhausted
// stock, finished game) map to 409; malformed input maps to 400;
// unknown sessions and levels map to 404.
package api
