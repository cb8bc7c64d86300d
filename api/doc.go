// Package api provides the HTTP surface of the card table server.
//
// The api package implements:
//   - Operational REST endpoints for table and session inspection
//   - Administrative session removal
//   - Table configuration listing and retrieval
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Operational:
//   - GET /api/health - Server health, connection and session counts
//   - GET /api/state - Current table snapshot
//
// Session Management:
//   - GET /api/sessions - List sessions (sort, order, limit query params)
//   - DELETE /api/sessions/{token} - Remove a session by token
//
// Configuration:
//   - GET /api/configs - List available table configurations
//   - GET /api/configs/{name} - Get a specific configuration
//
// WebSocket:
//   - /ws - Upgrade to the real-time game protocol
//
// Gameplay itself is not exposed over REST: actions travel exclusively
// over the WebSocket protocol so they funnel through the hub's run loop.
// The REST surface is read-mostly and intended for operators and tooling.
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
