// Package websocket provides the WebSocket transport for the card table.
//
// The package implements:
//   - Real-time bidirectional communication over a single /ws endpoint
//   - A typed JSON message protocol with per-type payloads
//   - Automatic table-state broadcasting after every applied action
//   - Connection lifecycle management and session recovery
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub owns all
// client connections. Every inbound frame is funneled into the hub's run
// loop and handed to the Dispatcher one at a time, so concurrent clients
// never interleave their effects on the table.
//
// Message Protocol:
//
// Messages are JSON envelopes of the form {type: "...", data: {...}}.
// Inbound types are session_init, bet_action, heartbeat, and logout.
// Outbound types are connection_status, game_state_update, heartbeat, and
// error. Error payloads carry a machine-readable code and a human-readable
// message; no inbound frame ever terminates the connection.
//
// Session Integration:
//
// Sessions are bound to connections server-side. A client sends
// session_init after connecting and receives the full table state; the
// service seats it, recovers its previous session, or admits it as a
// spectator. Disconnecting orphans the session rather than destroying it,
// so a reconnecting client keeps its seat until the session expires.
//
// Usage:
//
//	dispatcher := websocket.NewDispatcher(tableService)
//	hub := websocket.NewHub(dispatcher)
//	go hub.Run()
//
//	http.HandleFunc("/ws", hub.ServeWS)
package websocket
