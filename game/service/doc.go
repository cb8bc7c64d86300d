// Package service provides the orchestration layer between the transports
// and the game state.
//
// The service package implements:
//   - Seat assignment when a connection initializes a session
//   - Serialized action application against the shared table
//   - Session lifecycle pass-through (logout, removal, expiry sweeps)
//   - Operational reads for the REST and MCP surfaces
//
// Core Types:
//
// TableService is the interface every transport programs against;
// tableService is the single implementation, wrapping one engine.Table and
// one session.Manager behind a mutex. SessionInfo is the outward view of a
// session handed to clients.
//
// Ownership:
//
// The table and session registry are injected, not global: the dispatcher,
// REST server, and MCP surface all receive the same TableService handle,
// which keeps the state container testable and leaves room for multi-table
// routing later.
//
// Seating:
//
// InitSession assigns the first seat whose player id has no live session.
// When all seats are held the session is still created, unbound, so the
// client can observe broadcasts; any bet from such a spectator session
// fails with ErrNoSeat.
package service
