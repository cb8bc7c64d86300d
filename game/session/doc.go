// Package session provides session management for the card-table server.
//
// The session package implements:
//   - Opaque token issuance and storage
//   - Connection-to-session reverse binding
//   - Touch-on-read activity refresh with lazy expiry
//   - Explicit removal and bulk expiry sweeps
//   - Concurrent access control
//
// Core Types:
//
// Manager is the session store handling all lifecycle operations. Session
// binds a token to a player identity plus a connection handle and carries
// the activity timestamps the expiry policy is based on.
//
// Tokens:
//
// Tokens are opaque strings of the form "session_" followed by 16 random
// hex characters, generated from cryptographic randomness. They identify
// sessions but carry no authorization weight beyond possession.
//
// Expiry:
//
// A session is expired once it has been inactive for longer than the
// configured window (30 minutes by default). Expiry is a hard cutoff and
// is enforced lazily: every lookup checks before trusting the session and
// evicts on the spot. CleanupExpired provides the complementary sweep,
// run opportunistically on connection close and periodically from the
// server bootstrap.
//
// Connections:
//
// A session records the id of the connection it was created on. The
// binding is not ownership: the connection can close at any time, leaving
// the session orphaned but still resolvable by token until it expires.
//
// Concurrency:
//
// The manager is thread-safe. Lookups, sweeps, and removals may run from
// any goroutine; internal locking keeps the forward and reverse maps
// consistent.
package session
