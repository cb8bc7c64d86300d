// Package engine provides the table state machine for the card-table server.
//
// The engine package implements the game mechanics including:
//   - Seat order, positions, and turn advancement
//   - Betting actions (fold, check, call, raise) with chip accounting
//   - Terminal detection when a hand can no longer continue
//   - Immutable snapshots for serialization and broadcast
//
// Core Types:
//
// Table is the authoritative, single-writer owner of one table's state and
// the only component permitted to mutate it. TableState holds the players,
// pot, betting round, and turn owner. TableConfig defines the table
// parameters loaded from JSON files. Snapshot is the wire-level copy of
// state handed to transports after every applied action.
//
// Purity:
//
// The engine holds no knowledge of sessions or transport and performs no
// locking. ApplyAction is deterministic: identical inputs on identical
// states produce identical snapshots, which is what makes the state machine
// testable in isolation. Callers serialize access.
//
// Action Semantics:
//
// Only the player named by CurrentPlayer can act; anyone else gets
// ErrNotYourTurn and the state is untouched. Calls deduct the table's
// minimum bet, or the player's remaining stack (all-in) when short. Raises
// clamp the requested amount into the legal range instead of rejecting it;
// the clamped amount is visible to clients in the resulting snapshot.
// Stacks never go negative.
//
// Usage:
//
//	table, err := engine.NewTable(engine.DefaultTableConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	snapshot, err := table.ApplyAction("p1", engine.ActionRaise, 100)
//	if err != nil {
//		// state unchanged
//	}
package engine
