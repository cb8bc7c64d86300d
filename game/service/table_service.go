package service

import (
	"context"
	"time"

	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/engine"
)

// TableService defines all table-facing operations reachable from the
// transports. Every state mutation funnels through one implementation so
// action application is strictly ordered.
type TableService interface {
	// Session lifecycle
	InitSession(ctx context.Context, connID string) (*SessionInfo, *engine.Snapshot, error)
	Logout(ctx context.Context, connID string) error
	TouchConnection(ctx context.Context, connID string) bool
	RemoveSession(ctx context.Context, token string) bool
	SweepSessions(ctx context.Context) int

	// Game operations
	SubmitAction(ctx context.Context, connID string, action engine.Action, amount int) (*engine.Snapshot, error)

	// Operational reads
	TableState(ctx context.Context) *engine.Snapshot
	ListSessions(ctx context.Context) []*SessionInfo
	SessionCount(ctx context.Context) int
}

// SessionInfo is the outward-facing view of a session
type SessionInfo struct {
	Token        string    `json:"token"`
	PlayerID     string    `json:"player_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}
