package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/engine"
	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/session"
)

var (
	ErrNoSession = errors.New("no session bound to connection")
	ErrNoSeat    = errors.New("no seat bound to session")
)

// tableService implements TableService. A single mutex serializes every
// read-modify-write on the table, so concurrent transports (WebSocket hub,
// REST handlers, sweeps) never interleave inside an action.
type tableService struct {
	sessions *session.Manager
	table    *engine.Table
	mu       sync.RWMutex
}

// NewTableService creates a table service around one table built from the
// given configuration.
func NewTableService(sessions *session.Manager, config *engine.TableConfig) (TableService, error) {
	table, err := engine.NewTable(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &tableService{
		sessions: sessions,
		table:    table,
	}, nil
}

// InitSession resolves the session bound to the connection, creating one if
// none exists. New sessions take the first seat whose player has no live
// session; when every seat is taken the session is created unbound, as a
// spectator. The current table snapshot is always returned.
func (s *tableService) InitSession(ctx context.Context, connID string) (*SessionInfo, *engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions.GetByConnection(connID)
	if sess == nil {
		// Sweep first so seats held by dead sessions are reusable.
		s.sessions.CleanupExpired()

		playerID := s.freeSeatLocked()
		token, err := s.sessions.Create(playerID, connID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create session: %w", err)
		}
		sess = s.sessions.Get(token)
	}

	return sessionInfo(sess), s.table.Snapshot(), nil
}

// SubmitAction applies a betting action on behalf of the connection's
// session. The session must be live (ErrNoSession) and hold a seat
// (ErrNoSeat); engine rejections pass through unchanged.
func (s *tableService) SubmitAction(ctx context.Context, connID string, action engine.Action, amount int) (*engine.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions.GetByConnection(connID)
	if sess == nil {
		return nil, ErrNoSession
	}
	if sess.PlayerID == "" {
		return nil, ErrNoSeat
	}

	return s.table.ApplyAction(sess.PlayerID, action, amount)
}

// Logout removes the session bound to the connection. Idempotent: a
// connection with no session is a no-op. Holds the service lock because
// seat assignment in InitSession reads the session bindings under it.
func (s *tableService) Logout(ctx context.Context, connID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessions.GetByConnection(connID)
	if sess == nil {
		return nil
	}
	s.sessions.Remove(sess.Token)
	return nil
}

// TouchConnection refreshes the activity of the session bound to the
// connection and reports whether a live one exists. Resolution already
// performs the touch; the manager's own lock covers this single read.
func (s *tableService) TouchConnection(ctx context.Context, connID string) bool {
	return s.sessions.GetByConnection(connID) != nil
}

// RemoveSession removes a session by token, reporting whether one existed.
// Holds the service lock; see Logout.
func (s *tableService) RemoveSession(ctx context.Context, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.Remove(token)
}

// SweepSessions evicts expired sessions and returns the count removed.
// Holds the service lock; see Logout.
func (s *tableService) SweepSessions(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.CleanupExpired()
}

// TableState returns the current table snapshot
func (s *tableService) TableState(ctx context.Context) *engine.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Snapshot()
}

// ListSessions returns all stored sessions
func (s *tableService) ListSessions(ctx context.Context) []*SessionInfo {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result
}

// SessionCount returns the number of stored sessions
func (s *tableService) SessionCount(ctx context.Context) int {
	return s.sessions.Count()
}

// freeSeatLocked returns the first seated player id without a live
// session, or "" when the table is full.
func (s *tableService) freeSeatLocked() string {
	bound := make(map[string]bool)
	for _, sess := range s.sessions.List() {
		if sess.PlayerID != "" {
			bound[sess.PlayerID] = true
		}
	}

	for _, id := range s.table.PlayerIDs() {
		if !bound[id] {
			return id
		}
	}
	return ""
}

func sessionInfo(sess *session.Session) *SessionInfo {
	return &SessionInfo{
		Token:        sess.Token,
		PlayerID:     sess.PlayerID,
		CreatedAt:    sess.CreatedAt,
		LastActivity: sess.LastActivity,
	}
}
