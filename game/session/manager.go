package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	ErrDuplicateBinding = errors.New("connection already has a session")
)

const (
	// TokenPrefix makes tokens recognizable in logs and client storage.
	TokenPrefix = "session_"

	tokenRandomBytes = 8 // 16 hex characters

	// DefaultExpiry is the hard inactivity cutoff after which a session
	// is evicted on the next lookup or sweep.
	DefaultExpiry = 30 * time.Minute
)

// Session binds a connection to a player identity with an expiry window.
// ConnID is an optional handle into the connection registry, never an
// ownership claim: the connection may close independently, after which the
// session is orphaned but still addressable by token until it expires.
type Session struct {
	Token        string
	PlayerID     string
	CreatedAt    time.Time
	LastActivity time.Time
	ConnID       string
}

// Expired reports whether the session has been inactive longer than the
// given window.
func (s *Session) Expired(now time.Time, window time.Duration) bool {
	return now.Sub(s.LastActivity) > window
}

// Manager handles session lifecycle: token issuance, connection binding,
// touch-on-read expiry, and sweeps. Safe for concurrent use.
type Manager struct {
	sessions map[string]*Session // token -> session
	byConn   map[string]string   // connection id -> token
	expiry   time.Duration
	mu       sync.RWMutex
}

// NewManager creates a session manager with the default expiry window
func NewManager() *Manager {
	return NewManagerWithExpiry(DefaultExpiry)
}

// NewManagerWithExpiry creates a session manager with a custom expiry window
func NewManagerWithExpiry(expiry time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		byConn:   make(map[string]string),
		expiry:   expiry,
	}
}

// Create issues a new session bound to the given connection and returns its
// token. It fails with ErrDuplicateBinding when the connection already has a
// live session; callers must resolve first.
func (m *Manager) Create(playerID, connID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token, exists := m.byConn[connID]; exists {
		if sess, ok := m.sessions[token]; ok && !sess.Expired(time.Now(), m.expiry) {
			return "", ErrDuplicateBinding
		}
		// Stale binding to an expired or removed session; evict and rebind.
		m.removeLocked(token)
	}

	token := generateToken()
	now := time.Now()
	m.sessions[token] = &Session{
		Token:        token,
		PlayerID:     playerID,
		CreatedAt:    now,
		LastActivity: now,
		ConnID:       connID,
	}
	m.byConn[connID] = token

	return token, nil
}

// Get returns the session for a token, or nil when absent or expired.
// Expired sessions are evicted on the spot; live ones have their activity
// refreshed (touch on read), so expiry is lazy rather than timer-driven.
func (m *Manager) Get(token string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(token)
}

// GetByConnection resolves the session bound to a connection via the
// reverse map, with the same touch and lazy-eviction semantics as Get.
func (m *Manager) GetByConnection(connID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, exists := m.byConn[connID]
	if !exists {
		return nil
	}
	return m.getLocked(token)
}

// Remove deletes a session and its connection binding. It reports whether
// a session was actually removed; removing an absent token is a no-op.
func (m *Manager) Remove(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[token]; !exists {
		return false
	}
	m.removeLocked(token)
	return true
}

// CleanupExpired sweeps all sessions and evicts any whose inactivity
// exceeds the expiry window. It returns the number evicted.
func (m *Manager) CleanupExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, sess := range m.sessions {
		if sess.Expired(now, m.expiry) {
			m.removeLocked(token)
			removed++
		}
	}
	return removed
}

// List returns copies of all sessions, expired or not. Intended for the
// operational surfaces; it does not touch activity.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		copied := *sess
		result = append(result, &copied)
	}
	return result
}

// Count returns the number of stored sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) getLocked(token string) *Session {
	sess, exists := m.sessions[token]
	if !exists {
		return nil
	}
	if sess.Expired(time.Now(), m.expiry) {
		m.removeLocked(token)
		return nil
	}
	sess.LastActivity = time.Now()
	return sess
}

func (m *Manager) removeLocked(token string) {
	if sess, exists := m.sessions[token]; exists {
		if bound, ok := m.byConn[sess.ConnID]; ok && bound == token {
			delete(m.byConn, sess.ConnID)
		}
		delete(m.sessions, token)
	}
}

// generateToken returns a prefixed 16-character random hex token
func generateToken() string {
	bytes := make([]byte, tokenRandomBytes)
	rand.Read(bytes)
	return TokenPrefix + hex.EncodeToString(bytes)
}
