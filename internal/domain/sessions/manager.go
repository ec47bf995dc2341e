// Package sessions tracks login sessions: at most one active session per
// email, idle sessions expired by a background sweep.
package sessions

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventease/server/internal/domain/ids"
	"github.com/eventease/server/internal/notify"
)

var ErrNotFound = errors.New("session not found")

// End causes, carried in the end notification.
const (
	CauseLogout   = "logout"
	CauseReplaced = "replaced"
	CauseExpired  = "expired"
)

// EndNotice is the payload published on the session-ended topic.
type EndNotice struct {
	ID    string
	Cause string
}

// DefaultIdleTimeout is how long a session may sit without activity before
// the sweep ends it.
const DefaultIdleTimeout = 24 * time.Hour

// Session is a login session. IDs are ULIDs, so sorting by id sorts by
// creation time.
type Session struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	Email        string            `json:"email"`
	FullName     string            `json:"full_name"`
	Active       bool              `json:"active"`
	LoginAt      time.Time         `json:"login_at"`
	LastActivity time.Time         `json:"last_activity"`
	Data         map[string]string `json:"data,omitempty"`
}

func (s Session) clone() Session {
	if s.Data != nil {
		data := make(map[string]string, len(s.Data))
		for k, v := range s.Data {
			data[k] = v
		}
		s.Data = data
	}
	return s
}

// Manager owns the session store. Compound updates (end-then-create on
// login, expiry) run under one mutex; notifications are published after the
// lock is released so subscribers may call back into the manager.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	currentID   string
	idleTimeout time.Duration
	bus         *notify.Bus
	logger      zerolog.Logger
	now         func() time.Time
}

func NewManager(bus *notify.Bus, idleTimeout time.Duration, logger zerolog.Logger) *Manager {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Manager{
		sessions:    make(map[string]*Session),
		idleTimeout: idleTimeout,
		bus:         bus,
		logger:      logger.With().Str("component", "sessions").Logger(),
		now:         time.Now,
	}
}

// Create starts a session for an email, ending any session already active
// for it so that at most one is active per email.
func (m *Manager) Create(_ context.Context, email, fullName string) (Session, error) {
	id, err := ids.NewULID()
	if err != nil {
		return Session{}, err
	}

	now := m.now()
	session := &Session{
		ID:           id,
		UserID:       email, // email doubles as the user key here
		Email:        email,
		FullName:     fullName,
		Active:       true,
		LoginAt:      now,
		LastActivity: now,
		Data:         make(map[string]string),
	}

	m.mu.Lock()
	var endedID string
	for _, existing := range m.sessions {
		if existing.Active && strings.EqualFold(existing.Email, email) {
			existing.Active = false
			if m.currentID == existing.ID {
				m.currentID = ""
			}
			endedID = existing.ID
			break
		}
	}
	m.sessions[id] = session
	m.currentID = id
	created := session.clone()
	m.mu.Unlock()

	if endedID != "" {
		m.logger.Debug().Str("session_id", endedID).Msg("replaced active session")
		m.bus.Publish(notify.TopicSessionEnded, EndNotice{ID: endedID, Cause: CauseReplaced})
	}
	m.bus.Publish(notify.TopicSessionCreated, created)
	return created, nil
}

// Get returns the session only while it is active.
func (m *Manager) Get(_ context.Context, id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok || !session.Active {
		return Session{}, ErrNotFound
	}
	return session.clone(), nil
}

// Current returns the most recently created active session. This is a
// process-wide pointer, a single-client simplification; the HTTP layer
// identifies sessions by token instead of relying on it.
func (m *Manager) Current(_ context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[m.currentID]
	if !ok || !session.Active {
		return Session{}, ErrNotFound
	}
	return session.clone(), nil
}

// Touch refreshes LastActivity. Returns false when the session is missing
// or no longer active.
func (m *Manager) Touch(_ context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok || !session.Active {
		return false
	}
	session.LastActivity = m.now()
	return true
}

// End marks a session inactive and notifies subscribers. Ending an
// already-ended session succeeds again as long as the id exists, but only
// the active-to-inactive flip publishes a notification.
func (m *Manager) End(ctx context.Context, id string) error {
	return m.end(ctx, id, CauseLogout)
}

func (m *Manager) end(_ context.Context, id, cause string) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	wasActive := session.Active
	session.Active = false
	if m.currentID == id {
		m.currentID = ""
	}
	m.mu.Unlock()

	if wasActive {
		m.bus.Publish(notify.TopicSessionEnded, EndNotice{ID: id, Cause: cause})
	}
	return nil
}

// IsActive reports whether the session exists and is active.
func (m *Manager) IsActive(_ context.Context, id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return ok && session.Active
}

// ListActive returns all active sessions in creation order.
func (m *Manager) ListActive(_ context.Context) []Session {
	m.mu.RLock()
	out := make([]Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		if session.Active {
			out = append(out, session.clone())
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ExpireIdle ends every session whose last activity is older than the idle
// timeout, through the same End path so notifications fire uniformly. It
// returns how many sessions were ended.
func (m *Manager) ExpireIdle(ctx context.Context) int {
	cutoff := m.now().Add(-m.idleTimeout)

	m.mu.RLock()
	var stale []string
	for _, session := range m.sessions {
		if session.Active && session.LastActivity.Before(cutoff) {
			stale = append(stale, session.ID)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		if err := m.end(ctx, id, CauseExpired); err != nil {
			// A session removed between scan and end is not a problem.
			m.logger.Debug().Err(err).Str("session_id", id).Msg("expire skipped")
		}
	}
	if len(stale) > 0 {
		m.logger.Info().Int("expired", len(stale)).Msg("idle sessions ended")
	}
	return len(stale)
}
