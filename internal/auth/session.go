package auth

import (
	"context"
	"sync"
	"time"

	"github.com/luxefashion/go-storefront/internal/kvstore"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// SessionTTL matches the original 24h window; older records are purged on
// the next read rather than evicted by the store.
const SessionTTL = 24 * time.Hour

type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Session is the persisted proof of an authenticated identity.
type Session struct {
	Authenticated  bool     `json:"authenticated"`
	Role           Role     `json:"role"`
	Identity       Identity `json:"identity"`
	IssuedAtMillis int64    `json:"issued_at_millis"`
}

func (s Session) storeKey() string {
	if s.Role == RoleAdmin {
		return kvstore.KeyAdminAuth
	}
	return kvstore.KeyUserAuth
}

func (s Session) expired(now time.Time) bool {
	return now.UnixMilli()-s.IssuedAtMillis >= SessionTTL.Milliseconds()
}

// Manager owns the in-memory authentication state of one storefront
// profile: at most one session is active at a time.
type Manager struct {
	store    kvstore.Store
	registry *Registry

	adminUsername     string
	adminPasswordHash string

	now func() time.Time

	mu      sync.Mutex
	current *Session
}

func NewManager(store kvstore.Store, registry *Registry, adminUsername, adminPassword string) *Manager {
	return &Manager{
		store:             store,
		registry:          registry,
		adminUsername:     adminUsername,
		adminPasswordHash: HashPassword(adminPassword),
		now:               time.Now,
	}
}

// Login checks the hardcoded admin credential first, then the registry.
// There is deliberately no lockout or rate limit: unbounded retry is part
// of the demo's documented behavior.
func (m *Manager) Login(ctx context.Context, username, password string) (Session, error) {
	if username == m.adminUsername && HashPassword(password) == m.adminPasswordHash {
		return m.activate(ctx, Session{
			Authenticated:  true,
			Role:           RoleAdmin,
			Identity:       Identity{ID: "admin", Username: username},
			IssuedAtMillis: m.now().UnixMilli(),
		})
	}

	u, ok, err := m.registry.FindByCredentials(ctx, username, password)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	return m.activate(ctx, Session{
		Authenticated:  true,
		Role:           RoleUser,
		Identity:       Identity{ID: u.ID, Username: u.Username, Email: u.Email},
		IssuedAtMillis: m.now().UnixMilli(),
	})
}

func (m *Manager) activate(ctx context.Context, s Session) (Session, error) {
	if err := kvstore.SetJSON(ctx, m.store, s.storeKey(), s); err != nil {
		return Session{}, err
	}
	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
	return s, nil
}

// Restore hydrates the session state on startup. The admin record takes
// precedence when both keys are somehow present. Expired records are
// deleted; corrupt records were already dropped by the store helper.
func (m *Manager) Restore(ctx context.Context) (Session, bool, error) {
	for _, key := range []string{kvstore.KeyAdminAuth, kvstore.KeyUserAuth} {
		var s Session
		ok, err := kvstore.GetJSON(ctx, m.store, key, &s)
		if err != nil {
			return Session{}, false, err
		}
		if !ok {
			continue
		}
		if !s.Authenticated || s.expired(m.now()) {
			_ = m.store.Remove(ctx, key)
			continue
		}
		m.mu.Lock()
		m.current = &s
		m.mu.Unlock()
		return s, true, nil
	}
	return Session{}, false, nil
}

// Logout deletes the stored key for the current role and clears the
// in-memory identity. Logging out while logged out is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	s := m.current
	m.current = nil
	m.mu.Unlock()
	if s == nil {
		return nil
	}
	return m.store.Remove(ctx, s.storeKey())
}

// Current returns the active session, if any.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// IsAdmin reports whether the active session carries the admin role.
func (m *Manager) IsAdmin() bool {
	s, ok := m.Current()
	return ok && s.Role == RoleAdmin
}
