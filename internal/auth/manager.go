// Package auth owns the operator session lifecycle: hydration at startup,
// login/signup/logout, and the single in-memory copy of the session. The
// persisted copy in the session store is a cache; memory wins while the
// process lives.
package auth

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/zabava/dashboard-go/internal/api"
	apperrors "github.com/zabava/dashboard-go/internal/errors"
	"github.com/zabava/dashboard-go/internal/model"
	"github.com/zabava/dashboard-go/internal/token"
)

// UpstreamAuth is the slice of the API client the manager needs.
type UpstreamAuth interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Signup(ctx context.Context, email, password, inviteToken, name string) (*api.AuthResponse, error)
	Profile(ctx context.Context, token string) (*model.User, error)
}

// SessionStore is the persistence surface; satisfied by store.SessionStore.
type SessionStore interface {
	Read(ctx context.Context) *model.Session
	Write(ctx context.Context, sess *model.Session)
}

// RoleListener is invoked whenever the session role changes; an empty role
// means logged out. Used to gate the notification poller.
type RoleListener func(role model.Role)

type Manager struct {
	client UpstreamAuth
	store  SessionStore

	mu              sync.RWMutex
	session         *model.Session
	checkingProfile bool
	loading         bool
	onRoleChange    RoleListener
}

func NewManager(client UpstreamAuth, store SessionStore) *Manager {
	return &Manager{
		client:          client,
		store:           store,
		checkingProfile: true,
	}
}

// SetRoleListener registers the role-change hook. Call before Hydrate so the
// listener observes the restored role.
func (m *Manager) SetRoleListener(fn RoleListener) {
	m.mu.Lock()
	m.onRoleChange = fn
	m.mu.Unlock()
}

// Hydrate restores and validates the persisted session. It runs exactly once
// per process start: seed from the store, then reconcile against the profile
// endpoint, since a locally unexpired token may have been revoked upstream.
// Any failure degrades to logged-out rather than an error.
func (m *Manager) Hydrate(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.checkingProfile = false
		m.mu.Unlock()
	}()

	stored := m.store.Read(ctx)
	if stored == nil || stored.Token == "" {
		return
	}

	m.mu.Lock()
	m.session = stored
	m.mu.Unlock()

	user, err := m.client.Profile(ctx, stored.Token)
	if err != nil {
		log.Warn().Err(err).Msg("profile hydration failed, clearing session")
		m.clear(ctx)
		return
	}

	m.set(ctx, &model.Session{Token: stored.Token, User: user, ExpiresAt: stored.ExpiresAt})
	log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("session hydrated")
}

// Login exchanges credentials for a session. A 2xx payload missing token or
// user is rejected. Concurrent calls are not deduplicated; the last to
// resolve wins, matching the source system (the UI throttles submission).
func (m *Manager) Login(ctx context.Context, email, password string) (*model.Session, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return m.accept(ctx, resp)
}

// Signup redeems an invite token for a new account and session.
func (m *Manager) Signup(ctx context.Context, email, password, inviteToken, name string) (*model.Session, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	resp, err := m.client.Signup(ctx, email, password, inviteToken, name)
	if err != nil {
		return nil, err
	}

	return m.accept(ctx, resp)
}

func (m *Manager) accept(ctx context.Context, resp *api.AuthResponse) (*model.Session, error) {
	if resp.Token == "" || resp.User == nil {
		return nil, apperrors.MalformedResponse("auth response missing token or user")
	}

	sess := &model.Session{Token: resp.Token, User: resp.User}
	if exp := token.ExpiresAt(token.DecodeClaims(resp.Token)); !exp.IsZero() {
		sess.ExpiresAt = &exp
	}

	m.set(ctx, sess)
	log.Info().Str("email", resp.User.Email).Str("role", string(resp.User.Role)).Msg("logged in")
	return sess, nil
}

// Logout clears the in-memory and persisted session. Idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.clear(ctx)
	log.Info().Msg("logged out")
}

func (m *Manager) set(ctx context.Context, sess *model.Session) {
	m.mu.Lock()
	m.session = sess
	listener := m.onRoleChange
	m.mu.Unlock()

	m.store.Write(ctx, sess)
	if listener != nil && sess.User != nil {
		listener(sess.User.Role)
	}
}

func (m *Manager) clear(ctx context.Context) {
	m.mu.Lock()
	m.session = nil
	listener := m.onRoleChange
	m.mu.Unlock()

	m.store.Write(ctx, nil)
	if listener != nil {
		listener("")
	}
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// Token returns the current bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return ""
	}
	return m.session.Token
}

// User returns a copy of the current user, or nil when logged out.
func (m *Manager) User() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil || m.session.User == nil {
		return nil
	}
	user := *m.session.User
	return &user
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Valid()
}

// IsAdmin reports whether the current session belongs to an admin.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.IsAdmin()
}

// Loading is true while hydration has not settled or an auth call is in
// flight.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checkingProfile || m.loading
}

func (m *Manager) CheckingProfile() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checkingProfile
}
