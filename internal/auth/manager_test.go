package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zabava/dashboard-go/internal/api"
	apperrors "github.com/zabava/dashboard-go/internal/errors"
	"github.com/zabava/dashboard-go/internal/model"
)

type mockUpstream struct {
	loginResp    *api.AuthResponse
	loginErr     error
	signupResp   *api.AuthResponse
	signupErr    error
	profileUser  *model.User
	profileErr   error
	profileCalls int
}

func (m *mockUpstream) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	return m.loginResp, m.loginErr
}

func (m *mockUpstream) Signup(ctx context.Context, email, password, inviteToken, name string) (*api.AuthResponse, error) {
	return m.signupResp, m.signupErr
}

func (m *mockUpstream) Profile(ctx context.Context, token string) (*model.User, error) {
	m.profileCalls++
	return m.profileUser, m.profileErr
}

type memStore struct {
	mu   sync.Mutex
	sess *model.Session
}

func (s *memStore) Read(ctx context.Context) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

func (s *memStore) Write(ctx context.Context, sess *model.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
}

func expiringToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	partner := &model.User{Email: "p@x.com", Role: model.RolePartner, PartnerID: "LZ001"}

	t.Run("success authenticates and persists", func(t *testing.T) {
		tok := expiringToken(t, time.Hour)
		upstream := &mockUpstream{loginResp: &api.AuthResponse{Token: tok, User: partner}}
		store := &memStore{}
		m := NewManager(upstream, store)

		sess, err := m.Login(ctx, "p@x.com", "secret")
		require.NoError(t, err)

		assert.True(t, m.IsAuthenticated())
		assert.Equal(t, model.RolePartner, m.User().Role)
		assert.Equal(t, tok, m.Token())
		require.NotNil(t, sess.ExpiresAt)
		require.NotNil(t, store.sess)
		assert.Equal(t, tok, store.sess.Token)
	})

	t.Run("upstream error leaves manager logged out", func(t *testing.T) {
		upstream := &mockUpstream{loginErr: apperrors.UpstreamStatus(400, "Invalid credentials")}
		m := NewManager(upstream, &memStore{})

		_, err := m.Login(ctx, "p@x.com", "wrong")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials")
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("2xx payload missing token is rejected", func(t *testing.T) {
		upstream := &mockUpstream{loginResp: &api.AuthResponse{User: partner}}
		m := NewManager(upstream, &memStore{})

		_, err := m.Login(ctx, "p@x.com", "secret")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeMalformedResponse, apperrors.GetCode(err))
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("2xx payload missing user is rejected", func(t *testing.T) {
		upstream := &mockUpstream{loginResp: &api.AuthResponse{Token: "tok"}}
		m := NewManager(upstream, &memStore{})

		_, err := m.Login(ctx, "p@x.com", "secret")
		require.Error(t, err)
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("expired token is not authenticated", func(t *testing.T) {
		tok := expiringToken(t, -time.Minute)
		upstream := &mockUpstream{loginResp: &api.AuthResponse{Token: tok, User: partner}}
		m := NewManager(upstream, &memStore{})

		_, err := m.Login(ctx, "p@x.com", "secret")
		require.NoError(t, err)

		assert.False(t, m.IsAuthenticated())
	})

	t.Run("role listener fires on login", func(t *testing.T) {
		upstream := &mockUpstream{loginResp: &api.AuthResponse{
			Token: "tok",
			User:  &model.User{Email: "a@x.com", Role: model.RoleAdmin},
		}}
		m := NewManager(upstream, &memStore{})

		var roles []model.Role
		m.SetRoleListener(func(role model.Role) { roles = append(roles, role) })

		_, err := m.Login(ctx, "a@x.com", "secret")
		require.NoError(t, err)
		m.Logout(ctx)

		assert.Equal(t, []model.Role{model.RoleAdmin, ""}, roles)
	})
}

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("reflects the session role", func(t *testing.T) {
		upstream := &mockUpstream{loginResp: &api.AuthResponse{
			Token: "tok",
			User:  &model.User{Email: "a@x.com", Role: model.RoleAdmin},
		}}
		m := NewManager(upstream, &memStore{})

		assert.False(t, m.IsAdmin())

		_, err := m.Login(ctx, "a@x.com", "secret")
		require.NoError(t, err)
		assert.True(t, m.IsAdmin())

		m.Logout(ctx)
		assert.False(t, m.IsAdmin())
	})

	t.Run("partner session is not admin", func(t *testing.T) {
		upstream := &mockUpstream{loginResp: &api.AuthResponse{
			Token: "tok",
			User:  &model.User{Email: "p@x.com", Role: model.RolePartner, PartnerID: "LZ001"},
		}}
		m := NewManager(upstream, &memStore{})

		_, err := m.Login(ctx, "p@x.com", "secret")
		require.NoError(t, err)
		assert.False(t, m.IsAdmin())
	})
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("redeems invite and authenticates", func(t *testing.T) {
		upstream := &mockUpstream{signupResp: &api.AuthResponse{
			Token: "tok",
			User:  &model.User{Email: "new@x.com", Role: model.RolePartner, PartnerID: "LZ002"},
		}}
		m := NewManager(upstream, &memStore{})

		sess, err := m.Signup(ctx, "new@x.com", "secret", "invite-token", "New Partner")
		require.NoError(t, err)
		assert.Equal(t, "LZ002", sess.User.PartnerID)
		assert.True(t, m.IsAuthenticated())
	})
}

func TestHydrate(t *testing.T) {
	ctx := context.Background()
	partner := &model.User{Email: "p@x.com", Role: model.RolePartner, PartnerID: "LZ001"}

	t.Run("no stored session settles without network call", func(t *testing.T) {
		upstream := &mockUpstream{}
		m := NewManager(upstream, &memStore{})

		assert.True(t, m.Loading())
		m.Hydrate(ctx)

		assert.False(t, m.Loading())
		assert.False(t, m.IsAuthenticated())
		assert.Zero(t, upstream.profileCalls)
	})

	t.Run("stored session is reconciled against profile", func(t *testing.T) {
		fresh := &model.User{Email: "p@x.com", Role: model.RolePartner, PartnerID: "LZ001", Name: "Renamed"}
		upstream := &mockUpstream{profileUser: fresh}
		store := &memStore{sess: &model.Session{Token: "tok", User: partner}}
		m := NewManager(upstream, store)

		m.Hydrate(ctx)

		assert.True(t, m.IsAuthenticated())
		assert.Equal(t, 1, upstream.profileCalls)
		assert.Equal(t, "Renamed", m.User().Name)
		assert.False(t, m.CheckingProfile())
	})

	t.Run("profile failure clears memory and store", func(t *testing.T) {
		upstream := &mockUpstream{profileErr: apperrors.Unauthorized("Token revoked")}
		store := &memStore{sess: &model.Session{Token: "tok", User: partner}}
		m := NewManager(upstream, store)

		m.Hydrate(ctx)

		assert.False(t, m.IsAuthenticated())
		assert.Nil(t, store.sess)
		assert.False(t, m.Loading())
	})

	t.Run("hydrate runs the listener with the restored role", func(t *testing.T) {
		upstream := &mockUpstream{profileUser: &model.User{Email: "a@x.com", Role: model.RoleAdmin}}
		store := &memStore{sess: &model.Session{Token: "tok", User: &model.User{Email: "a@x.com", Role: model.RoleAdmin}}}
		m := NewManager(upstream, store)

		var got model.Role
		m.SetRoleListener(func(role model.Role) { got = role })
		m.Hydrate(ctx)

		assert.Equal(t, model.RoleAdmin, got)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears state and is idempotent", func(t *testing.T) {
		upstream := &mockUpstream{loginResp: &api.AuthResponse{
			Token: "tok",
			User:  &model.User{Email: "p@x.com", Role: model.RolePartner},
		}}
		store := &memStore{}
		m := NewManager(upstream, store)

		_, err := m.Login(ctx, "p@x.com", "secret")
		require.NoError(t, err)

		m.Logout(ctx)
		m.Logout(ctx)

		assert.False(t, m.IsAuthenticated())
		assert.Empty(t, m.Token())
		assert.Nil(t, store.sess)
	})
}
