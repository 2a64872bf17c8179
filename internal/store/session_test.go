package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zabava/dashboard-go/internal/config"
	"github.com/zabava/dashboard-go/internal/model"
)

type fakeKV struct {
	data   map[string]string
	getErr error
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.data[key], nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func storeSession(t *testing.T, kv *fakeKV, sess model.Session) {
	t.Helper()
	data, err := json.Marshal(sess)
	require.NoError(t, err)
	kv.data[config.SessionStorageKey] = string(data)
}

func TestSessionStoreRead(t *testing.T) {
	ctx := context.Background()
	user := &model.User{Email: "p@x.com", Role: model.RolePartner, PartnerID: "LZ001"}

	t.Run("returns nil when nothing stored", func(t *testing.T) {
		s := NewSessionStore(newFakeKV())
		assert.Nil(t, s.Read(ctx))
	})

	t.Run("returns nil and deletes on corrupt json", func(t *testing.T) {
		kv := newFakeKV()
		kv.data[config.SessionStorageKey] = "{not json"
		s := NewSessionStore(kv)

		assert.Nil(t, s.Read(ctx))
		assert.Empty(t, kv.data[config.SessionStorageKey])
	})

	t.Run("returns nil and deletes when token missing", func(t *testing.T) {
		kv := newFakeKV()
		storeSession(t, kv, model.Session{User: user})
		s := NewSessionStore(kv)

		assert.Nil(t, s.Read(ctx))
		assert.Empty(t, kv.data[config.SessionStorageKey])
	})

	t.Run("expired token is discarded and key cleared", func(t *testing.T) {
		kv := newFakeKV()
		tok := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-10 * time.Second).Unix()})
		storeSession(t, kv, model.Session{Token: tok, User: user})
		s := NewSessionStore(kv)

		assert.Nil(t, s.Read(ctx))
		assert.Empty(t, kv.data[config.SessionStorageKey])
	})

	t.Run("valid token is returned with computed expiry", func(t *testing.T) {
		kv := newFakeKV()
		exp := time.Now().Add(time.Hour)
		tok := signedToken(t, jwt.MapClaims{"exp": exp.Unix()})
		storeSession(t, kv, model.Session{Token: tok, User: user})
		s := NewSessionStore(kv)

		sess := s.Read(ctx)
		require.NotNil(t, sess)
		assert.Equal(t, tok, sess.Token)
		assert.Equal(t, "p@x.com", sess.User.Email)
		require.NotNil(t, sess.ExpiresAt)
		assert.Equal(t, exp.Unix(), sess.ExpiresAt.Unix())
	})

	t.Run("token without exp is valid indefinitely", func(t *testing.T) {
		kv := newFakeKV()
		tok := signedToken(t, jwt.MapClaims{"email": "p@x.com"})
		storeSession(t, kv, model.Session{Token: tok, User: user})
		s := NewSessionStore(kv)

		sess := s.Read(ctx)
		require.NotNil(t, sess)
		assert.Nil(t, sess.ExpiresAt)
	})

	t.Run("opaque non-jwt token is kept", func(t *testing.T) {
		kv := newFakeKV()
		storeSession(t, kv, model.Session{Token: "opaque-token", User: user})
		s := NewSessionStore(kv)

		sess := s.Read(ctx)
		require.NotNil(t, sess)
		assert.Equal(t, "opaque-token", sess.Token)
	})

	t.Run("storage error degrades to no session", func(t *testing.T) {
		kv := newFakeKV()
		kv.getErr = errors.New("redis down")
		s := NewSessionStore(kv)

		assert.Nil(t, s.Read(ctx))
	})
}

func TestSessionStoreWrite(t *testing.T) {
	ctx := context.Background()
	user := &model.User{Email: "p@x.com", Role: model.RolePartner}

	t.Run("persists session round trip", func(t *testing.T) {
		kv := newFakeKV()
		s := NewSessionStore(kv)

		s.Write(ctx, &model.Session{Token: "opaque-token", User: user})

		sess := s.Read(ctx)
		require.NotNil(t, sess)
		assert.Equal(t, "opaque-token", sess.Token)
	})

	t.Run("nil session deletes the key", func(t *testing.T) {
		kv := newFakeKV()
		s := NewSessionStore(kv)
		s.Write(ctx, &model.Session{Token: "opaque-token", User: user})

		s.Write(ctx, nil)

		assert.Empty(t, kv.data[config.SessionStorageKey])
	})

	t.Run("write failure is swallowed", func(t *testing.T) {
		kv := newFakeKV()
		kv.setErr = errors.New("quota exceeded")
		s := NewSessionStore(kv)

		s.Write(ctx, &model.Session{Token: "opaque-token", User: user})

		assert.Empty(t, kv.data[config.SessionStorageKey])
	})
}
