package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zabava/dashboard-go/internal/config"
	"github.com/zabava/dashboard-go/internal/model"
	"github.com/zabava/dashboard-go/internal/token"
)

// SessionStore persists the operator session under a single key. The copy
// here is a cache; auth.Manager's in-memory session is authoritative while
// the process lives.
type SessionStore struct {
	kv  KV
	key string
}

func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv, key: config.SessionStorageKey}
}

// Read restores the persisted session. Returns nil when nothing is stored,
// the record is corrupt, or it is missing a token. A token carrying a past
// exp claim deletes the record and returns nil; a decodable exp in the
// future is surfaced as the session's ExpiresAt. Tokens without an exp are
// valid indefinitely client-side, the backend enforces real expiry.
func (s *SessionStore) Read(ctx context.Context) *model.Session {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		log.Warn().Err(err).Msg("session store read failed")
		return nil
	}
	if raw == "" {
		return nil
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		log.Warn().Err(err).Msg("stored session is corrupt, discarding")
		s.delete(ctx)
		return nil
	}
	if sess.Token == "" {
		s.delete(ctx)
		return nil
	}

	claims := token.DecodeClaims(sess.Token)
	if exp := token.ExpiresAt(claims); !exp.IsZero() {
		if !time.Now().Before(exp) {
			log.Info().Time("expiredAt", exp).Msg("stored session expired, discarding")
			s.delete(ctx)
			return nil
		}
		sess.ExpiresAt = &exp
	}

	return &sess
}

// Write persists the session, or deletes the key when sess is nil.
// Persistence is best-effort: failures are logged, never propagated.
func (s *SessionStore) Write(ctx context.Context, sess *model.Session) {
	if sess == nil {
		s.delete(ctx)
		return
	}

	data, err := json.Marshal(sess)
	if err != nil {
		log.Error().Err(err).Msg("session store marshal failed")
		return
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		log.Error().Err(err).Msg("session store write failed")
	}
}

func (s *SessionStore) delete(ctx context.Context) {
	if err := s.kv.Del(ctx, s.key); err != nil {
		log.Warn().Err(err).Msg("session store delete failed")
	}
}
