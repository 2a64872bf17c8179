package model

import (
	"time"
)

type User struct {
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	PartnerID string `json:"partnerId,omitempty"`
	Name      string `json:"name,omitempty"`
}

// Session is the operator's authenticated state against the upstream Zabava
// backend. The in-memory copy owned by auth.Manager is authoritative; the
// persisted copy is a cache restored at startup.
type Session struct {
	Token     string     `json:"token"`
	User      *User      `json:"user"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Valid reports whether the session carries a token and user, and (when the
// token had an exp claim) has not passed its client-side expiry hint.
func (s *Session) Valid() bool {
	if s == nil || s.Token == "" || s.User == nil {
		return false
	}
	if s.ExpiresAt != nil && !time.Now().Before(*s.ExpiresAt) {
		return false
	}
	return true
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.User != nil && s.User.Role == RoleAdmin
}
