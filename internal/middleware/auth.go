package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/zabava/dashboard-go/internal/model"
)

// Session exposes the gateway's operator session; satisfied by auth.Manager.
type Session interface {
	IsAuthenticated() bool
	User() *model.User
}

type SessionGate struct {
	session Session
}

func NewSessionGate(session Session) *SessionGate {
	return &SessionGate{session: session}
}

// RequireSession rejects requests while the gateway is logged out.
func (g *SessionGate) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.session.IsAuthenticated() {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Not logged in",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects sessions without the admin role.
func (g *SessionGate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := g.session.User()
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Not logged in",
			})
			return
		}
		if user.Role != model.RoleAdmin {
			log.Warn().Str("email", user.Email).Str("path", r.URL.Path).Msg("admin route denied")
			writeJSON(w, http.StatusForbidden, map[string]string{
				"error": "Admin role required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
