package handler

import (
	"net/http"

	"github.com/zabava/dashboard-go/internal/audit"
	"github.com/zabava/dashboard-go/internal/auth"
	apperrors "github.com/zabava/dashboard-go/internal/errors"
	"github.com/zabava/dashboard-go/internal/model"
)

type AuthHandler struct {
	manager  *auth.Manager
	recorder *audit.Recorder
}

func NewAuthHandler(manager *auth.Manager, recorder *audit.Recorder) *AuthHandler {
	return &AuthHandler{manager: manager, recorder: recorder}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token"`
	Name     string `json:"name,omitempty"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email == "" {
		writeError(w, apperrors.MissingRequired("email"))
		return
	}
	if req.Password == "" {
		writeError(w, apperrors.MissingRequired("password"))
		return
	}

	sess, err := h.manager.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.recorder.RecordFromRequest(r, audit.Event{
			Type:  audit.EventLoginFailure,
			Actor: req.Email,
		})
		writeError(w, err)
		return
	}

	h.recorder.RecordFromRequest(r, audit.Event{
		Type:      audit.EventLoginSuccess,
		Actor:     sess.User.Email,
		PartnerID: sess.User.PartnerID,
		Details:   map[string]interface{}{"role": string(sess.User.Role)},
	})

	writeJSON(w, http.StatusOK, sessionPayload(sess))
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email == "" {
		writeError(w, apperrors.MissingRequired("email"))
		return
	}
	if req.Password == "" {
		writeError(w, apperrors.MissingRequired("password"))
		return
	}
	if req.Token == "" {
		writeError(w, apperrors.MissingRequired("token"))
		return
	}

	sess, err := h.manager.Signup(r.Context(), req.Email, req.Password, req.Token, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	h.recorder.RecordFromRequest(r, audit.Event{
		Type:      audit.EventSignup,
		Actor:     sess.User.Email,
		PartnerID: sess.User.PartnerID,
	})

	writeJSON(w, http.StatusOK, sessionPayload(sess))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	actor := ""
	if user := h.manager.User(); user != nil {
		actor = user.Email
	}

	h.manager.Logout(r.Context())

	if actor != "" {
		h.recorder.RecordFromRequest(r, audit.Event{Type: audit.EventLogout, Actor: actor})
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Session reports the current auth state, the dashboard's boot query.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"authenticated": h.manager.IsAuthenticated(),
		"loading":       h.manager.Loading(),
	}
	if user := h.manager.User(); user != nil {
		resp["user"] = user
	}
	writeJSON(w, http.StatusOK, resp)
}

func sessionPayload(sess *model.Session) map[string]any {
	return map[string]any{
		"user":      sess.User,
		"expiresAt": formatTime(sess.ExpiresAt),
	}
}
