package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/zabava/dashboard-go/internal/errors"
	"github.com/zabava/dashboard-go/internal/notify"
)

type NotificationsHandler struct {
	center *notify.Center
}

func NewNotificationsHandler(center *notify.Center) *NotificationsHandler {
	return &NotificationsHandler{center: center}
}

func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": h.center.List(),
		"unreadCount":   h.center.UnreadCount(),
	})
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.center.MarkRead(r.Context(), id) {
		writeError(w, apperrors.NotFound("notification"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.center.MarkAllRead(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *NotificationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.center.Delete(r.Context(), id) {
		writeError(w, apperrors.NotFound("notification"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *NotificationsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.center.Clear(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
