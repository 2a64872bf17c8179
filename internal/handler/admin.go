package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zabava/dashboard-go/internal/api"
	"github.com/zabava/dashboard-go/internal/audit"
	"github.com/zabava/dashboard-go/internal/auth"
	apperrors "github.com/zabava/dashboard-go/internal/errors"
	"github.com/zabava/dashboard-go/internal/model"
	"github.com/zabava/dashboard-go/internal/repository"
)

const activityPageSize = 50

type AdminHandler struct {
	client    *api.Client
	manager   *auth.Manager
	recorder  *audit.Recorder
	auditRepo repository.AuditRepository
}

func NewAdminHandler(client *api.Client, manager *auth.Manager, recorder *audit.Recorder, auditRepo repository.AuditRepository) *AdminHandler {
	return &AdminHandler{client: client, manager: manager, recorder: recorder, auditRepo: auditRepo}
}

func (h *AdminHandler) actor() string {
	if user := h.manager.User(); user != nil {
		return user.Email
	}
	return ""
}

func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.client.AdminOverview(r.Context(), h.manager.Token())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *AdminHandler) Partners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.client.Partners(r.Context(), h.manager.Token())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partners)
}

func (h *AdminHandler) UpdatePartner(w http.ResponseWriter, r *http.Request) {
	partnerID := chi.URLParam(r, "id")

	var params model.UpdatePartnerParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, err)
		return
	}

	partner, err := h.client.UpdatePartner(r.Context(), h.manager.Token(), partnerID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	h.recorder.RecordFromRequest(r, audit.Event{
		Type:      audit.EventPartnerUpdated,
		Actor:     h.actor(),
		PartnerID: partnerID,
	})

	writeJSON(w, http.StatusOK, partner)
}

func (h *AdminHandler) Invites(w http.ResponseWriter, r *http.Request) {
	invites, err := h.client.Invites(r.Context(), h.manager.Token())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invites)
}

func (h *AdminHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	var params model.CreateInviteParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, err)
		return
	}
	if params.Email == "" {
		writeError(w, apperrors.MissingRequired("email"))
		return
	}
	if params.PartnerID == "" {
		writeError(w, apperrors.MissingRequired("partnerId"))
		return
	}

	invite, err := h.client.CreateInvite(r.Context(), h.manager.Token(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	h.recorder.RecordFromRequest(r, audit.Event{
		Type:      audit.EventInviteCreated,
		Actor:     h.actor(),
		PartnerID: params.PartnerID,
		Details:   map[string]interface{}{"email": params.Email},
	})

	writeJSON(w, http.StatusCreated, invite)
}

func (h *AdminHandler) Rewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.client.Rewards(r.Context(), h.manager.Token())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rewards)
}

func (h *AdminHandler) CreateReward(w http.ResponseWriter, r *http.Request) {
	var params model.RewardParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, err)
		return
	}
	if params.Name == "" {
		writeError(w, apperrors.MissingRequired("name"))
		return
	}
	if params.PointsCost <= 0 {
		writeError(w, apperrors.InvalidInput("pointsCost", "must be positive"))
		return
	}

	reward, err := h.client.CreateReward(r.Context(), h.manager.Token(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	h.recorder.RecordFromRequest(r, audit.Event{
		Type:    audit.EventRewardCreated,
		Actor:   h.actor(),
		Details: map[string]interface{}{"name": params.Name},
	})

	writeJSON(w, http.StatusCreated, reward)
}

func (h *AdminHandler) UpdateReward(w http.ResponseWriter, r *http.Request) {
	rewardID := chi.URLParam(r, "id")

	var params model.RewardParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, err)
		return
	}

	reward, err := h.client.UpdateReward(r.Context(), h.manager.Token(), rewardID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	h.recorder.RecordFromRequest(r, audit.Event{
		Type:    audit.EventRewardUpdated,
		Actor:   h.actor(),
		Details: map[string]interface{}{"rewardId": rewardID},
	})

	writeJSON(w, http.StatusOK, reward)
}

func (h *AdminHandler) DeleteReward(w http.ResponseWriter, r *http.Request) {
	rewardID := chi.URLParam(r, "id")

	if err := h.client.DeleteReward(r.Context(), h.manager.Token(), rewardID); err != nil {
		writeError(w, err)
		return
	}

	h.recorder.RecordFromRequest(r, audit.Event{
		Type:    audit.EventRewardDeleted,
		Actor:   h.actor(),
		Details: map[string]interface{}{"rewardId": rewardID},
	})

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ExportAnalytics streams the upstream CSV export through unchanged.
func (h *AdminHandler) ExportAnalytics(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := h.client.ExportAnalytics(r.Context(), h.manager.Token())
	if err != nil {
		writeError(w, err)
		return
	}

	if contentType == "" {
		contentType = "text/csv"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="analytics-export.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Activity serves the gateway's own audit trail, optionally narrowed to one
// partner via the partnerId query parameter.
func (h *AdminHandler) Activity(w http.ResponseWriter, r *http.Request) {
	var (
		events []model.AuditEvent
		err    error
	)
	if partnerID := r.URL.Query().Get("partnerId"); partnerID != "" {
		events, err = h.auditRepo.ListByPartner(r.Context(), partnerID, activityPageSize)
	} else {
		events, err = h.auditRepo.ListRecent(r.Context(), activityPageSize)
	}
	if err != nil {
		writeError(w, apperrors.Database(err))
		return
	}
	writeJSON(w, http.StatusOK, events)
}
