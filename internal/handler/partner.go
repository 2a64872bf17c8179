package handler

import (
	"context"
	"net/http"

	"github.com/zabava/dashboard-go/internal/api"
	"github.com/zabava/dashboard-go/internal/audit"
	"github.com/zabava/dashboard-go/internal/auth"
	apperrors "github.com/zabava/dashboard-go/internal/errors"
	"github.com/zabava/dashboard-go/internal/fetch"
	"github.com/zabava/dashboard-go/internal/metrics"
	"github.com/zabava/dashboard-go/internal/model"
)

type PartnerHandler struct {
	client   *api.Client
	manager  *auth.Manager
	recorder *audit.Recorder
}

func NewPartnerHandler(client *api.Client, manager *auth.Manager, recorder *audit.Recorder) *PartnerHandler {
	return &PartnerHandler{client: client, manager: manager, recorder: recorder}
}

// newOverviewFetcher builds a fetcher scoped to one dashboard request. Each
// request is its own view: concurrent requests must not supersede each other,
// so the fetcher is never shared across them. A 401 still tears down the
// shared session.
func (h *PartnerHandler) newOverviewFetcher() *fetch.Fetcher[*api.PartnerOverview] {
	return fetch.New(
		func(ctx context.Context, partnerID, token string) (*api.PartnerOverview, error) {
			return h.client.PartnerOverview(ctx, token, partnerID)
		},
		func() { h.manager.Logout(context.Background()) },
	)
}

// Dashboard serves the partner view: the latest submission snapshot with
// derived totals and the per-day series. Admins may inspect any partner via
// the partnerId query parameter.
func (h *PartnerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := h.manager.User()
	if user == nil {
		writeError(w, apperrors.Unauthorized("Not logged in"))
		return
	}

	partnerID := user.PartnerID
	if user.Role == model.RoleAdmin {
		if id := r.URL.Query().Get("partnerId"); id != "" {
			partnerID = id
		}
	}
	if partnerID == "" {
		writeError(w, apperrors.MissingRequired("partnerId"))
		return
	}

	fetcher := h.newOverviewFetcher()
	defer fetcher.Close()

	if err := fetcher.Fetch(r.Context(), partnerID, h.manager.Token()); err != nil {
		writeError(w, err)
		return
	}
	overview, ok := fetcher.Data()
	if !ok {
		writeError(w, apperrors.NotFound("partner overview"))
		return
	}

	submissions := metrics.SortNewestFirst(overview.Submissions)
	if query := r.URL.Query().Get("q"); query != "" {
		submissions = metrics.Search(submissions, query)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"partner":     overview.Partner,
		"submissions": submissions,
		"pending":     metrics.Pending(overview.Submissions),
		"totals":      metrics.Aggregate(overview.Submissions),
		"daily":       metrics.DailySeries(overview.Submissions),
		"lastUpdated": formatTime(overview.LastUpdated),
	})
}

type visitRequest struct {
	Email string `json:"email"`
}

func (h *PartnerHandler) MarkVisit(w http.ResponseWriter, r *http.Request) {
	user := h.manager.User()
	if user == nil {
		writeError(w, apperrors.Unauthorized("Not logged in"))
		return
	}

	var req visitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email == "" {
		writeError(w, apperrors.MissingRequired("email"))
		return
	}

	if err := h.client.MarkVisit(r.Context(), h.manager.Token(), req.Email, user.PartnerID); err != nil {
		writeError(w, err)
		return
	}

	h.recorder.RecordFromRequest(r, audit.Event{
		Type:      audit.EventVisitMarked,
		Actor:     user.Email,
		PartnerID: user.PartnerID,
		Details:   map[string]interface{}{"email": req.Email},
	})

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *PartnerHandler) CheckRedemption(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, apperrors.MissingRequired("code"))
		return
	}

	redemption, err := h.client.CheckRedemption(r.Context(), h.manager.Token(), code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, redemption)
}

type redemptionRequest struct {
	Code   string `json:"code"`
	Action string `json:"action"`
}

func (h *PartnerHandler) ProcessRedemption(w http.ResponseWriter, r *http.Request) {
	user := h.manager.User()
	if user == nil {
		writeError(w, apperrors.Unauthorized("Not logged in"))
		return
	}

	var req redemptionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Code == "" {
		writeError(w, apperrors.MissingRequired("code"))
		return
	}
	if req.Action != "process" && req.Action != "reject" {
		writeError(w, apperrors.InvalidInput("action", "must be process or reject"))
		return
	}

	if err := h.client.ProcessRedemption(r.Context(), h.manager.Token(), req.Code, req.Action); err != nil {
		writeError(w, err)
		return
	}

	eventType := audit.EventRedemptionApplied
	if req.Action == "reject" {
		eventType = audit.EventRedemptionRejected
	}
	h.recorder.RecordFromRequest(r, audit.Event{
		Type:      eventType,
		Actor:     user.Email,
		PartnerID: user.PartnerID,
		Details:   map[string]interface{}{"code": req.Code},
	})

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
