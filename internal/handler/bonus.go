package handler

import (
	"net/http"
	"strings"

	"github.com/zabava/dashboard-go/internal/api"
	apperrors "github.com/zabava/dashboard-go/internal/errors"
)

// BonusHandler fronts the public reward endpoints. No session required; the
// router applies per-IP rate limiting instead.
type BonusHandler struct {
	client *api.Client
}

func NewBonusHandler(client *api.Client) *BonusHandler {
	return &BonusHandler{client: client}
}

func (h *BonusHandler) Points(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, apperrors.MissingRequired("email"))
		return
	}

	points, err := h.client.UserPoints(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

type redeemRequest struct {
	Email    string `json:"email"`
	RewardID string `json:"rewardId"`
}

func (h *BonusHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email == "" {
		writeError(w, apperrors.MissingRequired("email"))
		return
	}
	if req.RewardID == "" {
		writeError(w, apperrors.MissingRequired("rewardId"))
		return
	}

	result, err := h.client.RedeemReward(r.Context(), req.Email, req.RewardID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
