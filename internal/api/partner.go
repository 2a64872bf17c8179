package api

import (
	"context"
	"net/http"
	"time"

	apperrors "github.com/zabava/dashboard-go/internal/errors"
	"github.com/zabava/dashboard-go/internal/model"
)

// PartnerOverview is the upstream snapshot for one partner: the partner
// record plus its denormalized submission list.
type PartnerOverview struct {
	Partner     *model.Partner           `json:"partner,omitempty"`
	Submissions []model.SubmissionRecord `json:"submissions"`
	LastUpdated *time.Time               `json:"lastUpdated,omitempty"`
}

type visitRequest struct {
	Email     string `json:"email"`
	PartnerID string `json:"partnerId"`
}

type redemptionActionRequest struct {
	Code   string `json:"code"`
	Action string `json:"action"`
}

func (c *Client) PartnerOverview(ctx context.Context, token, partnerID string) (*PartnerOverview, error) {
	var resp PartnerOverview
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/api/partner/" + partnerID,
		token:  token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// MarkVisit flips the visited flag on a submission; the caller re-fetches the
// overview afterwards rather than patching its local copy.
func (c *Client) MarkVisit(ctx context.Context, token, email, partnerID string) error {
	return c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/api/partner/visit",
		token:  token,
		body:   visitRequest{Email: email, PartnerID: partnerID},
	}, nil)
}

func (c *Client) CheckRedemption(ctx context.Context, token, code string) (*model.Redemption, error) {
	var resp model.Redemption
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/api/partner/check-redemption",
		query:  map[string]string{"code": code},
		token:  token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Code == "" {
		return nil, apperrors.MalformedResponse("redemption response missing code")
	}
	return &resp, nil
}

// ProcessRedemption applies or rejects a redemption code. Action must be
// "process" or "reject".
func (c *Client) ProcessRedemption(ctx context.Context, token, code, action string) error {
	return c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/api/partner/check-redemption",
		token:  token,
		body:   redemptionActionRequest{Code: code, Action: action},
	}, nil)
}
