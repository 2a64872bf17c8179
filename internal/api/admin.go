package api

import (
	"context"
	"net/http"

	"github.com/zabava/dashboard-go/internal/model"
)

// Admin endpoints are bearer-authenticated and additionally gated upstream by
// the X-Admin-Secret header attached in do.

func (c *Client) AdminOverview(ctx context.Context, token string) (*model.AdminOverview, error) {
	var resp model.AdminOverview
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/api/admin/overview",
		token:  token,
		admin:  true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AdminAnalytics(ctx context.Context, token, mode string) (*model.AnalyticsSummary, error) {
	var resp model.AnalyticsSummary
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/api/admin/analytics",
		query:  map[string]string{"mode": mode},
		token:  token,
		admin:  true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportAnalytics returns the raw CSV export and its content type.
func (c *Client) ExportAnalytics(ctx context.Context, token string) ([]byte, string, error) {
	return c.doRaw(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/api/admin/analytics",
		query:  map[string]string{"mode": "export"},
		token:  token,
		admin:  true,
	})
}

func (c *Client) Partners(ctx context.Context, token string) ([]model.Partner, error) {
	var resp []model.Partner
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/api/admin/partners",
		token:  token,
		admin:  true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) UpdatePartner(ctx context.Context, token, partnerID string, params model.UpdatePartnerParams) (*model.Partner, error) {
	var resp model.Partner
	err := c.do(ctx, requestOptions{
		method: http.MethodPut,
		path:   "/api/admin/partners/" + partnerID,
		token:  token,
		admin:  true,
		body:   params,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Invites(ctx context.Context, token string) ([]model.Invite, error) {
	var resp []model.Invite
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/api/admin/invites",
		token:  token,
		admin:  true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) CreateInvite(ctx context.Context, token string, params model.CreateInviteParams) (*model.Invite, error) {
	var resp model.Invite
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/api/admin/invites",
		token:  token,
		admin:  true,
		body:   params,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Rewards(ctx context.Context, token string) ([]model.Reward, error) {
	var resp []model.Reward
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/api/admin/rewards",
		token:  token,
		admin:  true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) CreateReward(ctx context.Context, token string, params model.RewardParams) (*model.Reward, error) {
	var resp model.Reward
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/api/admin/rewards",
		token:  token,
		admin:  true,
		body:   params,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateReward(ctx context.Context, token, rewardID string, params model.RewardParams) (*model.Reward, error) {
	var resp model.Reward
	err := c.do(ctx, requestOptions{
		method: http.MethodPut,
		path:   "/api/admin/rewards/" + rewardID,
		token:  token,
		admin:  true,
		body:   params,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteReward(ctx context.Context, token, rewardID string) error {
	return c.do(ctx, requestOptions{
		method: http.MethodDelete,
		path:   "/api/admin/rewards/" + rewardID,
		token:  token,
		admin:  true,
	}, nil)
}
