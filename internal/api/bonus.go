package api

import (
	"context"
	"net/http"

	"github.com/zabava/dashboard-go/internal/model"
)

// Public bonus endpoints, no bearer token.

type redeemRequest struct {
	Email    string `json:"email"`
	RewardID string `json:"rewardId"`
}

// RedeemResult mirrors the upstream redemption confirmation.
type RedeemResult struct {
	Code            string `json:"code"`
	RewardName      string `json:"rewardName,omitempty"`
	RemainingPoints int    `json:"remainingPoints"`
}

func (c *Client) UserPoints(ctx context.Context, email string) (*model.BonusPoints, error) {
	var resp model.BonusPoints
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/api/bonus/user-points",
		query:  map[string]string{"email": email},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RedeemReward(ctx context.Context, email, rewardID string) (*RedeemResult, error) {
	var resp RedeemResult
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/api/bonus/redeem-reward",
		body:   redeemRequest{Email: email, RewardID: rewardID},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
