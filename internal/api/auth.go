package api

import (
	"context"
	"net/http"

	apperrors "github.com/zabava/dashboard-go/internal/errors"
	"github.com/zabava/dashboard-go/internal/model"
)

// AuthResponse is the upstream payload for login and signup.
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
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

type profileResponse struct {
	User *model.User `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Signup(ctx context.Context, email, password, inviteToken, name string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/api/auth/signup",
		body:   signupRequest{Email: email, Password: password, Token: inviteToken, Name: name},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile is the session reconciliation point: a stored token that looks
// unexpired may still have been revoked server-side.
func (c *Client) Profile(ctx context.Context, token string) (*model.User, error) {
	var resp profileResponse
	err := c.do(ctx, requestOptions{
		method: http.MethodGet,
		path:   "/api/auth/profile",
		token:  token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, apperrors.MalformedResponse("profile response missing user")
	}
	return resp.User, nil
}
