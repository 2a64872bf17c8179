// Package api is the single wrapper around the upstream Zabava REST backend.
// Every network call in the gateway goes through Client, so cancellation via
// context and unauthorized detection behave the same at all call sites.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zabava/dashboard-go/internal/config"
	apperrors "github.com/zabava/dashboard-go/internal/errors"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.Config
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: config.UpstreamTimeout,
		},
		cfg: cfg,
	}
}

type requestOptions struct {
	method string
	path   string
	query  map[string]string
	token  string
	admin  bool
	body   any
}

// errorBody is the upstream's error envelope. Bodies that fail to parse fall
// back to a generic message carrying the status code.
type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, opts requestOptions, out any) error {
	var reader io.Reader
	if opts.body != nil {
		data, err := json.Marshal(opts.body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	fullURL := c.cfg.APIURL(opts.path, opts.query)

	req, err := http.NewRequestWithContext(ctx, opts.method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if opts.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	if opts.admin && c.cfg.AdminSecret != "" {
		req.Header.Set("X-Admin-Secret", c.cfg.AdminSecret)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		log.Debug().
			Err(err).
			Str("method", opts.method).
			Str("path", opts.path).
			Dur("elapsed", elapsed).
			Msg("upstream request failed")
		return apperrors.Upstream(err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", opts.method).
		Str("path", opts.path).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("upstream request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body errorBody
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			body.Error = ""
		}
		return apperrors.UpstreamStatus(resp.StatusCode, body.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.MalformedResponse("invalid JSON").WithCause(err)
	}

	return nil
}

// doRaw issues a request and returns the raw response body, used for the CSV
// analytics export passthrough.
func (c *Client) doRaw(ctx context.Context, opts requestOptions) ([]byte, string, error) {
	fullURL := c.cfg.APIURL(opts.path, opts.query)

	req, err := http.NewRequestWithContext(ctx, opts.method, fullURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	if opts.admin && c.cfg.AdminSecret != "" {
		req.Header.Set("X-Admin-Secret", c.cfg.AdminSecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", apperrors.Upstream(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body errorBody
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			body.Error = ""
		}
		return nil, "", apperrors.UpstreamStatus(resp.StatusCode, body.Error)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", apperrors.Upstream(err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}
