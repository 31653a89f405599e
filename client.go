package telegraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

const maxResponseBytes = 10 << 20 // 10 MiB — prevent unbounded reads from API responses.

// Client is a thin HTTP wrapper around the Telegraph API. All methods
// issue at most one request and are safe for concurrent use: the only
// field mutated after construction is the access token, guarded by mu.
type Client struct {
	cfg  Config
	http *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a Telegraph API client from cfg. The zero Config
// yields an anonymous client against the public telegra.ph service.
func NewClient(cfg Config) (*Client, error) {
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.Timeout},
		token: cfg.AccessToken,
	}, nil
}

// AccessToken returns the access token the client currently holds.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// setToken swaps the client's access token. Used by CreateAccount
// (with ReplaceToken) and RevokeAccessToken.
func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// requireToken fails with *ValidationError when the client holds no
// access token. Called by account-scoped operations before any I/O.
func (c *Client) requireToken() error {
	if c.AccessToken() == "" {
		return &ValidationError{Field: "access_token", Reason: "required for this operation"}
	}
	return nil
}

// request sends one call to the given API method and returns the raw
// result payload from a successful envelope. httpMethod selects between
// a form-encoded POST body and GET query parameters. The access token
// is injected into params when the client holds one and the caller did
// not set it explicitly.
func (c *Client) request(ctx context.Context, httpMethod, apiMethod string, params url.Values) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	if token := c.AccessToken(); token != "" && params.Get("access_token") == "" {
		params.Set("access_token", token)
	}

	endpoint := c.cfg.BaseURL + "/" + apiMethod

	var req *http.Request
	var err error
	switch httpMethod {
	case http.MethodGet:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	default:
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("telegraph: create %s request: %w", apiMethod, err)
	}

	c.cfg.Logger.Debug("telegraph request", "method", apiMethod, "http_method", httpMethod)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegraph: %s request failed: %w", apiMethod, err)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("telegraph: read %s response: %w", apiMethod, err)
	}

	return decodeEnvelope(resp.StatusCode, body)
}

// decodeEnvelope decodes the {ok, result|error} wrapper. An ok=false
// envelope yields *APIError with the exact message the service sent; a
// non-2xx status without a decodable envelope yields *HTTPError;
// malformed JSON yields *DecodeError.
func decodeEnvelope(status int, body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if status < 200 || status > 299 {
			return nil, &HTTPError{Status: status}
		}
		return nil, &DecodeError{Detail: "envelope: " + err.Error()}
	}

	if !env.OK {
		if env.Error == "" && (status < 200 || status > 299) {
			return nil, &HTTPError{Status: status}
		}
		return nil, &APIError{Message: env.Error}
	}

	if len(env.Result) == 0 || string(env.Result) == "null" {
		return nil, &DecodeError{Field: "result"}
	}
	return env.Result, nil
}
