package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-storefront"
)

const (
	pathSignup   = "/users/signup"
	pathLogin    = "/users/login"
	pathLogout   = "/users/logout"
	pathMe       = "/users/me"
	pathUpdateMe = "/users/updateMe"

	headerRequestID = "X-Request-ID"
	defaultTimeout  = 30 * time.Second
)

// Config holds API client configuration.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Debug      bool
	Tokens     storefront.TokenSource
	HTTPClient *http.Client
	Logger     storefront.Logger
}

// Client implements storefront.API over HTTP+JSON.
type Client struct {
	config     Config
	baseURL    string
	httpClient *http.Client
	logger     storefront.Logger
}

var _ storefront.API = (*Client)(nil)

// New creates a new API client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = storefront.NopLogger{}
	}

	return &Client{
		config:     cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: client,
		logger:     logger,
	}
}

// Signup implements storefront.API.
func (c *Client) Signup(ctx context.Context, payload storefront.SignupPayload) (*storefront.AuthResponse, error) {
	var out authEnvelope
	if err := c.do(ctx, http.MethodPost, pathSignup, payload, &out); err != nil {
		return nil, err
	}
	return out.response(), nil
}

// Login implements storefront.API.
func (c *Client) Login(ctx context.Context, credentials storefront.Credentials) (*storefront.AuthResponse, error) {
	var out authEnvelope
	if err := c.do(ctx, http.MethodPost, pathLogin, credentials, &out); err != nil {
		return nil, err
	}
	return out.response(), nil
}

// Logout implements storefront.API.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, pathLogout, nil, nil)
}

// Me implements storefront.API.
func (c *Client) Me(ctx context.Context) (*storefront.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodGet, pathMe, nil, &out); err != nil {
		return nil, err
	}
	return out.Data.User, nil
}

// UpdateMe implements storefront.API.
func (c *Client) UpdateMe(ctx context.Context, update storefront.ProfileUpdate) (*storefront.User, error) {
	var out userEnvelope
	if err := c.do(ctx, http.MethodPatch, pathUpdateMe, update, &out); err != nil {
		return nil, err
	}
	return out.Data.User, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("apiclient: encode %s body: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return storefront.TransportError(err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := storefront.RequestIDFromContext(ctx); ok {
		req.Header.Set(headerRequestID, id)
	}
	c.authorize(ctx, req)

	if c.config.Debug {
		c.logger.Debug("api request", "method", method, "path", path, "body", print.MaybePrettyJSON(redact(in)))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return storefront.TransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return storefront.TransportError(err)
	}

	if c.config.Debug {
		c.logger.Debug("api response", "method", method, "path", path, "status", resp.StatusCode, "body", string(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "invalid response body").
			WithMetadata(map[string]any{"path": path, "status": resp.StatusCode})
	}

	return nil
}

// authorize attaches the stored bearer token. A storage failure sends the
// request anonymously.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.config.Tokens == nil {
		return
	}

	token, err := c.config.Tokens.Get(ctx)
	if err != nil {
		c.logger.Warn("apiclient could not read token", "error", err)
		return
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func redact(in any) any {
	switch v := in.(type) {
	case storefront.SignupPayload:
		v.Password = "[REDACTED]"
		v.PasswordConfirm = "[REDACTED]"
		return v
	case storefront.Credentials:
		v.Password = "[REDACTED]"
		return v
	default:
		return in
	}
}
