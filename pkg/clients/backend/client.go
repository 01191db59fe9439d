// Package backend is the resty-backed client for the inventory backend REST
// API. It owns the bearer token, maps backend errors onto the client error
// taxonomy, and exposes one typed method per endpoint. All business rules
// (uniqueness, referential integrity, session lifecycle) are enforced
// server-side; this client only shapes requests and responses.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ntarasov/equiptrack/internal/config"
)

// Client talks to the inventory backend over HTTP.
type Client struct {
	http   *resty.Client
	logger *zap.Logger

	mu       sync.RWMutex
	token    string
	tokenExp time.Time

	onAuthExpired func()
}

// New builds a backend client from the provided configuration values.
func New(cfg config.BackendConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{logger: logger}

	rc := resty.New()
	rc.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		if tok := c.Token(); tok != "" {
			req.SetHeader("Authorization", "Bearer "+tok)
		}
		return nil
	})

	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == http.StatusUnauthorized {
			c.expireAuth()
		}
		return nil
	})

	c.http = rc
	return c
}

// OnAuthExpired registers the callback fired once whenever a held token stops
// being accepted (a 401 response or a passed expiry). The web layer uses it
// to force logout and redirect to the login view.
func (c *Client) OnAuthExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthExpired = fn
}

// Token returns the currently held access token, or "" when logged out or
// the token is past its recorded expiry.
func (c *Client) Token() string {
	c.mu.RLock()
	token := c.token
	exp := c.tokenExp
	c.mu.RUnlock()

	if token != "" && !exp.IsZero() && time.Now().After(exp) {
		c.logger.Info("access token expired, forcing re-login")
		c.expireAuth()
		return ""
	}
	return token
}

// Authenticated reports whether a usable token is held.
func (c *Client) Authenticated() bool {
	return c.Token() != ""
}

// ClearToken drops the held token without firing the expiry callback.
// Used for explicit logout.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.tokenExp = time.Time{}
}

// expireAuth drops the token and fires the registered callback. A no-op when
// no token is held, so a failed login does not trigger a forced logout.
func (c *Client) expireAuth() {
	c.mu.Lock()
	hadToken := c.token != ""
	c.token = ""
	c.tokenExp = time.Time{}
	fn := c.onAuthExpired
	c.mu.Unlock()

	if hadToken && fn != nil {
		fn()
	}
}

// Ping probes backend reachability for the connection self-test and reports
// the round-trip latency.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	var out struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", nil, &out); err != nil {
		return 0, fmt.Errorf("pinging backend: %w", err)
	}
	return time.Since(start), nil
}

// get issues a GET request, decoding a 2xx body into out when out is non-nil.
func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	req := c.http.R().SetContext(ctx).SetError(&apiError{})
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Get(path)
	return c.wrap(resp, err, path)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	req := c.http.R().SetContext(ctx).SetError(&apiError{})
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Post(path)
	return c.wrap(resp, err, path)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	req := c.http.R().SetContext(ctx).SetError(&apiError{})
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Put(path)
	return c.wrap(resp, err, path)
}

func (c *Client) delete(ctx context.Context, path string) error {
	resp, err := c.http.R().SetContext(ctx).SetError(&apiError{}).Delete(path)
	return c.wrap(resp, err, path)
}

// wrap converts transport failures and non-2xx responses into taxonomy
// errors, preserving the backend's detail message.
func (c *Client) wrap(resp *resty.Response, err error, path string) error {
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	detail := ""
	if e, ok := resp.Error().(*apiError); ok && e != nil {
		detail = e.Detail
	}

	c.logger.Debug("backend rejected request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode()),
		zap.String("detail", detail))

	return &APIError{Status: resp.StatusCode(), Detail: detail}
}
