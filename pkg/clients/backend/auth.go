package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates against the backend. The endpoint expects a
// form-encoded body (OAuth2 password flow), not JSON. On success the token is
// held by the client and attached to every subsequent request.
func (c *Client) Login(ctx context.Context, username, password string) error {
	out := new(tokenResponse)
	apiErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"username": username,
			"password": password,
		}).
		SetResult(out).
		SetError(apiErr).
		Post("/api/auth/login")
	if err := c.wrap(resp, err, "/api/auth/login"); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if out.AccessToken == "" {
		return fmt.Errorf("login: %w: empty access token in response", ErrAuth)
	}

	c.storeToken(out.AccessToken)
	return nil
}

// RestoreToken installs a previously issued token, e.g. one persisted in a
// browser cookie across web client restarts. An already-expired token is
// rejected so the caller can redirect to login immediately.
func (c *Client) RestoreToken(token string) error {
	exp := tokenExpiry(token)
	if !exp.IsZero() && time.Now().After(exp) {
		return fmt.Errorf("restore token: %w: token expired", ErrAuth)
	}

	c.mu.Lock()
	c.token = token
	c.tokenExp = exp
	c.mu.Unlock()
	return nil
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	out := new(User)
	if err := c.get(ctx, "/api/auth/me", nil, out); err != nil {
		return nil, fmt.Errorf("fetching current user: %w", err)
	}
	return out, nil
}

// User is the backend account behind the bearer token.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (c *Client) storeToken(token string) {
	exp := tokenExpiry(token)

	c.mu.Lock()
	c.token = token
	c.tokenExp = exp
	c.mu.Unlock()
}

// tokenExpiry extracts the exp claim without verifying the signature. The
// client has no signing key and does not need one; verification is the
// backend's job. A token without a readable expiry is kept until the backend
// rejects it with a 401.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
