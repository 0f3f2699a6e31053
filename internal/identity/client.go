package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/medikita/platform/internal/config"
)

// ErrNotConfigured indicates the provider client cannot be built from the
// supplied configuration. Privileged paths must fail closed on it.
var ErrNotConfigured = errors.New("identity provider not configured")

// Client talks to the hosted identity provider (GoTrue-style REST API).
// All fields are immutable after construction; per-request state lives only
// in arguments, so concurrent requests cannot cross-contaminate sessions.
type Client struct {
	cfg  config.IdentityConfig
	http *http.Client
}

// NewClient validates configuration and builds the provider client.
func NewClient(cfg config.IdentityConfig) (*Client, error) {
	if cfg.BaseURL == "" || cfg.AnonKey == "" || cfg.JWTSecret == "" {
		return nil, ErrNotConfigured
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout()},
	}, nil
}

// AuthorizeURL builds the provider sign-in URL. The post-login target path is
// carried through the round trip on the callback redirect URL.
func (c *Client) AuthorizeURL(next string) string {
	redirect := c.cfg.RedirectURL
	if next != "" {
		redirect += "?next=" + url.QueryEscape(next)
	}
	params := url.Values{
		"redirect_to": {redirect},
	}
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + "/authorize?" + params.Encode()
}

// tokenResponse is the provider token endpoint payload.
type tokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	TokenType    string      `json:"token_type"`
	User         userPayload `json:"user"`
}

// userPayload is the provider user record payload.
type userPayload struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

func (p userPayload) toUser() *User {
	return &User{
		ID:       p.ID,
		Email:    p.Email,
		Role:     RoleFromMetadata(p.UserMetadata),
		Metadata: p.UserMetadata,
	}
}

// ExchangeCode converts a one-time authorization code into a session.
// This is the single point of failure for login; callers translate any error
// into a redirect with a generic marker.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Session, error) {
	form := url.Values{"code": {code}}
	return c.tokenRequest(ctx, "authorization_code", form)
}

// RefreshSession rotates a session from its refresh token.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	form := url.Values{"refresh_token": {refreshToken}}
	return c.tokenRequest(ctx, "refresh_token", form)
}

func (c *Client) tokenRequest(ctx context.Context, grantType string, form url.Values) (*Session, error) {
	endpoint := fmt.Sprintf("%s/token?grant_type=%s", strings.TrimSuffix(c.cfg.BaseURL, "/"), grantType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", c.cfg.AnonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("parse token response: %w", err)
	}
	if tr.AccessToken == "" || tr.RefreshToken == "" {
		return nil, errors.New("incomplete session in token response")
	}

	return &Session{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}

// GetUser fetches the authoritative user record for a session. The callback
// exchanger uses this rather than trusting token claims alone.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/user"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("apikey", c.cfg.AnonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read user response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user fetch failed with status %d", resp.StatusCode)
	}

	var payload userPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse user response: %w", err)
	}
	if payload.ID == "" {
		return nil, errors.New("empty user id in response")
	}
	return payload.toUser(), nil
}

// SignOut revokes the session at the provider. Best effort; cookie clearing
// happens regardless of the outcome.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/logout"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("apikey", c.cfg.AnonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("logout failed with status %d", resp.StatusCode)
	}
	return nil
}

// AdminGetUserByEmail looks up a user with the service-role key.
func (c *Client) AdminGetUserByEmail(ctx context.Context, email string) (*User, error) {
	if c.cfg.ServiceRoleKey == "" {
		return nil, ErrNotConfigured
	}
	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/admin/users?email=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build admin lookup request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.ServiceRoleKey)
	req.Header.Set("apikey", c.cfg.ServiceRoleKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("admin lookup request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read admin lookup response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("admin lookup failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Users []userPayload `json:"users"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse admin lookup response: %w", err)
	}
	for _, u := range payload.Users {
		if u.Email == email {
			return u.toUser(), nil
		}
	}
	return nil, fmt.Errorf("no user with email %s", email)
}

// AdminUpdateUserMetadata replaces metadata keys on a user record with the
// service-role key. This is the only path through which privilege changes.
func (c *Client) AdminUpdateUserMetadata(ctx context.Context, userID string, metadata map[string]any) error {
	if c.cfg.ServiceRoleKey == "" {
		return ErrNotConfigured
	}
	payload, err := json.Marshal(map[string]any{"user_metadata": metadata})
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/admin/users/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build admin update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.ServiceRoleKey)
	req.Header.Set("apikey", c.cfg.ServiceRoleKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("admin update request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("admin update failed with status %d", resp.StatusCode)
	}
	return nil
}
