package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medikita/platform/internal/config"
)

func clientForServer(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(config.IdentityConfig{
		BaseURL:     srv.URL,
		AnonKey:     "anon-key",
		JWTSecret:   testJWTSecret,
		RedirectURL: "http://localhost:8080/auth/callback",
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresConfiguration(t *testing.T) {
	_, err := NewClient(config.IdentityConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(config.IdentityConfig{BaseURL: "http://x", AnonKey: "k"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAuthorizeURL(t *testing.T) {
	client, err := NewClient(config.IdentityConfig{
		BaseURL:     "https://id.example.com/",
		AnonKey:     "anon-key",
		JWTSecret:   testJWTSecret,
		RedirectURL: "https://app.example.com/auth/callback",
	})
	require.NoError(t, err)

	raw := client.AuthorizeURL("/orders")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "/authorize", parsed.Path)
	redirect := parsed.Query().Get("redirect_to")
	assert.Equal(t, "https://app.example.com/auth/callback?next=%2Forders", redirect)

	raw = client.AuthorizeURL("")
	parsed, err = url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com/auth/callback", parsed.Query().Get("redirect_to"))
}

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "authorization_code", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "one-time-code", r.PostForm.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600}`))
	}))
	defer srv.Close()

	session, err := clientForServer(t, srv).ExchangeCode(context.Background(), "one-time-code")
	require.NoError(t, err)
	assert.Equal(t, "at", session.AccessToken)
	assert.Equal(t, "rt", session.RefreshToken)
	assert.False(t, session.ExpiresAt.IsZero())
}

func TestExchangeCodeRejectsIncompleteSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"at"}`))
	}))
	defer srv.Close()

	_, err := clientForServer(t, srv).ExchangeCode(context.Background(), "code")
	assert.Error(t, err)
}

func TestExchangeCodeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := clientForServer(t, srv).ExchangeCode(context.Background(), "expired-code")
	assert.Error(t, err)
}

func TestRefreshSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "old-rt", r.PostForm.Get("refresh_token"))

		_, _ = w.Write([]byte(`{"access_token":"new-at","refresh_token":"new-rt","expires_in":3600}`))
	}))
	defer srv.Close()

	session, err := clientForServer(t, srv).RefreshSession(context.Background(), "old-rt")
	require.NoError(t, err)
	assert.Equal(t, "new-at", session.AccessToken)
	assert.Equal(t, "new-rt", session.RefreshToken)
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"id":"u-1","email":"a@b.c","user_metadata":{"role":"admin"}}`))
	}))
	defer srv.Close()

	user, err := clientForServer(t, srv).GetUser(context.Background(), "access-token")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.True(t, user.IsAdmin())
}

func TestAdminGetUserByEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/users", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("email"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"users":[
			{"id":"u-other","email":"other@example.com"},
			{"id":"u-target","email":"target@example.com"}
		]}`))
	}))
	defer srv.Close()

	client, err := NewClient(config.IdentityConfig{
		BaseURL:        srv.URL,
		AnonKey:        "anon-key",
		ServiceRoleKey: "service-key",
		JWTSecret:      testJWTSecret,
	})
	require.NoError(t, err)

	user, err := client.AdminGetUserByEmail(context.Background(), "target@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-target", user.ID)

	_, err = client.AdminGetUserByEmail(context.Background(), "missing@example.com")
	assert.Error(t, err)
}

func TestAdminCallsRequireServiceRoleKey(t *testing.T) {
	client := testClient(t)

	_, err := client.AdminGetUserByEmail(context.Background(), "x@y.z")
	assert.ErrorIs(t, err, ErrNotConfigured)

	err = client.AdminUpdateUserMetadata(context.Background(), "u-1", map[string]any{"role": "admin"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
