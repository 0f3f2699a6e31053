package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medikita/platform/internal/identity"
)

type stubExchanger struct {
	session     *identity.Session
	exchangeErr error
	user        *identity.User
	userErr     error
	signOutErr  error
	panicOnUser bool

	signedOut bool
}

func (s *stubExchanger) AuthorizeURL(next string) string {
	url := "https://id.example.com/authorize"
	if next != "" {
		url += "?next=" + next
	}
	return url
}

func (s *stubExchanger) ExchangeCode(ctx context.Context, code string) (*identity.Session, error) {
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}
	return s.session, nil
}

func (s *stubExchanger) GetUser(ctx context.Context, accessToken string) (*identity.User, error) {
	if s.panicOnUser {
		panic("provider payload corrupt")
	}
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

func (s *stubExchanger) SignOut(ctx context.Context, accessToken string) error {
	s.signedOut = true
	return s.signOutErr
}

func authApp(provider IdentityExchanger) *fiber.App {
	handler := NewAuthHandler(provider, identity.CookieCodec{}, zap.NewNop())

	app := fiber.New()
	app.Get("/auth/login", handler.Login)
	app.Get("/auth/callback", handler.Callback)
	app.Post("/auth/logout", handler.Logout)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	return resp
}

func TestLoginRedirectsToProvider(t *testing.T) {
	app := authApp(&stubExchanger{})

	resp := doGet(t, app, "/auth/login?next=/orders")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "https://id.example.com/authorize?next=/orders", resp.Header.Get("Location"))
}

func TestLoginDropsOffsiteNext(t *testing.T) {
	app := authApp(&stubExchanger{})

	resp := doGet(t, app, "/auth/login?next=https://evil.example.com")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "https://id.example.com/authorize", resp.Header.Get("Location"))
}

func TestLoginWithoutProvider(t *testing.T) {
	app := authApp(nil)

	resp := doGet(t, app, "/auth/login")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/signin?error=server_error", resp.Header.Get("Location"))
}

func TestCallbackMissingCode(t *testing.T) {
	app := authApp(&stubExchanger{})

	resp := doGet(t, app, "/auth/callback")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/signin?error=auth_code_missing", resp.Header.Get("Location"))
}

func TestCallbackExchangeFailure(t *testing.T) {
	app := authApp(&stubExchanger{exchangeErr: errors.New("invalid_grant")})

	resp := doGet(t, app, "/auth/callback?code=stale")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/signin?error=callback_failed", resp.Header.Get("Location"))
}

func TestCallbackUserFetchFailure(t *testing.T) {
	app := authApp(&stubExchanger{
		session: &identity.Session{AccessToken: "at", RefreshToken: "rt"},
		userErr: errors.New("unreachable"),
	})

	resp := doGet(t, app, "/auth/callback?code=ok")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/signin?error=callback_failed", resp.Header.Get("Location"))
}

func TestCallbackAdminLandsOnAdminHome(t *testing.T) {
	app := authApp(&stubExchanger{
		session: &identity.Session{AccessToken: "at", RefreshToken: "rt"},
		user:    &identity.User{ID: "a-1", Role: identity.RoleAdmin},
	})

	// admin destination wins over any requested next
	resp := doGet(t, app, "/auth/callback?code=ok&next=/orders")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))
}

func TestCallbackStandardUserHonorsNext(t *testing.T) {
	app := authApp(&stubExchanger{
		session: &identity.Session{AccessToken: "at", RefreshToken: "rt"},
		user:    &identity.User{ID: "u-1", Role: identity.RoleStandard},
	})

	resp := doGet(t, app, "/auth/callback?code=ok&next=/orders")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/orders", resp.Header.Get("Location"))
}

func TestCallbackStandardUserDefaultsToDashboard(t *testing.T) {
	app := authApp(&stubExchanger{
		session: &identity.Session{AccessToken: "at", RefreshToken: "rt"},
		user:    &identity.User{ID: "u-1", Role: identity.RoleStandard},
	})

	resp := doGet(t, app, "/auth/callback?code=ok")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestCallbackRejectsProtocolRelativeNext(t *testing.T) {
	app := authApp(&stubExchanger{
		session: &identity.Session{AccessToken: "at", RefreshToken: "rt"},
		user:    &identity.User{ID: "u-1", Role: identity.RoleStandard},
	})

	resp := doGet(t, app, "/auth/callback?code=ok&next=//evil.example.com")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestCallbackSetsSessionCookies(t *testing.T) {
	app := authApp(&stubExchanger{
		session: &identity.Session{AccessToken: "at", RefreshToken: "rt"},
		user:    &identity.User{ID: "u-1", Role: identity.RoleStandard},
	})

	resp := doGet(t, app, "/auth/callback?code=ok")

	var access, refresh string
	for _, cookie := range resp.Cookies() {
		switch cookie.Name {
		case "mk_access_token":
			access = cookie.Value
			assert.True(t, cookie.HttpOnly)
		case "mk_refresh_token":
			refresh = cookie.Value
		}
	}
	assert.Equal(t, "at", access)
	assert.Equal(t, "rt", refresh)
}

func TestCallbackPanicBecomesServerErrorRedirect(t *testing.T) {
	app := authApp(&stubExchanger{
		session:     &identity.Session{AccessToken: "at", RefreshToken: "rt"},
		panicOnUser: true,
	})

	resp := doGet(t, app, "/auth/callback?code=ok")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/signin?error=server_error", resp.Header.Get("Location"))
}

func TestCallbackWithoutProvider(t *testing.T) {
	app := authApp(nil)

	resp := doGet(t, app, "/auth/callback?code=ok")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/signin?error=server_error", resp.Header.Get("Location"))
}

func TestLogoutClearsCookiesAndRedirectsHome(t *testing.T) {
	provider := &stubExchanger{}
	app := authApp(provider)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "mk_access_token", Value: "at"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.True(t, provider.signedOut)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "mk_access_token" || cookie.Name == "mk_refresh_token" {
			assert.Empty(t, cookie.Value)
		}
	}
}

func TestLogoutSignOutFailureStillClearsSession(t *testing.T) {
	app := authApp(&stubExchanger{signOutErr: errors.New("unreachable")})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "mk_access_token", Value: "at"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestSanitizeNext(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/orders", "/orders"},
		{"/admin/products", "/admin/products"},
		{"//evil.example.com", ""},
		{"https://evil.example.com", ""},
		{"javascript:alert(1)", ""},
		{"orders", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizeNext(tc.in), tc.in)
	}
}
