package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medikita/platform/internal/identity"
)

type stubResolver struct {
	users      map[string]*identity.User
	expired    map[string]bool
	refreshed  *identity.Session
	refreshErr error
}

func (s *stubResolver) VerifyAccessToken(token string) (*identity.User, error) {
	if s.expired[token] {
		return nil, identity.ErrTokenExpired
	}
	user, ok := s.users[token]
	if !ok {
		return nil, errors.New("signature invalid")
	}
	return user, nil
}

func (s *stubResolver) RefreshSession(ctx context.Context, refreshToken string) (*identity.Session, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return s.refreshed, nil
}

func gateApp(t *testing.T, resolver SessionResolver) *fiber.App {
	t.Helper()
	gate := NewGate(resolver, identity.CookieCodec{}, zap.NewNop())

	app := fiber.New()
	app.Use(gate.Handle)
	app.All("/*", func(c *fiber.Ctx) error {
		if user, ok := PrincipalFromContext(c); ok {
			return c.SendString("principal:" + user.ID)
		}
		return c.SendString("anonymous")
	})
	return app
}

func gateRequest(t *testing.T, app *fiber.App, path, accessToken, refreshToken string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accessToken != "" {
		req.AddCookie(&http.Cookie{Name: "mk_access_token", Value: accessToken})
	}
	if refreshToken != "" {
		req.AddCookie(&http.Cookie{Name: "mk_refresh_token", Value: refreshToken})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestGateAnonymousStandardPath(t *testing.T) {
	app := gateApp(t, &stubResolver{})

	resp := gateRequest(t, app, "/products", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "anonymous", bodyOf(t, resp))
}

func TestGateAnonymousPrivilegedPath(t *testing.T) {
	app := gateApp(t, &stubResolver{})

	resp := gateRequest(t, app, "/admin/products", "", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, PathSignIn, resp.Header.Get("Location"))
}

func TestGateAdminPrivilegedPath(t *testing.T) {
	resolver := &stubResolver{
		users: map[string]*identity.User{
			"admin-token": {ID: "admin-1", Role: identity.RoleAdmin},
		},
	}
	app := gateApp(t, resolver)

	resp := gateRequest(t, app, "/admin/products", "admin-token", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "principal:admin-1", bodyOf(t, resp))
}

func TestGateStandardUserPrivilegedPath(t *testing.T) {
	resolver := &stubResolver{
		users: map[string]*identity.User{
			"user-token": {ID: "user-1", Role: identity.RoleStandard},
		},
	}
	app := gateApp(t, resolver)

	resp := gateRequest(t, app, "/admin", "user-token", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, PathHome, resp.Header.Get("Location"))
}

func TestGateInvalidTokenIsAnonymous(t *testing.T) {
	app := gateApp(t, &stubResolver{})

	// standard paths stay open, privileged deny
	resp := gateRequest(t, app, "/products", "garbage", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = gateRequest(t, app, "/admin", "garbage", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, PathSignIn, resp.Header.Get("Location"))
}

func TestGateRefreshRotatesCookies(t *testing.T) {
	resolver := &stubResolver{
		users: map[string]*identity.User{
			"fresh-token": {ID: "user-1", Role: identity.RoleAdmin},
		},
		expired:   map[string]bool{"stale-token": true},
		refreshed: &identity.Session{AccessToken: "fresh-token", RefreshToken: "fresh-refresh"},
	}
	app := gateApp(t, resolver)

	resp := gateRequest(t, app, "/admin", "stale-token", "stale-refresh")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	var accessValue, refreshValue string
	for _, cookie := range cookies {
		switch cookie.Name {
		case "mk_access_token":
			accessValue = cookie.Value
			assert.True(t, cookie.HttpOnly)
		case "mk_refresh_token":
			refreshValue = cookie.Value
		}
	}
	assert.Equal(t, "fresh-token", accessValue)
	assert.Equal(t, "fresh-refresh", refreshValue)
}

func TestGateRefreshFailureFailsClosed(t *testing.T) {
	resolver := &stubResolver{
		expired:    map[string]bool{"stale-token": true},
		refreshErr: errors.New("provider unreachable"),
	}
	app := gateApp(t, resolver)

	resp := gateRequest(t, app, "/admin", "stale-token", "stale-refresh")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, PathSignIn, resp.Header.Get("Location"))

	// the same failure leaves standard browsing untouched
	resp = gateRequest(t, app, "/products", "stale-token", "stale-refresh")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateExpiredWithoutRefreshTokenIsAnonymous(t *testing.T) {
	resolver := &stubResolver{
		expired: map[string]bool{"stale-token": true},
	}
	app := gateApp(t, resolver)

	resp := gateRequest(t, app, "/products", "stale-token", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "anonymous", bodyOf(t, resp))
}

func TestGateNilResolverFailsClosedOnPrivileged(t *testing.T) {
	app := gateApp(t, nil)

	resp := gateRequest(t, app, "/admin", "some-token", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, PathSignIn, resp.Header.Get("Location"))

	resp = gateRequest(t, app, "/products", "some-token", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateSkipsStaticPaths(t *testing.T) {
	// a resolver that panics proves static paths never resolve sessions
	app := gateApp(t, panicResolver{})

	resp := gateRequest(t, app, "/assets/app.css", "token", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

type panicResolver struct{}

func (panicResolver) VerifyAccessToken(string) (*identity.User, error) {
	panic("must not be called for static paths")
}

func (panicResolver) RefreshSession(context.Context, string) (*identity.Session, error) {
	panic("must not be called for static paths")
}
