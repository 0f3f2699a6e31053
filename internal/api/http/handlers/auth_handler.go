package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medikita/platform/internal/api/dto"
	"github.com/medikita/platform/internal/auth"
	"github.com/medikita/platform/internal/identity"
	apperrors "github.com/medikita/platform/pkg/util"
)

// Error markers surfaced to the sign-in page via query string. Only these
// short codes ever reach the client; causes stay in the server log.
const (
	errAuthCodeMissing = "auth_code_missing"
	errCallbackFailed  = "callback_failed"
	errServerError     = "server_error"
)

// IdentityExchanger is the slice of the identity client the auth endpoints need.
type IdentityExchanger interface {
	AuthorizeURL(next string) string
	ExchangeCode(ctx context.Context, code string) (*identity.Session, error)
	GetUser(ctx context.Context, accessToken string) (*identity.User, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthHandler owns the sign-in redirect, the callback exchange and session
// teardown. Every failure on these endpoints becomes a redirect; they are
// reached via cross-site redirects and must never render an error page.
type AuthHandler struct {
	provider IdentityExchanger
	cookies  identity.CookieCodec
	logger   *zap.Logger
}

// NewAuthHandler constructs the handler. A nil provider (identity not
// configured) degrades every endpoint to a server_error redirect.
func NewAuthHandler(provider IdentityExchanger, cookies identity.CookieCodec, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, cookies: cookies, logger: logger}
}

// Login handles GET /auth/login and starts the provider flow.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if h.provider == nil {
		return signInRedirect(c, errServerError)
	}
	return c.Redirect(h.provider.AuthorizeURL(sanitizeNext(c.Query("next"))), fiber.StatusSeeOther)
}

// Callback handles GET /auth/callback?code=&next= and completes the
// authorization-code exchange.
func (h *AuthHandler) Callback(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("callback panic", zap.Any("panic", r))
			err = signInRedirect(c, errServerError)
		}
	}()

	code := c.Query("code")
	if code == "" {
		return signInRedirect(c, errAuthCodeMissing)
	}
	if h.provider == nil {
		h.logger.Error("callback with identity provider unconfigured")
		return signInRedirect(c, errServerError)
	}

	session, exchangeErr := h.provider.ExchangeCode(c.UserContext(), code)
	if exchangeErr != nil {
		h.logger.Error("code exchange failed", zap.Error(exchangeErr))
		return signInRedirect(c, errCallbackFailed)
	}
	h.cookies.WriteSession(c, session)

	// the token claims alone are not trusted for the post-login branch
	user, fetchErr := h.provider.GetUser(c.UserContext(), session.AccessToken)
	if fetchErr != nil {
		h.logger.Error("user fetch after exchange failed", zap.Error(fetchErr))
		return signInRedirect(c, errCallbackFailed)
	}

	if user.IsAdmin() {
		return c.Redirect(auth.PathAdminHome, fiber.StatusSeeOther)
	}
	if next := sanitizeNext(c.Query("next")); next != "" {
		return c.Redirect(next, fiber.StatusSeeOther)
	}
	return c.Redirect(auth.PathDashboard, fiber.StatusSeeOther)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if session := h.cookies.ReadSession(c); session != nil && h.provider != nil {
		if err := h.provider.SignOut(c.UserContext(), session.AccessToken); err != nil {
			h.logger.Warn("provider sign-out failed", zap.Error(err))
		}
	}
	h.cookies.ClearSession(c)
	return c.Redirect(auth.PathHome, fiber.StatusSeeOther)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not signed in")
	}
	return c.JSON(fiber.Map{"data": dto.MeResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	}})
}

func signInRedirect(c *fiber.Ctx, marker string) error {
	return c.Redirect(auth.PathSignIn+"?error="+marker, fiber.StatusSeeOther)
}

// sanitizeNext keeps post-login targets on-site. Absolute URLs and
// protocol-relative paths are discarded.
func sanitizeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}
