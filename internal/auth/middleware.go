package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/medikita/platform/internal/identity"
)

const principalKey = "auth_principal"

// SessionResolver is the slice of the identity client the gate needs.
type SessionResolver interface {
	VerifyAccessToken(token string) (*identity.User, error)
	RefreshSession(ctx context.Context, refreshToken string) (*identity.Session, error)
}

// Gate resolves the caller from the session cookies on every request and
// enforces the role policy for privileged paths. A nil resolver (provider
// misconfigured at startup) keeps standard browsing available and denies
// all privileged paths.
type Gate struct {
	resolver SessionResolver
	cookies  identity.CookieCodec
	logger   *zap.Logger
}

// NewGate constructs the middleware.
func NewGate(resolver SessionResolver, cookies identity.CookieCodec, logger *zap.Logger) *Gate {
	return &Gate{resolver: resolver, cookies: cookies, logger: logger}
}

// Handle classifies the path, resolves the principal, and applies the
// decision. Cookie rotation is propagated on every outcome, including
// redirects.
func (g *Gate) Handle(c *fiber.Ctx) error {
	class := Classify(c.Path())
	if class == ClassStatic {
		return c.Next()
	}

	user, rotated, resolveErr := g.resolve(c)
	if rotated != nil {
		g.cookies.WriteSession(c, rotated)
	}
	if user != nil {
		c.Locals(principalKey, user)
	}

	switch Decide(class, user, resolveErr) {
	case DecisionSignIn:
		return c.Redirect(PathSignIn, fiber.StatusSeeOther)
	case DecisionHome:
		return c.Redirect(PathHome, fiber.StatusSeeOther)
	}
	return c.Next()
}

// resolve derives the caller from this request's cookies only. A failed
// resolution is a denial, never retried. The returned session is non-nil
// only when the provider rotated the credentials.
func (g *Gate) resolve(c *fiber.Ctx) (*identity.User, *identity.Session, error) {
	session := g.cookies.ReadSession(c)
	if session == nil {
		return nil, nil, nil
	}
	if g.resolver == nil {
		return nil, nil, identity.ErrNotConfigured
	}

	user, err := g.resolver.VerifyAccessToken(session.AccessToken)
	if err == nil {
		return user, nil, nil
	}
	if !errors.Is(err, identity.ErrTokenExpired) || session.RefreshToken == "" {
		// invalid credential: an anonymous caller, not a fault
		return nil, nil, nil
	}

	refreshed, err := g.resolver.RefreshSession(c.UserContext(), session.RefreshToken)
	if err != nil {
		g.logger.Warn("session refresh failed", zap.Error(err))
		return nil, nil, err
	}
	user, err = g.resolver.VerifyAccessToken(refreshed.AccessToken)
	if err != nil {
		g.logger.Warn("refreshed token rejected", zap.Error(err))
		return nil, refreshed, err
	}
	return user, refreshed, nil
}

// PrincipalFromContext retrieves the resolved caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*identity.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*identity.User)
	return user, ok
}
