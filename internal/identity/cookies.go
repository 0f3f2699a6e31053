package identity

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	accessCookieName  = "mk_access_token"
	refreshCookieName = "mk_refresh_token"
)

// CookieCodec reads and writes the provider session cookie pair. The tokens
// are opaque to everything except VerifyAccessToken; rotation writes go to
// the response so the client's session stays valid.
type CookieCodec struct {
	Domain string
	Secure bool
}

// ReadSession extracts the session from request cookies. Returns nil when no
// access token cookie is present.
func (cc CookieCodec) ReadSession(c *fiber.Ctx) *Session {
	access := c.Cookies(accessCookieName)
	if access == "" {
		return nil
	}
	return &Session{
		AccessToken:  access,
		RefreshToken: c.Cookies(refreshCookieName),
	}
}

// WriteSession sets the session cookie pair on the response.
func (cc CookieCodec) WriteSession(c *fiber.Ctx, s *Session) {
	expires := s.ExpiresAt
	if expires.IsZero() {
		expires = time.Now().Add(time.Hour)
	}
	c.Cookie(&fiber.Cookie{
		Name:     accessCookieName,
		Value:    s.AccessToken,
		Path:     "/",
		Domain:   cc.Domain,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   cc.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	// refresh token outlives the access token
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    s.RefreshToken,
		Path:     "/",
		Domain:   cc.Domain,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   cc.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSession expires both session cookies.
func (cc CookieCodec) ClearSession(c *fiber.Ctx) {
	for _, name := range []string{accessCookieName, refreshCookieName} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   cc.Domain,
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			Secure:   cc.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
}
