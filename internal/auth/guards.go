package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/medikita/platform/pkg/util"
)

// RequireUser ensures an authenticated principal for account-scoped routes
// such as orders. Role does not matter here; the gate handles admin paths.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("sign-in required")
		}
		return c.Next()
	}
}
