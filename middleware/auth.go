package middleware

import (
	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// AdminTokenCookie names the cookie carrying the admin session token.
const AdminTokenCookie = "admin_token"

// AdminAuth requires a valid admin JWT issued by the login handler.
func AdminAuth(signingKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if signingKey == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "admin access is not configured",
			})
		}

		tokenStr := c.Cookies(AdminTokenCookie)
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(signingKey), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid session"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != "admin" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid session"})
		}
		return c.Next()
	}
}

// ConfigPanelAuth guards the site-configuration surface with its static
// shared key, compared exactly. No lockout, no rate limiting.
func ConfigPanelAuth(panelKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if panelKey == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "site configuration panel is not configured",
			})
		}
		if c.Get("X-Config-Key") != panelKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid configuration key"})
		}
		return c.Next()
	}
}
