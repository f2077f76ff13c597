package routes

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"

	"github.com/teamcipx/portofolio-sub000/commerce"
	"github.com/teamcipx/portofolio-sub000/middleware"
	"github.com/teamcipx/portofolio-sub000/shared/models"
)

// LoginHandler checks the admin shared secret and issues a session token.
// There is deliberately no lockout or rate limiting.
func LoginHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if d.Cfg.Secrets.AdminPassword == "" || req.Password != d.Cfg.Secrets.AdminPassword {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "wrong password"})
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"role": "admin",
			"exp":  time.Now().Add(24 * time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(d.Cfg.Secrets.JWTSigningKey))
		if err != nil {
			d.Log.WithError(err).Error("failed to sign admin token")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "login failed"})
		}

		c.Cookie(&fiber.Cookie{
			Name:     middleware.AdminTokenCookie,
			Value:    signed,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.JSON(fiber.Map{"ok": true})
	}
}

// ListOrdersHandler returns all orders, newest first.
func ListOrdersHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var orders []models.Order
		if err := d.Store.Query(c.Context(), commerce.OrdersCollection, nil, &orders, newestFirst); err != nil {
			d.Log.WithError(err).Error("failed to list orders")
			orders = nil
		}
		if orders == nil {
			orders = []models.Order{}
		}
		return c.JSON(orders)
	}
}

// ListMessagesHandler returns contact messages, newest first.
func ListMessagesHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var messages []models.Message
		if err := d.Store.Query(c.Context(), MessagesCollection, nil, &messages, newestFirst); err != nil {
			d.Log.WithError(err).Error("failed to list messages")
			messages = nil
		}
		if messages == nil {
			messages = []models.Message{}
		}
		return c.JSON(messages)
	}
}

// ListBookingsHandler returns consultation requests, newest first.
func ListBookingsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var bookings []models.Booking
		if err := d.Store.Query(c.Context(), BookingsCollection, nil, &bookings, newestFirst); err != nil {
			d.Log.WithError(err).Error("failed to list bookings")
			bookings = nil
		}
		if bookings == nil {
			bookings = []models.Booking{}
		}
		return c.JSON(bookings)
	}
}
