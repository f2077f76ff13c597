// Package routes wires the HTTP surface: public content and storefront
// endpoints, the chat widget transport, the admin area and the
// site-configuration panel.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/teamcipx/portofolio-sub000/commerce"
	"github.com/teamcipx/portofolio-sub000/middleware"
	"github.com/teamcipx/portofolio-sub000/provider"
	"github.com/teamcipx/portofolio-sub000/shared/config"
	"github.com/teamcipx/portofolio-sub000/shared/email"
	"github.com/teamcipx/portofolio-sub000/shared/store"
	"github.com/teamcipx/portofolio-sub000/theme"
)

// Deps carries every collaborator the handlers need. Handlers receive it
// explicitly; nothing reaches for globals.
type Deps struct {
	Engine   *theme.Engine
	Store    store.Store
	Commerce *commerce.Manager
	Chat     provider.ChatProvider // nil when no API key is configured
	Mailer   *email.Notifier
	Cfg      *config.Config
	Log      *logrus.Logger
}

// Register attaches all routes to the app.
func Register(app *fiber.App, d Deps) {
	app.Get("/health", HealthHandler)
	app.Get("/theme.css", ThemeCSSHandler(d))

	api := app.Group("/api")

	// Public read surface.
	api.Get("/settings", SettingsHandler(d))
	api.Get("/projects", ListProjectsHandler(d))
	api.Get("/projects/:id", GetProjectHandler(d))
	api.Get("/products", ListProductsHandler(d))
	api.Get("/products/:id", GetProductHandler(d))
	api.Get("/blogs", ListBlogsHandler(d))
	api.Get("/blogs/:id", GetBlogHandler(d))
	api.Get("/testimonials", ListTestimonialsHandler(d))

	// Public write surface.
	api.Post("/messages", CreateMessageHandler(d))
	api.Post("/bookings", CreateBookingHandler(d))
	api.Post("/chat", ChatHandler(d))

	// Storefront.
	api.Get("/cart", CartHandler(d))
	api.Post("/cart/items", AddCartItemHandler(d))
	api.Delete("/cart/items/:productId", RemoveCartItemHandler(d))
	api.Post("/checkout", StartCheckoutHandler(d))
	api.Get("/checkout", CheckoutStateHandler(d))
	api.Post("/checkout/method", SelectMethodHandler(d))
	api.Post("/checkout/details", SubmitDetailsHandler(d))
	api.Post("/checkout/back", CheckoutBackHandler(d))
	api.Get("/checkout/receipt", ReceiptHandler(d))

	// Admin area: shared-secret login issuing a session token.
	api.Post("/login", LoginHandler(d))
	admin := api.Group("/admin", middleware.AdminAuth(d.Cfg.Secrets.JWTSigningKey))
	admin.Get("/orders", ListOrdersHandler(d))
	admin.Get("/messages", ListMessagesHandler(d))
	admin.Get("/bookings", ListBookingsHandler(d))

	// Site-configuration panel: separate static key, exact match.
	cfgPanel := api.Group("/config", middleware.ConfigPanelAuth(d.Cfg.Secrets.ConfigPanelKey))
	cfgPanel.Get("/settings", SettingsHandler(d))
	cfgPanel.Put("/settings", UpdateSettingsHandler(d))
	cfgPanel.Post("/preset", ApplyPresetHandler(d))
	cfgPanel.Post("/reset", ResetSettingsHandler(d))
}

// HealthHandler returns a simple health check.
func HealthHandler(c *fiber.Ctx) error {
	return c.SendString("ok")
}
