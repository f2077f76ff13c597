package middleware

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/teamcipx/portofolio-sub000/gate"
	"github.com/teamcipx/portofolio-sub000/metrics"
	"github.com/teamcipx/portofolio-sub000/theme"
)

// MaintenanceNotice is the only content served while maintenance mode is on.
const MaintenanceNotice = "We are performing scheduled maintenance. Please check back soon."

// Gate enforces the loading gate, maintenance mode and page-level route
// gating on every request. The rules themselves live in the gate package;
// this adapter only translates requests and verdicts.
func Gate(engine *theme.Engine, previewToken string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/health" || path == "/metrics" {
			return c.Next()
		}

		// Nothing renders or gates before the initial settings load.
		if !engine.Ready() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"loading": true,
				"message": "site configuration is loading",
			})
		}

		settings := engine.Settings()
		if settings.SEO.PreventIndexing {
			c.Set("X-Robots-Tag", "noindex, nofollow")
		}

		query, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
		decision := gate.Evaluate(settings, pagePath(path), query, previewToken)
		switch decision.Action {
		case gate.Redirect:
			metrics.GateDecisionsTotal.WithLabelValues("redirect").Inc()
			return c.Redirect(decision.Target, fiber.StatusFound)
		case gate.Maintenance:
			metrics.GateDecisionsTotal.WithLabelValues("maintenance").Inc()
			return c.Status(fiber.StatusServiceUnavailable).SendString(MaintenanceNotice)
		}
		return c.Next()
	}
}

// pagePath maps API endpoints onto the page route whose gate governs them,
// so disabling the shop also closes its JSON surface.
func pagePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/cart"), strings.HasPrefix(path, "/api/checkout"):
		return gate.CartPath
	case strings.HasPrefix(path, "/api/products"):
		return gate.ShopPath
	case strings.HasPrefix(path, "/api/projects"):
		return gate.PortfolioPath
	case strings.HasPrefix(path, "/api/blogs"):
		return gate.BlogPath
	case strings.HasPrefix(path, "/api/admin"), path == "/api/login":
		return gate.AdminPath
	case strings.HasPrefix(path, "/api/config"):
		return gate.SiteConfigPath
	default:
		return path
	}
}
