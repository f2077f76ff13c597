// Package gate decides whether a navigation may proceed. Decisions are a
// pure function of (settings, path, query), so the routing middleware stays
// a thin adapter and the rules are testable without a server.
package gate

import (
	"net/url"
	"strings"

	"github.com/teamcipx/portofolio-sub000/shared/models"
)

// Route paths the gate knows about.
const (
	HomePath       = "/"
	PortfolioPath  = "/portfolio"
	ShopPath       = "/shop"
	CartPath       = "/cart"
	BlogPath       = "/blog"
	AdminPath      = "/admin"
	SiteConfigPath = "/site-config"

	// PreviewParam carries the maintenance override token.
	PreviewParam = "preview"
)

// Action is what the router should do with a request.
type Action int

const (
	// Proceed lets the request through unchanged.
	Proceed Action = iota
	// Redirect sends the visitor to Decision.Target instead.
	Redirect
	// Maintenance replaces the response with the maintenance notice.
	Maintenance
)

// Decision is the gate's verdict for one request.
type Decision struct {
	Action Action
	Target string
}

func proceed() Decision      { return Decision{Action: Proceed} }
func redirectHome() Decision { return Decision{Action: Redirect, Target: HomePath} }
func maintenance() Decision  { return Decision{Action: Maintenance} }

// Evaluate applies maintenance mode first, then the page gates, then the
// admin kill switch. previewToken is the configured override secret; an
// empty token disables the override entirely.
func Evaluate(s models.ThemeSettings, path string, query url.Values, previewToken string) Decision {
	if s.SEO.MaintenanceMode && !bypassesMaintenance(path, query, previewToken) {
		return maintenance()
	}

	if !s.Pages.PortfolioEnabled && strings.HasPrefix(path, PortfolioPath) {
		return redirectHome()
	}
	if !s.Pages.ShopEnabled && (strings.HasPrefix(path, ShopPath) || strings.HasPrefix(path, CartPath)) {
		return redirectHome()
	}
	if !s.Pages.BlogEnabled && strings.HasPrefix(path, BlogPath) {
		return redirectHome()
	}

	// The admin kill switch blocks the route unconditionally when off.
	// A configuration that never stored the system section loaded as
	// enabled, so a plain check suffices here.
	if !s.System.AdminEnabled && strings.HasPrefix(path, AdminPath) {
		return redirectHome()
	}

	return proceed()
}

// bypassesMaintenance allows the site-config surface (the panel that turns
// maintenance off) and requests carrying the exact override token.
func bypassesMaintenance(path string, query url.Values, previewToken string) bool {
	if strings.HasPrefix(path, SiteConfigPath) {
		return true
	}
	if previewToken != "" && query.Get(PreviewParam) == previewToken {
		return true
	}
	return false
}
