package theme

import (
	"fmt"
	"strings"

	"github.com/teamcipx/portofolio-sub000/shared/models"
)

// Stylesheet renders the settings as a CSS document served at /theme.css.
// The frontend links it once; every settings change is picked up on the next
// request. Exactly one style bundle is emitted at a time, so switching away
// from a style cannot leave its effects behind — the previous bundle's rules
// simply stop existing.
func Stylesheet(s models.ThemeSettings) string {
	var b strings.Builder

	radius := s.Radius
	if s.Style == models.StyleBrutalist {
		// Brutalist flattens every corner regardless of the configured
		// radius.
		radius = "0"
	}

	fmt.Fprintf(&b, ":root {\n")
	fmt.Fprintf(&b, "  --color-primary: %s;\n", s.Colors.Primary)
	fmt.Fprintf(&b, "  --color-accent: %s;\n", s.Colors.Accent)
	fmt.Fprintf(&b, "  --radius: %s;\n", radius)
	fmt.Fprintf(&b, "}\n\n")

	fmt.Fprintf(&b, "body {\n  font-family: '%s', sans-serif;\n}\n\n", s.Font)

	fmt.Fprintf(&b, ".site-container {\n  max-width: %s;\n  margin: 0 auto;\n}\n\n", containerWidth(s.Layout))
	if s.Layout == models.LayoutBoxed {
		b.WriteString(".site-container {\n  padding: 0 2rem;\n  background: #ffffff;\n}\n\n")
	}

	b.WriteString(styleBundle(s.Style))
	return b.String()
}

func containerWidth(layout models.LayoutName) string {
	switch layout {
	case models.LayoutWide:
		return "1536px"
	case models.LayoutBoxed:
		return "1024px"
	default:
		return "1280px"
	}
}

func styleBundle(style models.StyleName) string {
	switch style {
	case models.StyleMinimal:
		return ".card {\n  box-shadow: none;\n  border: none;\n  letter-spacing: normal;\n}\n"
	case models.StyleBrutalist:
		return ".card {\n  box-shadow: 6px 6px 0 var(--color-primary);\n  border: 2px solid var(--color-primary);\n  letter-spacing: 0.05em;\n}\n"
	case models.StyleCorporate:
		return ".card {\n  box-shadow: 0 1px 3px rgba(0, 0, 0, 0.1);\n  border: 1px solid #e5e7eb;\n  letter-spacing: -0.01em;\n}\n"
	case models.StylePlayful:
		return ".card {\n  box-shadow: 0 8px 24px rgba(0, 0, 0, 0.12);\n  border: none;\n  letter-spacing: 0.02em;\n}\n"
	default:
		return ".card {\n  box-shadow: 0 4px 12px rgba(0, 0, 0, 0.08);\n  border: none;\n  letter-spacing: normal;\n}\n"
	}
}
