package theme

import "github.com/teamcipx/portofolio-sub000/shared/models"

// Bundle is the slice of settings a preset replaces atomically.
type Bundle struct {
	Colors models.Colors
	Font   string
	Radius string
	Style  models.StyleName
	Layout models.LayoutName
}

// presets maps each named preset to its fixed bundle. Presets never touch
// sections, nav, pages, seo or system.
var presets = map[models.Preset]Bundle{
	models.PresetTech: {
		Colors: models.Colors{Primary: "#2563eb", Accent: "#22d3ee"},
		Font:   "Space Grotesk",
		Radius: "0.5rem",
		Style:  models.StyleDefault,
		Layout: models.LayoutStandard,
	},
	models.PresetModern: {
		Colors: models.Colors{Primary: "#0f172a", Accent: "#f43f5e"},
		Font:   "Manrope",
		Radius: "1rem",
		Style:  models.StyleMinimal,
		Layout: models.LayoutWide,
	},
	models.PresetStylish: {
		Colors: models.Colors{Primary: "#7c3aed", Accent: "#f59e0b"},
		Font:   "Playfair Display",
		Radius: "1.5rem",
		Style:  models.StylePlayful,
		Layout: models.LayoutStandard,
	},
	models.PresetPremium: {
		Colors: models.Colors{Primary: "#111827", Accent: "#d4af37"},
		Font:   "Cormorant Garamond",
		Radius: "0.25rem",
		Style:  models.StyleCorporate,
		Layout: models.LayoutBoxed,
	},
}

// PresetBundle exposes a preset's bundle, mainly for tests and the config
// panel's preview endpoint.
func PresetBundle(name models.Preset) (Bundle, bool) {
	b, ok := presets[name]
	return b, ok
}
