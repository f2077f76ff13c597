package models

// Preset identifies a named bundle of visual settings. PresetCustom means
// the current values were hand-edited and no longer match a known bundle.
type Preset string

const (
	PresetCustom  Preset = "custom"
	PresetTech    Preset = "tech"
	PresetModern  Preset = "modern"
	PresetStylish Preset = "stylish"
	PresetPremium Preset = "premium"
)

// StyleName selects one of the secondary visual effect bundles.
type StyleName string

const (
	StyleDefault   StyleName = "default"
	StyleMinimal   StyleName = "minimal"
	StyleBrutalist StyleName = "brutalist"
	StyleCorporate StyleName = "corporate"
	StylePlayful   StyleName = "playful"
)

// LayoutName selects the overall page width mode.
type LayoutName string

const (
	LayoutStandard LayoutName = "standard"
	LayoutWide     LayoutName = "wide"
	LayoutBoxed    LayoutName = "boxed"
)

// Colors holds the two color values the stylesheet variables derive from.
type Colors struct {
	Primary string `bson:"primary" json:"primary"`
	Accent  string `bson:"accent" json:"accent"`
}

// Sections maps the named homepage sections to their visibility.
type Sections struct {
	ShowHero         bool `bson:"showHero" json:"showHero"`
	ShowServices     bool `bson:"showServices" json:"showServices"`
	ShowPortfolio    bool `bson:"showPortfolio" json:"showPortfolio"`
	ShowShop         bool `bson:"showShop" json:"showShop"`
	ShowTestimonials bool `bson:"showTestimonials" json:"showTestimonials"`
	ShowBlogs        bool `bson:"showBlogs" json:"showBlogs"`
	ShowContact      bool `bson:"showContact" json:"showContact"`
}

// Nav maps the named navigation links to their visibility.
type Nav struct {
	ShowHome      bool `bson:"showHome" json:"showHome"`
	ShowPortfolio bool `bson:"showPortfolio" json:"showPortfolio"`
	ShowShop      bool `bson:"showShop" json:"showShop"`
	ShowBlog      bool `bson:"showBlog" json:"showBlog"`
	ShowBooking   bool `bson:"showBooking" json:"showBooking"`
	ShowContact   bool `bson:"showContact" json:"showContact"`
}

// Pages gates entire routes on and off.
type Pages struct {
	PortfolioEnabled bool `bson:"portfolioEnabled" json:"portfolioEnabled"`
	ShopEnabled      bool `bson:"shopEnabled" json:"shopEnabled"`
	BlogEnabled      bool `bson:"blogEnabled" json:"blogEnabled"`
}

// SEO holds the crawl and availability flags.
type SEO struct {
	MaintenanceMode bool `bson:"maintenanceMode" json:"maintenanceMode"`
	PreventIndexing bool `bson:"preventIndexing" json:"preventIndexing"`
}

// System holds the hard kill switches.
type System struct {
	AdminEnabled bool `bson:"adminEnabled" json:"adminEnabled"`
}

// ThemeSettings is the site-wide presentation and feature-flag document.
// Exactly one instance is active per deployment.
type ThemeSettings struct {
	Preset   Preset     `bson:"preset" json:"preset"`
	Colors   Colors     `bson:"colors" json:"colors"`
	Font     string     `bson:"font" json:"font"`
	Radius   string     `bson:"radius" json:"radius"`
	Style    StyleName  `bson:"style" json:"style"`
	Layout   LayoutName `bson:"layout" json:"layout"`
	Sections Sections   `bson:"sections" json:"sections"`
	Nav      Nav        `bson:"nav" json:"nav"`
	Pages    Pages      `bson:"pages" json:"pages"`
	SEO      SEO        `bson:"seo" json:"seo"`
	System   System     `bson:"system" json:"system"`
}

// SettingsPatch is a partial ThemeSettings. The merge contract is shallow at
// the top level: a non-nil field replaces the previous value of that field
// wholesale, so callers must reconstruct a full nested struct (all of Colors,
// all of Sections, ...) before patching it. Stored documents are decoded into
// a patch as well, which is how fields added after a document was saved keep
// their defaults.
type SettingsPatch struct {
	Preset   *Preset     `bson:"preset,omitempty" json:"preset,omitempty"`
	Colors   *Colors     `bson:"colors,omitempty" json:"colors,omitempty"`
	Font     *string     `bson:"font,omitempty" json:"font,omitempty"`
	Radius   *string     `bson:"radius,omitempty" json:"radius,omitempty"`
	Style    *StyleName  `bson:"style,omitempty" json:"style,omitempty"`
	Layout   *LayoutName `bson:"layout,omitempty" json:"layout,omitempty"`
	Sections *Sections   `bson:"sections,omitempty" json:"sections,omitempty"`
	Nav      *Nav        `bson:"nav,omitempty" json:"nav,omitempty"`
	Pages    *Pages      `bson:"pages,omitempty" json:"pages,omitempty"`
	SEO      *SEO        `bson:"seo,omitempty" json:"seo,omitempty"`
	System   *System     `bson:"system,omitempty" json:"system,omitempty"`
}

// ApplyTo merges the patch over base and returns the result. Only non-nil
// fields are applied; nested structs are replaced, never merged recursively.
func (p SettingsPatch) ApplyTo(base ThemeSettings) ThemeSettings {
	out := base
	if p.Preset != nil {
		out.Preset = *p.Preset
	}
	if p.Colors != nil {
		out.Colors = *p.Colors
	}
	if p.Font != nil {
		out.Font = *p.Font
	}
	if p.Radius != nil {
		out.Radius = *p.Radius
	}
	if p.Style != nil {
		out.Style = *p.Style
	}
	if p.Layout != nil {
		out.Layout = *p.Layout
	}
	if p.Sections != nil {
		out.Sections = *p.Sections
	}
	if p.Nav != nil {
		out.Nav = *p.Nav
	}
	if p.Pages != nil {
		out.Pages = *p.Pages
	}
	if p.SEO != nil {
		out.SEO = *p.SEO
	}
	if p.System != nil {
		out.System = *p.System
	}
	return out
}

// IsZero reports whether the patch carries no fields at all, which is how an
// absent or empty stored document presents after decoding.
func (p SettingsPatch) IsZero() bool {
	return p.Preset == nil && p.Colors == nil && p.Font == nil &&
		p.Radius == nil && p.Style == nil && p.Layout == nil &&
		p.Sections == nil && p.Nav == nil && p.Pages == nil &&
		p.SEO == nil && p.System == nil
}

// SupportedFonts is the fixed list of typeface families the site ships.
var SupportedFonts = []string{
	"Inter",
	"Manrope",
	"Space Grotesk",
	"Playfair Display",
	"Cormorant Garamond",
	"IBM Plex Mono",
}

// DefaultThemeSettings returns the hardcoded configuration the site boots
// with and falls back to when nothing usable is stored.
func DefaultThemeSettings() ThemeSettings {
	return ThemeSettings{
		Preset: PresetCustom,
		Colors: Colors{Primary: "#4f46e5", Accent: "#f97316"},
		Font:   "Inter",
		Radius: "0.75rem",
		Style:  StyleDefault,
		Layout: LayoutStandard,
		Sections: Sections{
			ShowHero:         true,
			ShowServices:     true,
			ShowPortfolio:    true,
			ShowShop:         true,
			ShowTestimonials: true,
			ShowBlogs:        true,
			ShowContact:      true,
		},
		Nav: Nav{
			ShowHome:      true,
			ShowPortfolio: true,
			ShowShop:      true,
			ShowBlog:      true,
			ShowBooking:   true,
			ShowContact:   true,
		},
		Pages: Pages{
			PortfolioEnabled: true,
			ShopEnabled:      true,
			BlogEnabled:      true,
		},
		SEO:    SEO{MaintenanceMode: false, PreventIndexing: false},
		System: System{AdminEnabled: true},
	}
}
