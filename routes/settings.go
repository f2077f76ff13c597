package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamcipx/portofolio-sub000/metrics"
	"github.com/teamcipx/portofolio-sub000/shared/models"
	"github.com/teamcipx/portofolio-sub000/theme"
)

// SettingsHandler returns the current theme settings snapshot.
func SettingsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(d.Engine.Settings())
	}
}

// ThemeCSSHandler renders the settings as a stylesheet. The frontend links
// this once and picks up every settings change on the next load.
func ThemeCSSHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		return c.SendString(theme.Stylesheet(d.Engine.Settings()))
	}
}

// UpdateSettingsHandler merges a partial settings document over the current
// configuration. The response reflects the new in-memory state; persistence
// happens in the background.
func UpdateSettingsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch models.SettingsPatch
		if err := c.BodyParser(&patch); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid settings payload"})
		}
		if patch.Font != nil && !supportedFont(*patch.Font) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unsupported font"})
		}

		d.Engine.Update(patch)
		metrics.SettingsOpsTotal.WithLabelValues("update").Inc()
		return c.JSON(d.Engine.Settings())
	}
}

// ApplyPresetHandler applies one of the named visual bundles.
func ApplyPresetHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Preset models.Preset `json:"preset"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if !d.Engine.ApplyPreset(req.Preset) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown preset"})
		}
		metrics.SettingsOpsTotal.WithLabelValues("preset").Inc()
		return c.JSON(d.Engine.Settings())
	}
}

// ResetSettingsHandler restores the hardcoded defaults.
func ResetSettingsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d.Engine.Reset()
		metrics.SettingsOpsTotal.WithLabelValues("reset").Inc()
		return c.JSON(d.Engine.Settings())
	}
}

func supportedFont(font string) bool {
	for _, f := range models.SupportedFonts {
		if f == font {
			return true
		}
	}
	return false
}
