package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teamcipx/portofolio-sub000/metrics"
	"github.com/teamcipx/portofolio-sub000/provider"
)

// chatSystemPrompt frames the assistant for visitors of the site.
const chatSystemPrompt = "You are the studio's website assistant. Answer questions about the " +
	"portfolio, services, products and booking process. Be brief and friendly. " +
	"If you do not know something, suggest the contact form."

// ChatRequest is the JSON body for the chat widget.
type ChatRequest struct {
	Messages []provider.ChatMessage `json:"messages"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Text string `json:"text"`
}

// ChatHandler forwards a conversation to the chat provider with the site
// context prepended.
func ChatHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d.Chat == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "chat is not configured",
			})
		}

		var req ChatRequest
		if err := c.BodyParser(&req); err != nil || len(req.Messages) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		messages := append(
			[]provider.ChatMessage{{Role: "system", Content: chatSystemPrompt}},
			req.Messages...,
		)
		resp, err := d.Chat.Chat(c.Context(), &provider.ChatRequest{Messages: messages})
		if err != nil {
			d.Log.WithError(err).Error("chat completion failed")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "chat is unavailable right now"})
		}

		// Rough token estimate, enough for the histogram.
		metrics.ChatTokens.WithLabelValues(c.Path()).Observe(float64(len(resp.Text) / 4))
		return c.JSON(ChatResponse{Text: resp.Text})
	}
}
