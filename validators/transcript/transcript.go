package transcriptValidator

import (
	"strconv"
	"strings"

	"microcourses/middleware"

	"github.com/gofiber/fiber/v2"
)

// WebhookRequest is the body the external transcript service posts back.
type WebhookRequest struct {
	LessonID       uint   `json:"lessonId"`
	TranscriptText string `json:"transcriptText"`
	SecurityKey    string `json:"securityKey"`
}

// Generate validates the :lessonId route param.
func Generate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("lessonId"))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson ID is required!", nil)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		c.Locals("lessonID", id)
		return c.Next()
	}
}

// Webhook parses the webhook body. The security key is checked by the
// controller, not here, so an invalid key and a valid key take the same
// parse path.
func Webhook() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(WebhookRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedWebhook", reqData)
		return c.Next()
	}
}
