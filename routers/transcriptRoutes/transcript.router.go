package transcriptRoutes

import (
	"microcourses/config"
	transcriptController "microcourses/controllers/transcript"
	"microcourses/utils"
	validators "microcourses/validators/transcript"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupTranscriptRoutes sets up the transcript trigger and the receive
// webhook. The webhook authenticates with the shared secret in its body,
// not a bearer token.
func SetupTranscriptRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, svc *utils.TranscriptService) {
	ctl := transcriptController.NewTranscriptController(db, cfg, svc)

	app.Post("/transcript/generate/:lessonId", validators.Generate(), ctl.Generate)
	app.Post("/webhooks/transcript-receive", validators.Webhook(), ctl.Webhook)
}
