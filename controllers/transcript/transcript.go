package transcriptController

import (
	"crypto/subtle"
	"log"

	"microcourses/config"
	"microcourses/middleware"
	courseModels "microcourses/models/course"
	"microcourses/utils"
	transcriptValidator "microcourses/validators/transcript"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TranscriptController exposes the transcript trigger and the receive
// webhook for the external Whisper pipeline.
type TranscriptController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Service *utils.TranscriptService
}

func NewTranscriptController(db *gorm.DB, cfg *config.Config, svc *utils.TranscriptService) *TranscriptController {
	return &TranscriptController{DB: db, Cfg: cfg, Service: svc}
}

// Generate triggers transcript generation for a lesson. Fire-and-forget:
// the response only acknowledges the trigger.
func (ctl *TranscriptController) Generate(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	message := ctl.Service.Trigger(&lesson)
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"lesson_id": lesson.ID,
	})
}

// Webhook receives a transcript from the external service. The shared
// secret is compared in constant time so the check leaks no timing signal.
func (ctl *TranscriptController) Webhook(c *fiber.Ctx) error {
	reqData := c.Locals("validatedWebhook").(*transcriptValidator.WebhookRequest)

	// An unset secret rejects everything rather than accepting everything.
	if ctl.Cfg.WhisperSecretKey == "" ||
		subtle.ConstantTimeCompare([]byte(reqData.SecurityKey), []byte(ctl.Cfg.WhisperSecretKey)) != 1 {
		log.Println("Unauthorized transcript webhook call received.")
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized", nil)
	}

	if reqData.LessonID == 0 || reqData.TranscriptText == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing lessonId or transcriptText", nil)
	}

	var lesson courseModels.Lesson
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", reqData.LessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if err := ctl.Service.SaveWebhookTranscript(lesson.ID, reqData.TranscriptText); err != nil {
		log.Printf("Error saving transcript for lesson %d: %v", lesson.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Error saving transcript", nil)
	}

	log.Printf("Transcript saved successfully for lesson %d", lesson.ID)
	return middleware.JsonResponse(c, fiber.StatusAccepted, true, "Transcript received and acknowledged.", nil)
}
