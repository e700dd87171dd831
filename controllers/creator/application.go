package creatorController

import (
	"time"

	"microcourses/middleware"
	"microcourses/models"
	creatorValidator "microcourses/validators/creator"
	"microcourses/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatorController serves the creator application plus course and lesson
// authoring routes.
type CreatorController struct {
	DB *gorm.DB
}

func NewCreatorController(db *gorm.DB) *CreatorController {
	return &CreatorController{DB: db}
}

// Apply submits (or re-submits) a creator application. Only learners may
// apply; an approved application cannot be re-submitted, a rejected one can.
func (ctl *CreatorController) Apply(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedApplication").(*creatorValidator.ApplyRequest)

	var user models.User
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != models.RoleLearner {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only learners can apply to become creators", nil)
	}

	if user.Application.Status == models.ApplicationApproved {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You are already an approved creator", nil)
	}

	from := user.Application.Status
	if from == "" {
		from = models.ApplicationNone
	}
	status, err := workflow.CreatorApplication.Transition(from, models.ApplicationPending)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Application cannot be re-submitted", nil)
	}

	now := time.Now()
	user.Application = models.CreatorApplication{
		Bio:        reqData.Bio,
		Experience: reqData.Experience,
		Portfolio:  reqData.Portfolio,
		AppliedAt:  &now,
		Status:     status,
	}

	if err := ctl.DB.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit application!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Creator application submitted successfully!", user.Application)
}

// ApplicationStatus returns the caller's application sub-record.
func (ctl *CreatorController) ApplicationStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application status fetched successfully!", fiber.Map{
		"application":         user.Application,
		"is_creator_approved": user.IsCreatorApproved,
	})
}
