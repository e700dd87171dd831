package adminController

import (
	"time"

	"microcourses/middleware"
	"microcourses/models"
	adminValidator "microcourses/validators/admin"
	"microcourses/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminController serves the review queues and platform dashboard.
type AdminController struct {
	DB     *gorm.DB
	Mailer Mailer
}

// Mailer is the notification surface for review decisions; satisfied by
// utils.Mailer and stubbed in tests.
type Mailer interface {
	SendApplicationDecisionEmail(toName, toEmail, status, feedback string)
	SendCourseReviewEmail(toName, toEmail, courseTitle, status, feedback string)
}

func NewAdminController(db *gorm.DB, mailer Mailer) *AdminController {
	return &AdminController{DB: db, Mailer: mailer}
}

// ListApplications returns learners with a pending creator application.
func (ctl *AdminController) ListApplications(c *fiber.Ctx) error {
	var applicants []models.User
	if err := ctl.DB.Where("application_status = ? AND role = ? AND is_deleted = ?",
		models.ApplicationPending, models.RoleLearner, false).
		Order("application_applied_at asc").Find(&applicants).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch applications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applications fetched successfully!", fiber.Map{
		"applications": applicants,
		"total":        len(applicants),
	})
}

// ReviewApplication resolves a pending creator application. Approval flips
// the user's role to creator; a second review of the same application fails
// instead of silently succeeding.
func (ctl *AdminController) ReviewApplication(c *fiber.Ctx) error {
	applicantID := c.Locals("applicantID").(int)
	reqData := c.Locals("validatedReview").(*adminValidator.ReviewRequest)

	var user models.User
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", applicantID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.Application.Status != models.ApplicationPending {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Application already processed", nil)
	}

	status, err := workflow.CreatorApplication.Transition(user.Application.Status, reqData.Status)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Application already processed", nil)
	}

	user.Application.Status = status
	user.Application.Feedback = reqData.Feedback
	if status == models.ApplicationApproved {
		user.Role = models.RoleCreator
		user.IsCreatorApproved = true
	}

	if err := ctl.DB.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review application!", nil)
	}

	if ctl.Mailer != nil {
		go ctl.Mailer.SendApplicationDecisionEmail(user.Name, user.Email, status, reqData.Feedback)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Creator application "+status+" successfully!", fiber.Map{
		"id":                  user.ID,
		"name":                user.Name,
		"email":               user.Email,
		"role":                user.Role,
		"is_creator_approved": user.IsCreatorApproved,
	})
}

// reviewedAt stamps shared by the course review handler.
func reviewTimestamp() *time.Time {
	now := time.Now()
	return &now
}
