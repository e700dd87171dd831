package adminRoutes

import (
	"microcourses/config"
	adminController "microcourses/controllers/admin"
	"microcourses/middleware"
	"microcourses/models"
	"microcourses/utils"
	validators "microcourses/validators/admin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupAdminRoutes sets up the review queues and dashboard (admins only).
func SetupAdminRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, mailer *utils.Mailer) {
	ctl := adminController.NewAdminController(db, mailer)

	adminGroup := app.Group("/admin", middleware.JWT(cfg), middleware.RequireRole(models.RoleAdmin))

	// Creator applications
	adminGroup.Get("/applications", ctl.ListApplications)
	adminGroup.Put("/applications/:userId", validators.ReviewApplication(), ctl.ReviewApplication)

	// Course review
	adminGroup.Get("/courses", validators.CourseList(), ctl.ListCourses)
	adminGroup.Get("/courses/pending", ctl.PendingCourses)
	adminGroup.Get("/courses/:id", validators.CourseID(), ctl.GetCourse)
	adminGroup.Put("/courses/:id/review", validators.ReviewCourse(), ctl.ReviewCourse)

	// Dashboard
	adminGroup.Get("/dashboard", ctl.DashboardStats)
}
