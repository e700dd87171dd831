package creatorRoutes

import (
	"microcourses/config"
	creatorController "microcourses/controllers/creator"
	"microcourses/middleware"
	"microcourses/models"
	validators "microcourses/validators/creator"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupCreatorRoutes sets up the application workflow and course/lesson
// authoring routes.
func SetupCreatorRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	ctl := creatorController.NewCreatorController(db)

	creatorGroup := app.Group("/creator", middleware.JWT(cfg))

	// Creator application (learners only)
	creatorGroup.Post("/apply", middleware.RequireRole(models.RoleLearner), validators.Apply(), ctl.Apply)
	creatorGroup.Get("/application-status", middleware.RequireRole(models.RoleLearner), ctl.ApplicationStatus)

	// Course authoring (creators; admins may step in)
	courses := creatorGroup.Group("/courses", middleware.RequireRole(models.RoleCreator, models.RoleAdmin))
	courses.Post("/", validators.CreateCourse(), ctl.CreateCourse)
	courses.Get("/:id", validators.CourseID(), ctl.GetCourse)
	courses.Put("/:id", validators.UpdateCourse(), ctl.UpdateCourse)
	courses.Delete("/:id", validators.CourseID(), ctl.DeleteCourse)
	courses.Post("/:id/submit", validators.CourseID(), ctl.SubmitForReview)
	courses.Get("/:id/lessons", validators.CourseID(), ctl.ListLessons)
	courses.Post("/:id/lessons", validators.AddLesson(), ctl.AddLesson)

	// Lesson editing by lesson id
	lessons := creatorGroup.Group("/lessons", middleware.RequireRole(models.RoleCreator, models.RoleAdmin))
	lessons.Put("/:id", validators.UpdateLesson(), ctl.UpdateLesson)
	lessons.Delete("/:id", validators.LessonID(), ctl.DeleteLesson)

	// Dashboard
	creatorGroup.Get("/dashboard", middleware.RequireRole(models.RoleCreator, models.RoleAdmin), ctl.Dashboard)
}
