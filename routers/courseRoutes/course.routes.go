package courseRoutes

import (
	"microcourses/config"
	controllers "microcourses/controllers/course"
	"microcourses/middleware"
	"microcourses/models"
	"microcourses/utils"
	validators "microcourses/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupCourseRoutes sets up the public catalog plus learner enrollment,
// progress and certificate routes.
func SetupCourseRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, mailer *utils.Mailer) {
	ctl := controllers.NewCourseController(db, cfg.ClientURL, mailer)

	courseGroup := app.Group("/courses")

	// Catalog (public; optional auth adds enrollment flags)
	courseGroup.Get("/", middleware.OptionalJWT(cfg), validators.CourseList(), ctl.GetAllCourses)

	// Certificate verification is public and must register before /:id
	courseGroup.Get("/certificate/verify/:serialNumber", validators.VerifySerial(), ctl.VerifyCertificate)

	// Lesson access and completion by lesson id
	courseGroup.Get("/lessons/:lessonId", middleware.JWT(cfg), validators.LessonID(), ctl.GetLesson)
	courseGroup.Post("/lessons/:lessonId/complete",
		middleware.JWT(cfg), middleware.RequireRole(models.RoleLearner),
		validators.LessonID(), ctl.CompleteLesson)

	// Caller's enrollments
	courseGroup.Get("/user/enrolled", middleware.JWT(cfg), ctl.GetUserEnrollments)

	// Course detail, enrollment, progress, certificate
	courseGroup.Get("/:id", middleware.OptionalJWT(cfg), validators.CourseID(), ctl.GetCourseDetails)
	courseGroup.Post("/:id/enroll",
		middleware.JWT(cfg), middleware.RequireRole(models.RoleLearner),
		validators.CourseID(), ctl.EnrollInCourse)
	courseGroup.Get("/:id/progress", middleware.JWT(cfg), validators.CourseID(), ctl.GetUserProgress)
	courseGroup.Get("/:courseId/certificate", middleware.JWT(cfg), validators.CertificateCourse(), ctl.GetCertificate)
	courseGroup.Get("/:courseId/lessons/:lessonId", middleware.JWT(cfg), validators.CourseLesson(), ctl.GetCourseLesson)
}
