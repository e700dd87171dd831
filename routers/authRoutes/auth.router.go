package authRoutes

import (
	"microcourses/config"
	authController "microcourses/controllers/auth"
	validators "microcourses/validators/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupAuthRoutes sets up signup and login
func SetupAuthRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	ctl := authController.NewAuthController(db, cfg)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", validators.Signup(), ctl.Signup)
	authGroup.Post("/login", validators.Login(), ctl.Login)
}
