package authController

import (
	"log"
	"time"

	"microcourses/config"
	"microcourses/middleware"
	"microcourses/models"
	authValidator "microcourses/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

// Signup registers a new user. Everyone starts as a learner; creator rights
// come later through the application workflow.
func (ctl *AuthController) Signup(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSignup").(*authValidator.SignupRequest)

	// Check if email already exists
	if err := ctl.DB.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctl.Cfg.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     models.RoleLearner,
		Application: models.CreatorApplication{
			Status: models.ApplicationNone,
		},
	}

	if err := ctl.DB.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	token, err := middleware.GenerateJWT(ctl.Cfg, newUser.ID, newUser.Name, newUser.Role, newUser.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Signup successful!", fiber.Map{
		"token": token,
		"user":  newUser,
	})
}

// Login checks credentials and mints a bearer token carrying the role.
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*authValidator.LoginRequest)

	var user models.User
	if err := ctl.DB.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	now := time.Now()
	user.LastLogin = &now
	if err := ctl.DB.Model(&user).Update("last_login", now).Error; err != nil {
		log.Printf("Error updating last login: %v", err)
	}

	token, err := middleware.GenerateJWT(ctl.Cfg, user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user":  user,
	})
}
