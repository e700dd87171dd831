package main

import (
	"log"

	"microcourses/config"
	"microcourses/database"
	adminRoutes "microcourses/routers/adminRoutes"
	authRoutes "microcourses/routers/authRoutes"
	courseRoutes "microcourses/routers/courseRoutes"
	creatorRoutes "microcourses/routers/creatorRoutes"
	transcriptRoutes "microcourses/routers/transcriptRoutes"
	"microcourses/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.ClientURL + ",http://localhost:3000,http://localhost:5173",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "MicroCourses API is running!"})
	})

	mailer := utils.NewMailer(cfg)
	transcripts := utils.NewTranscriptService(db, cfg)

	authRoutes.SetupAuthRoutes(app, db, cfg)
	courseRoutes.SetupCourseRoutes(app, db, cfg, mailer)
	creatorRoutes.SetupCreatorRoutes(app, db, cfg)
	adminRoutes.SetupAdminRoutes(app, db, cfg, mailer)
	transcriptRoutes.SetupTranscriptRoutes(app, db, cfg, transcripts)

	sweeper := utils.InitializeTranscriptSweeper(transcripts)
	defer sweeper.Stop()

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
