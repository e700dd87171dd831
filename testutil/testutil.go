// Package testutil provides the in-memory database and fixtures shared by
// handler tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"microcourses/config"
	"microcourses/database"
	"microcourses/middleware"
	"microcourses/models"
	courseModels "microcourses/models/course"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config returns a deterministic test configuration.
func Config() *config.Config {
	return &config.Config{
		Port:             "0",
		JWTKey:           "test-secret",
		SaltRound:        4,
		ClientURL:        "http://localhost:5174",
		WhisperSecretKey: "webhook-test-key",
	}
}

// DB opens an isolated in-memory sqlite database, migrated and namespaced
// per test.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// SeedUser creates a user with the given role.
func SeedUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: "not-a-real-hash",
		Role:     role,
		Application: models.CreatorApplication{
			Status: models.ApplicationNone,
		},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// SeedCourse creates a course owned by creatorID in the given status.
func SeedCourse(t *testing.T, db *gorm.DB, creatorID uint, title, status string) *courseModels.Course {
	t.Helper()

	course := &courseModels.Course{
		Title:       title,
		Description: "seeded course",
		Thumbnail:   "https://example.com/thumb.png",
		CreatorID:   creatorID,
		Category:    "engineering",
		Level:       courseModels.LevelBeginner,
		Duration:    60,
		Status:      status,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

// SeedLesson creates a lesson at the given order and bumps the course
// lesson count.
func SeedLesson(t *testing.T, db *gorm.DB, courseID uint, order int) *courseModels.Lesson {
	t.Helper()

	lesson := &courseModels.Lesson{
		CourseID:         courseID,
		OrderIndex:       order,
		Title:            fmt.Sprintf("Lesson %d", order),
		Description:      "seeded lesson",
		VideoURL:         "https://example.com/video.mp4",
		Duration:         10,
		TranscriptStatus: courseModels.TranscriptPending,
	}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	if err := db.Model(&courseModels.Course{}).Where("id = ?", courseID).
		Update("total_lessons", gorm.Expr("total_lessons + 1")).Error; err != nil {
		t.Fatalf("bump lesson count: %v", err)
	}
	return lesson
}

// SeedEnrollment enrolls a student in a course.
func SeedEnrollment(t *testing.T, db *gorm.DB, studentID, courseID uint) *courseModels.Enrollment {
	t.Helper()

	enrollment := &courseModels.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := db.Create(enrollment).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return enrollment
}

// Token mints a bearer token for a seeded user.
func Token(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(cfg, user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}
