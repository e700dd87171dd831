package controllers

import (
	"log"
	"math"
	"time"

	"microcourses/middleware"
	"microcourses/models"
	courseModels "microcourses/models/course"
	"microcourses/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompleteLesson marks a lesson done for the calling student, recomputes
// the enrollment's progress and, on reaching 100%, flips completion and
// mints the certificate. The enrollment update and certificate insert run
// in one transaction; the unique index on certificates.enrollment_id makes
// issuance safe under concurrent completion of the final lesson.
func (ctl *CourseController) CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := ctl.DB.Where("student_id = ? AND course_id = ? AND is_deleted = ?",
		userID, lesson.CourseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	// Already completed: return the enrollment unchanged so client retries
	// stay idempotent.
	var existing courseModels.CompletedLesson
	if err := ctl.DB.Where("enrollment_id = ? AND lesson_id = ?",
		enrollment.ID, lessonID).First(&existing).Error; err == nil {
		ctl.DB.Preload("CompletedLessons").First(&enrollment, enrollment.ID)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already completed", enrollment)
	}

	var minted *courseModels.Certificate
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		completion := courseModels.CompletedLesson{
			EnrollmentID: enrollment.ID,
			LessonID:     uint(lessonID),
			CompletedAt:  now,
		}
		if err := tx.Create(&completion).Error; err != nil {
			return err
		}

		var completedCount int64
		if err := tx.Model(&courseModels.CompletedLesson{}).
			Where("enrollment_id = ?", enrollment.ID).Count(&completedCount).Error; err != nil {
			return err
		}

		var totalLessons int64
		if err := tx.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ?", lesson.CourseID, false).
			Count(&totalLessons).Error; err != nil {
			return err
		}

		enrollment.Progress = computeProgress(int(completedCount), int(totalLessons))

		if enrollment.Progress == 100 && !enrollment.IsCompleted {
			enrollment.IsCompleted = true
			enrollment.CompletedAt = &now

			if enrollment.CertificateID == nil {
				cert, err := ctl.issueCertificate(tx, &enrollment, lesson.CourseID, now)
				if err != nil {
					return err
				}
				enrollment.CertificateID = &cert.ID
				minted = cert
			}
		}

		return tx.Save(&enrollment).Error
	})
	if err != nil {
		log.Printf("Error completing lesson %d for user %d: %v", lessonID, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to complete lesson!", nil)
	}

	if minted != nil {
		go ctl.notifyCertificate(userID, lesson.CourseID, minted.SerialNumber)
	}

	ctl.DB.Preload("CompletedLessons").First(&enrollment, enrollment.ID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completed successfully!", enrollment)
}

// computeProgress rounds the completed fraction to an integer percentage,
// clamped to 100. A course with zero lessons counts as fully complete.
func computeProgress(completed, total int) int {
	if total == 0 {
		return 100
	}
	progress := int(math.Round(100 * float64(completed) / float64(total)))
	if progress > 100 {
		progress = 100
	}
	return progress
}

// issueCertificate mints a certificate for a completed enrollment inside
// the caller's transaction. If a concurrent request minted one first, the
// unique enrollment_id index rejects the insert and the existing row is
// returned instead.
func (ctl *CourseController) issueCertificate(tx *gorm.DB, enrollment *courseModels.Enrollment, courseID uint, now time.Time) (*courseModels.Certificate, error) {
	serial := utils.GenerateSerialNumber(enrollment.StudentID, courseID)

	cert := courseModels.Certificate{
		StudentID:       enrollment.StudentID,
		CourseID:        courseID,
		EnrollmentID:    enrollment.ID,
		SerialNumber:    serial,
		IssuedAt:        now,
		VerificationURL: ctl.verificationURL(serial),
		PdfURL:          "certificates/" + uuid.NewString() + ".pdf",
	}

	if err := tx.Create(&cert).Error; err != nil {
		var existing courseModels.Certificate
		if dbErr := tx.Where("enrollment_id = ?", enrollment.ID).First(&existing).Error; dbErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &cert, nil
}

func (ctl *CourseController) notifyCertificate(studentID, courseID uint, serial string) {
	if ctl.Mailer == nil {
		return
	}

	var student models.User
	var course courseModels.Course
	if err := ctl.DB.Where("id = ?", studentID).First(&student).Error; err != nil {
		return
	}
	if err := ctl.DB.Where("id = ?", courseID).First(&course).Error; err != nil {
		return
	}

	ctl.Mailer.SendCertificateEmail(student.Name, student.Email, course.Title, serial)
}
