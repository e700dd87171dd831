package controllers

import (
	"time"

	"microcourses/middleware"
	courseModels "microcourses/models/course"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the learner in a published course. Enroll is
// idempotent: re-enrolling returns the existing enrollment unchanged with
// 200 instead of an error, so client retries are safe.
func (ctl *CourseController) EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := ctl.DB.Where("id = ? AND status = ? AND is_deleted = ?",
		courseID, courseModels.StatusPublished, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing courseModels.Enrollment
	if err := ctl.DB.Where("student_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled in this course", existing)
	}

	enrollment := courseModels.Enrollment{
		StudentID:  userID,
		CourseID:   uint(courseID),
		EnrolledAt: time.Now(),
	}

	if err := ctl.DB.Create(&enrollment).Error; err != nil {
		// The unique (student, course) index absorbs a concurrent
		// double-enroll: fall back to the row the other request created.
		if dbErr := ctl.DB.Where("student_id = ? AND course_id = ?", userID, courseID).
			First(&existing).Error; dbErr == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled in this course", existing)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

// GetUserEnrollments lists the caller's enrollments with course summaries.
func (ctl *CourseController) GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := ctl.DB.Preload("CompletedLessons").
		Where("student_id = ? AND is_deleted = ?", userID, false).
		Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type enrollmentWithCourse struct {
		courseModels.Enrollment
		CourseTitle     string `json:"course_title"`
		CourseThumbnail string `json:"course_thumbnail"`
		TotalLessons    int    `json:"total_lessons"`
	}

	result := make([]enrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course courseModels.Course
		ctl.DB.Where("id = ?", e.CourseID).First(&course)
		result[i] = enrollmentWithCourse{
			Enrollment:      e,
			CourseTitle:     course.Title,
			CourseThumbnail: course.Thumbnail,
			TotalLessons:    course.TotalLessons,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}

// GetUserProgress returns the caller's enrollment for one course, with the
// completed-lesson set expanded.
func (ctl *CourseController) GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := ctl.DB.Preload("CompletedLessons").
		Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not enrolled in this course!", nil)
	}

	var course courseModels.Course
	ctl.DB.Select("id, title, thumbnail, total_lessons").Where("id = ?", courseID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"course": fiber.Map{
			"id":            course.ID,
			"title":         course.Title,
			"thumbnail":     course.Thumbnail,
			"total_lessons": course.TotalLessons,
		},
	})
}
