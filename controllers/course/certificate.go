package controllers

import (
	"microcourses/middleware"
	"microcourses/models"
	courseModels "microcourses/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetCertificate returns the caller's certificate for a course.
func (ctl *CourseController) GetCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var cert courseModels.Certificate
	if err := ctl.DB.Where("student_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var course courseModels.Course
	ctl.DB.Where("id = ?", cert.CourseID).First(&course)

	var creator models.User
	ctl.DB.Select("name").Where("id = ?", course.CreatorID).First(&creator)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"certificate":  cert,
		"course_title": course.Title,
		"creator_name": creator.Name,
	})
}

// VerifyCertificate is the public, unauthenticated lookup by serial number
// used by third parties to verify a certificate is genuine.
func (ctl *CourseController) VerifyCertificate(c *fiber.Ctx) error {
	serial := c.Locals("serialNumber").(string)

	var cert courseModels.Certificate
	if err := ctl.DB.Where("serial_number = ? AND is_deleted = ?", serial, false).
		First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var student models.User
	ctl.DB.Select("name, email").Where("id = ?", cert.StudentID).First(&student)

	var course courseModels.Course
	ctl.DB.Where("id = ?", cert.CourseID).First(&course)

	var creator models.User
	ctl.DB.Select("name").Where("id = ?", course.CreatorID).First(&creator)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified successfully!", fiber.Map{
		"certificate":  cert,
		"student_name": student.Name,
		"course_title": course.Title,
		"creator_name": creator.Name,
	})
}
