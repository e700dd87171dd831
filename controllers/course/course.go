package controllers

import (
	"math"

	"microcourses/middleware"
	"microcourses/models"
	courseModels "microcourses/models/course"
	courseValidator "microcourses/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseController serves the public catalog plus enrollment, progress and
// certificate routes for learners.
type CourseController struct {
	DB *gorm.DB
	// ClientURL is the SPA origin certificate verification links point at.
	ClientURL string
	Mailer    Mailer
}

// Mailer is the notification surface the controller needs; satisfied by
// utils.Mailer and stubbed in tests.
type Mailer interface {
	SendCertificateEmail(toName, toEmail, courseTitle, serialNumber string)
}

func NewCourseController(db *gorm.DB, clientURL string, mailer Mailer) *CourseController {
	return &CourseController{DB: db, ClientURL: clientURL, Mailer: mailer}
}

// verificationURL builds the public verification link embedded in a
// certificate.
func (ctl *CourseController) verificationURL(serial string) string {
	return ctl.ClientURL + "/certificate/verify/" + serial
}

type courseListItem struct {
	courseModels.Course
	CreatorName string `json:"creator_name"`
	IsEnrolled  bool   `json:"is_enrolled"`
}

// GetAllCourses lists published courses with category/level/search filters.
// When the caller is authenticated, each item carries an is_enrolled flag.
func (ctl *CourseController) GetAllCourses(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourseList").(*courseValidator.CourseListRequest)

	db := ctl.DB.Model(&courseModels.Course{}).
		Where("status = ? AND is_deleted = ?", courseModels.StatusPublished, false)

	if reqData.Category != "" {
		db = db.Where("category = ?", reqData.Category)
	}
	if reqData.Level != "" {
		db = db.Where("level = ?", reqData.Level)
	}
	if reqData.Search != "" {
		pattern := "%" + reqData.Search + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	offset := (reqData.Page - 1) * reqData.Limit
	if err := db.Order("created_at desc").Offset(offset).Limit(reqData.Limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	// Enrollment flags for signed-in callers
	enrolled := map[uint]bool{}
	if userID, ok := c.Locals("userId").(uint); ok {
		var enrollments []courseModels.Enrollment
		ctl.DB.Where("student_id = ? AND is_deleted = ?", userID, false).Find(&enrollments)
		for _, e := range enrollments {
			enrolled[e.CourseID] = true
		}
	}

	result := make([]courseListItem, len(courses))
	for i, course := range courses {
		var creator models.User
		ctl.DB.Select("name").Where("id = ?", course.CreatorID).First(&creator)
		result[i] = courseListItem{
			Course:      course,
			CreatorName: creator.Name,
			IsEnrolled:  enrolled[course.ID],
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"pagination": fiber.Map{
			"current": reqData.Page,
			"pages":   int(math.Ceil(float64(total) / float64(reqData.Limit))),
			"total":   total,
		},
	})
}

// GetCourseDetails returns a published course with its ordered lessons and,
// for an authenticated caller, their enrollment.
func (ctl *CourseController) GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := ctl.DB.Where("id = ? AND status = ? AND is_deleted = ?",
		courseID, courseModels.StatusPublished, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var creator models.User
	ctl.DB.Select("id, name, email").Where("id = ?", course.CreatorID).First(&creator)

	var lessons []courseModels.Lesson
	ctl.DB.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons)

	// Caller's enrollment, if any
	var enrollment *courseModels.Enrollment
	if userID, ok := c.Locals("userId").(uint); ok {
		var found courseModels.Enrollment
		if err := ctl.DB.Preload("CompletedLessons").
			Where("student_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
			First(&found).Error; err == nil {
			enrollment = &found
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":     course,
		"creator":    fiber.Map{"id": creator.ID, "name": creator.Name, "email": creator.Email},
		"lessons":    lessons,
		"enrollment": enrollment,
	})
}

// GetLesson returns one lesson to an enrolled student, resolved by lesson id
// alone.
func (ctl *CourseController) GetLesson(c *fiber.Ctx) error {
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

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson": lesson,
	})
}

// GetCourseLesson returns one lesson scoped by course id.
func (ctl *CourseController) GetCourseLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var enrollment courseModels.Enrollment
	if err := ctl.DB.Where("student_id = ? AND course_id = ? AND is_deleted = ?",
		userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var lesson courseModels.Lesson
	if err := ctl.DB.Where("id = ? AND course_id = ? AND is_deleted = ?",
		lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson": lesson,
	})
}
