package courseValidator

import (
	"strconv"
	"strings"

	"microcourses/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseListRequest holds the catalog listing filters.
type CourseListRequest struct {
	Category string `query:"category"`
	Level    string `query:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Search   string `query:"search"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

// CourseList validates catalog listing query params and applies the
// page/limit defaults.
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 || reqData.Limit > 100 {
			reqData.Limit = 12
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route param and stores it as courseID.
func CourseID() fiber.Handler {
	return paramID("id", "courseID", "Course ID")
}

// LessonID validates the :lessonId route param and stores it as lessonID.
func LessonID() fiber.Handler {
	return paramID("lessonId", "lessonID", "Lesson ID")
}

// CourseLesson validates the :courseId/:lessonId route param pair.
func CourseLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, msg := parseID(c, "courseId", "Course ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		lessonID, msg := parseID(c, "lessonId", "Lesson ID")
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// CertificateCourse validates the :courseId route param for certificate
// lookup.
func CertificateCourse() fiber.Handler {
	return paramID("courseId", "courseID", "Course ID")
}

// VerifySerial validates the :serialNumber route param.
func VerifySerial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		serial := strings.TrimSpace(c.Params("serialNumber"))
		if serial == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Serial number is required!", nil)
		}
		c.Locals("serialNumber", serial)
		return c.Next()
	}
}

// paramID builds a middleware validating an integer route param.
func paramID(param, local, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, msg := parseID(c, param, label)
		if msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}

		c.Locals(local, id)
		return c.Next()
	}
}

// parseID validates an integer route param, returning the id or a
// client-facing error message.
func parseID(c *fiber.Ctx, param, label string) (int, string) {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return 0, label + " is required!"
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, "Invalid " + label + "!"
	}
	return id, ""
}
