package adminValidator

import (
	"strconv"
	"strings"

	"microcourses/middleware"

	"github.com/gofiber/fiber/v2"
)

// ReviewRequest is the decision body shared by application review and
// course review.
type ReviewRequest struct {
	Status   string `json:"status" validate:"required,oneof=approved rejected"`
	Feedback string `json:"feedback"`
}

// CourseListRequest filters the admin course listing.
type CourseListRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=draft pending published rejected"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// ReviewApplication validates the :userId param plus the decision body.
func ReviewApplication() fiber.Handler {
	return reviewValidator("userId", "applicantID", "User ID")
}

// ReviewCourse validates the :id param plus the decision body.
func ReviewCourse() fiber.Handler {
	return reviewValidator("id", "courseID", "Course ID")
}

// CourseID validates the :id route param.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if msg := setParamID(c, "id", "courseID", "Course ID"); msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		return c.Next()
	}
}

// CourseList validates admin listing query params with paging defaults.
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
			reqData.Limit = 10
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

func reviewValidator(param, local, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if msg := setParamID(c, param, local, label); msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}

		reqData := new(ReviewRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}

func setParamID(c *fiber.Ctx, param, local, label string) string {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return label + " is required!"
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return "Invalid " + label + "!"
	}

	c.Locals(local, id)
	return ""
}
