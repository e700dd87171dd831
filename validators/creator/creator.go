package creatorValidator

import (
	"strconv"
	"strings"

	"microcourses/middleware"

	"github.com/gofiber/fiber/v2"
)

// ApplyRequest is the POST /creator/apply body.
type ApplyRequest struct {
	Bio        string `json:"bio" validate:"required,min=20"`
	Experience string `json:"experience" validate:"required"`
	Portfolio  string `json:"portfolio" validate:"omitempty,url"`
}

// CourseRequest is the body for course create and update.
type CourseRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"required"`
	Thumbnail   string  `json:"thumbnail" validate:"required,url"`
	Category    string  `json:"category" validate:"required"`
	Level       string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Duration    int     `json:"duration" validate:"required,min=1"` // minutes
	Price       float64 `json:"price" validate:"min=0"`
}

// LessonResource mirrors one entry of a lesson's resources list.
type LessonResource struct {
	Title string `json:"title" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Type  string `json:"type" validate:"required,oneof=pdf doc link other"`
}

// LessonRequest is the body for lesson create and update.
type LessonRequest struct {
	Title       string           `json:"title" validate:"required,min=3,max=200"`
	Description string           `json:"description" validate:"required"`
	VideoURL    string           `json:"video_url" validate:"required,url"`
	Duration    int              `json:"duration" validate:"required,min=1"` // minutes
	Resources   []LessonResource `json:"resources" validate:"omitempty,dive"`
}

// Apply validator middleware
func Apply() fiber.Handler {
	return bodyValidator("validatedApplication", func() interface{} { return new(ApplyRequest) })
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return bodyValidator("validatedCourse", func() interface{} { return new(CourseRequest) })
}

// UpdateCourse validates the :id param plus the course body.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if msg := setParamID(c, "id", "courseID", "Course ID"); msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		return bodyValidator("validatedCourse", func() interface{} { return new(CourseRequest) })(c)
	}
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

// AddLesson validates the :id param plus the lesson body.
func AddLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if msg := setParamID(c, "id", "courseID", "Course ID"); msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		return bodyValidator("validatedLesson", func() interface{} { return new(LessonRequest) })(c)
	}
}

// UpdateLesson validates the :id param plus the lesson body.
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if msg := setParamID(c, "id", "lessonID", "Lesson ID"); msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		return bodyValidator("validatedLesson", func() interface{} { return new(LessonRequest) })(c)
	}
}

// LessonID validates the :id route param for lesson routes.
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if msg := setParamID(c, "id", "lessonID", "Lesson ID"); msg != "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		}
		return c.Next()
	}
}

// bodyValidator parses and validates a request body struct, stashing it
// under the given Locals key.
func bodyValidator(local string, build func() interface{}) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := build()
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(local, reqData)
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
