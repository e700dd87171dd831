package creatorController

import (
	"encoding/json"

	"microcourses/middleware"
	courseModels "microcourses/models/course"
	creatorValidator "microcourses/validators/creator"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AddLesson appends a lesson to a draft course. The order index is assigned
// as lessonCount+1 so (course, order) stays unique, and totalLessons is
// kept in sync.
func (ctl *CreatorController) AddLesson(c *fiber.Ctx) error {
	course, errResp := ctl.ownCourse(c)
	if course == nil {
		return errResp
	}

	if !course.Editable() {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot add lessons after submission!", nil)
	}

	reqData := c.Locals("validatedLesson").(*creatorValidator.LessonRequest)

	resources, err := encodeResources(reqData.Resources)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson resources!", nil)
	}

	var lesson courseModels.Lesson
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var lessonCount int64
		if err := tx.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&lessonCount).Error; err != nil {
			return err
		}

		// Next position comes from the max over all rows, deleted
		// included, so a delete-then-add never collides on the
		// (course, order) unique index.
		var maxOrder int
		if err := tx.Model(&courseModels.Lesson{}).
			Where("course_id = ?", course.ID).
			Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder).Error; err != nil {
			return err
		}

		lesson = courseModels.Lesson{
			CourseID:         course.ID,
			OrderIndex:       maxOrder + 1,
			Title:            reqData.Title,
			Description:      reqData.Description,
			VideoURL:         reqData.VideoURL,
			Duration:         reqData.Duration,
			TranscriptStatus: courseModels.TranscriptPending,
			Resources:        resources,
		}
		if err := tx.Create(&lesson).Error; err != nil {
			return err
		}

		return tx.Model(course).Update("total_lessons", lessonCount+1).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson added successfully!", lesson)
}

// ListLessons returns the ordered lessons of one of the caller's courses.
func (ctl *CreatorController) ListLessons(c *fiber.Ctx) error {
	course, errResp := ctl.ownCourse(c)
	if course == nil {
		return errResp
	}

	var lessons []courseModels.Lesson
	if err := ctl.DB.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": lessons,
	})
}

// UpdateLesson edits a lesson while its parent course is still a draft.
func (ctl *CreatorController) UpdateLesson(c *fiber.Ctx) error {
	lesson, course, errResp := ctl.ownLesson(c)
	if lesson == nil {
		return errResp
	}

	if !course.Editable() {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot edit lesson after submission!", nil)
	}

	reqData := c.Locals("validatedLesson").(*creatorValidator.LessonRequest)

	resources, err := encodeResources(reqData.Resources)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson resources!", nil)
	}

	lesson.Title = reqData.Title
	lesson.Description = reqData.Description
	lesson.VideoURL = reqData.VideoURL
	lesson.Duration = reqData.Duration
	lesson.Resources = resources

	if err := ctl.DB.Save(lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// DeleteLesson removes a lesson from a draft course and recomputes
// totalLessons.
func (ctl *CreatorController) DeleteLesson(c *fiber.Ctx) error {
	lesson, course, errResp := ctl.ownLesson(c)
	if lesson == nil {
		return errResp
	}

	if !course.Editable() {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot delete lesson after submission!", nil)
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(lesson).Update("is_deleted", true).Error; err != nil {
			return err
		}

		var lessonCount int64
		if err := tx.Model(&courseModels.Lesson{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&lessonCount).Error; err != nil {
			return err
		}
		return tx.Model(course).Update("total_lessons", lessonCount).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// ownLesson loads the :id lesson and its parent course, enforcing
// ownership. On failure the error response has already been written.
func (ctl *CreatorController) ownLesson(c *fiber.Ctx) (*courseModels.Lesson, *courseModels.Course, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var course courseModels.Course
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", lesson.CourseID, false).First(&course).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.CreatorID != userID {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to modify this lesson!", nil)
	}

	return &lesson, &course, nil
}

func encodeResources(resources []creatorValidator.LessonResource) (datatypes.JSON, error) {
	if len(resources) == 0 {
		return datatypes.JSON([]byte("[]")), nil
	}
	raw, err := json.Marshal(resources)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
