package creatorController

import (
	"microcourses/middleware"
	courseModels "microcourses/models/course"
	creatorValidator "microcourses/validators/creator"
	"microcourses/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCourse creates a new course in draft.
func (ctl *CreatorController) CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedCourse").(*creatorValidator.CourseRequest)

	course := courseModels.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Thumbnail:   reqData.Thumbnail,
		CreatorID:   userID,
		Category:    reqData.Category,
		Level:       reqData.Level,
		Duration:    reqData.Duration,
		Price:       reqData.Price,
		Status:      courseModels.StatusDraft,
	}

	if err := ctl.DB.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// GetCourse returns one of the caller's own courses for editing.
func (ctl *CreatorController) GetCourse(c *fiber.Ctx) error {
	course, errResp := ctl.ownCourse(c)
	if course == nil {
		return errResp
	}

	var lessons []courseModels.Lesson
	ctl.DB.Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc").Find(&lessons)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":  course,
		"lessons": lessons,
	})
}

// UpdateCourse edits course fields. Permitted only while the course is a
// draft; a submitted or reviewed course is immutable to its creator.
func (ctl *CreatorController) UpdateCourse(c *fiber.Ctx) error {
	course, errResp := ctl.ownCourse(c)
	if course == nil {
		return errResp
	}

	if !course.Editable() {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot edit course after submission!", nil)
	}

	reqData := c.Locals("validatedCourse").(*creatorValidator.CourseRequest)

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Thumbnail = reqData.Thumbnail
	course.Category = reqData.Category
	course.Level = reqData.Level
	course.Duration = reqData.Duration
	course.Price = reqData.Price

	if err := ctl.DB.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse removes a course and its lessons. Permitted for any status
// except published.
func (ctl *CreatorController) DeleteCourse(c *fiber.Ctx) error {
	course, errResp := ctl.ownCourse(c)
	if course == nil {
		return errResp
	}

	if course.Status == courseModels.StatusPublished {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot delete published course!", nil)
	}

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&courseModels.Lesson{}).
			Where("course_id = ?", course.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(course).Update("is_deleted", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// SubmitForReview moves a draft with at least one lesson into the admin
// review queue.
func (ctl *CreatorController) SubmitForReview(c *fiber.Ctx) error {
	course, errResp := ctl.ownCourse(c)
	if course == nil {
		return errResp
	}

	var lessonCount int64
	ctl.DB.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&lessonCount)
	if lessonCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course must have at least one lesson", nil)
	}

	status, err := workflow.CourseLifecycle.Transition(course.Status, courseModels.StatusPending)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course cannot be submitted in its current state!", nil)
	}

	course.Status = status
	if err := ctl.DB.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course submitted for review!", course)
}

// Dashboard summarizes the caller's courses and audience.
func (ctl *CreatorController) Dashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	if err := ctl.DB.Where("creator_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	var published, pending int
	courseIDs := make([]uint, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
		switch course.Status {
		case courseModels.StatusPublished:
			published++
		case courseModels.StatusPending:
			pending++
		}
	}

	var totalStudents int64
	if len(courseIDs) > 0 {
		ctl.DB.Model(&courseModels.Enrollment{}).
			Where("course_id IN ? AND is_deleted = ?", courseIDs, false).Count(&totalStudents)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"courses": courses,
		"stats": fiber.Map{
			"total_courses":     len(courses),
			"published_courses": published,
			"pending_courses":   pending,
			"total_students":    totalStudents,
		},
	})
}

// ownCourse loads the :id course owned by the caller. On failure the error
// response has already been written and the course is nil.
func (ctl *CreatorController) ownCourse(c *fiber.Ctx) (*courseModels.Course, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := ctl.DB.Where("id = ? AND creator_id = ? AND is_deleted = ?",
		courseID, userID, false).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	return &course, nil
}
