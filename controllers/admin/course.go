package adminController

import (
	"math"

	"microcourses/middleware"
	"microcourses/models"
	courseModels "microcourses/models/course"
	adminValidator "microcourses/validators/admin"
	"microcourses/workflow"

	"github.com/gofiber/fiber/v2"
)

type adminCourseItem struct {
	courseModels.Course
	CreatorName  string `json:"creator_name"`
	CreatorEmail string `json:"creator_email"`
}

// ListCourses lists courses for the admin dashboard, optionally filtered by
// lifecycle status.
func (ctl *AdminController) ListCourses(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourseList").(*adminValidator.CourseListRequest)

	db := ctl.DB.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
	if reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	offset := (reqData.Page - 1) * reqData.Limit
	if err := db.Order("created_at desc").Offset(offset).Limit(reqData.Limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": ctl.withCreators(courses),
		"pagination": fiber.Map{
			"current": reqData.Page,
			"pages":   int(math.Ceil(float64(total) / float64(reqData.Limit))),
			"total":   total,
		},
	})
}

// PendingCourses returns the review queue: submitted courses first, plus
// drafts that already have lessons.
func (ctl *AdminController) PendingCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := ctl.DB.
		Where("is_deleted = ? AND (status = ? OR (status = ? AND total_lessons > 0))",
			false, courseModels.StatusPending, courseModels.StatusDraft).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending courses fetched successfully!", fiber.Map{
		"courses": ctl.withCreators(courses),
	})
}

// GetCourse returns full course details for review, lessons included.
func (ctl *AdminController) GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var creator models.User
	ctl.DB.Where("id = ?", course.CreatorID).First(&creator)

	var lessons []courseModels.Lesson
	ctl.DB.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":  course,
		"creator": creator,
		"lessons": lessons,
	})
}

// ReviewCourse resolves a pending course: approval publishes it, rejection
// parks it terminally. Only a pending course can be reviewed.
func (ctl *AdminController) ReviewCourse(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	reqData := c.Locals("validatedReview").(*adminValidator.ReviewRequest)

	var course courseModels.Course
	if err := ctl.DB.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	target := courseModels.StatusPublished
	if reqData.Status == "rejected" {
		target = courseModels.StatusRejected
	}

	status, err := workflow.CourseLifecycle.Transition(course.Status, target)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not pending review", nil)
	}

	course.Status = status
	course.AdminReview = courseModels.AdminReview{
		ReviewedBy: &adminID,
		ReviewedAt: reviewTimestamp(),
		Feedback:   reqData.Feedback,
		Status:     reqData.Status,
	}

	if err := ctl.DB.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review course!", nil)
	}

	if ctl.Mailer != nil {
		go ctl.notifyCreator(&course, reqData.Status, reqData.Feedback)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course "+reqData.Status+" successfully!", course)
}

// DashboardStats aggregates platform counts for the admin landing page.
func (ctl *AdminController) DashboardStats(c *fiber.Ctx) error {
	counts := fiber.Map{}

	countCourse := func(key string, query *int64, status string) {
		db := ctl.DB.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
		if status != "" {
			db = db.Where("status = ?", status)
		}
		db.Count(query)
		counts[key] = *query
	}

	var total, published, pending, rejected int64
	countCourse("total_courses", &total, "")
	countCourse("published_courses", &published, courseModels.StatusPublished)
	countCourse("pending_courses", &pending, courseModels.StatusPending)
	countCourse("rejected_courses", &rejected, courseModels.StatusRejected)

	var pendingApplications, creators, learners int64
	ctl.DB.Model(&models.User{}).
		Where("application_status = ? AND is_deleted = ?", models.ApplicationPending, false).
		Count(&pendingApplications)
	ctl.DB.Model(&models.User{}).
		Where("role = ? AND is_deleted = ?", models.RoleCreator, false).Count(&creators)
	ctl.DB.Model(&models.User{}).
		Where("role = ? AND is_deleted = ?", models.RoleLearner, false).Count(&learners)

	counts["pending_applications"] = pendingApplications
	counts["total_creators"] = creators
	counts["total_learners"] = learners

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"stats": counts,
	})
}

func (ctl *AdminController) withCreators(courses []courseModels.Course) []adminCourseItem {
	result := make([]adminCourseItem, len(courses))
	for i, course := range courses {
		var creator models.User
		ctl.DB.Select("name, email").Where("id = ?", course.CreatorID).First(&creator)
		result[i] = adminCourseItem{
			Course:       course,
			CreatorName:  creator.Name,
			CreatorEmail: creator.Email,
		}
	}
	return result
}

func (ctl *AdminController) notifyCreator(course *courseModels.Course, status, feedback string) {
	var creator models.User
	if err := ctl.DB.Where("id = ?", course.CreatorID).First(&creator).Error; err != nil {
		return
	}
	ctl.Mailer.SendCourseReviewEmail(creator.Name, creator.Email, course.Title, status, feedback)
}
