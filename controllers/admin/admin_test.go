package adminController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"microcourses/config"
	"microcourses/models"
	courseModels "microcourses/models/course"
	"microcourses/routers/adminRoutes"
	"microcourses/testutil"
	"microcourses/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	cfg := testutil.Config()
	db := testutil.DB(t)

	app := fiber.New()
	adminRoutes.SetupAdminRoutes(app, db, cfg, utils.NewMailer(cfg))
	return app, db, cfg
}

func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("%s %s: read response: %v", method, path, err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, path, raw, err)
	}
	return resp.StatusCode, parsed
}

func seedApplicant(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := testutil.SeedUser(t, db, "Applicant", email, models.RoleLearner)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("application_status", models.ApplicationPending).Error)
	return user
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app, db, cfg := newTestApp(t)

	learner := testutil.SeedUser(t, db, "Learner", "learner@test.dev", models.RoleLearner)
	token := testutil.Token(t, cfg, learner)

	code, resp := doRequest(t, app, fiber.MethodGet, "/admin/applications", token, "")
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.False(t, resp.Status)
}

func TestApproveApplicationPromotesToCreator(t *testing.T) {
	app, db, cfg := newTestApp(t)

	admin := testutil.SeedUser(t, db, "Admin", "admin@test.dev", models.RoleAdmin)
	applicant := seedApplicant(t, db, "applicant@test.dev")
	token := testutil.Token(t, cfg, admin)

	code, resp := doRequest(t, app, fiber.MethodPut,
		fmt.Sprintf("/admin/applications/%d", applicant.ID), token,
		`{"status": "approved", "feedback": "Welcome aboard"}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.True(t, resp.Status)

	var user models.User
	require.NoError(t, db.First(&user, applicant.ID).Error)
	assert.Equal(t, models.RoleCreator, user.Role)
	assert.True(t, user.IsCreatorApproved)
	assert.Equal(t, models.ApplicationApproved, user.Application.Status)
	assert.Equal(t, "Welcome aboard", user.Application.Feedback)
}

func TestRejectApplicationKeepsLearnerRole(t *testing.T) {
	app, db, cfg := newTestApp(t)

	admin := testutil.SeedUser(t, db, "Admin", "admin@test.dev", models.RoleAdmin)
	applicant := seedApplicant(t, db, "applicant@test.dev")
	token := testutil.Token(t, cfg, admin)

	code, _ := doRequest(t, app, fiber.MethodPut,
		fmt.Sprintf("/admin/applications/%d", applicant.ID), token,
		`{"status": "rejected", "feedback": "Need more experience"}`)
	require.Equal(t, fiber.StatusOK, code)

	var user models.User
	require.NoError(t, db.First(&user, applicant.ID).Error)
	assert.Equal(t, models.RoleLearner, user.Role)
	assert.False(t, user.IsCreatorApproved)
	assert.Equal(t, models.ApplicationRejected, user.Application.Status)
}

func TestReviewProcessedApplicationFails(t *testing.T) {
	app, db, cfg := newTestApp(t)

	admin := testutil.SeedUser(t, db, "Admin", "admin@test.dev", models.RoleAdmin)
	applicant := seedApplicant(t, db, "applicant@test.dev")
	token := testutil.Token(t, cfg, admin)

	path := fmt.Sprintf("/admin/applications/%d", applicant.ID)
	body := `{"status": "approved"}`

	code, _ := doRequest(t, app, fiber.MethodPut, path, token, body)
	require.Equal(t, fiber.StatusOK, code)

	code, resp := doRequest(t, app, fiber.MethodPut, path, token, body)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Application already processed", resp.Message)
}

func TestReviewRequiresKnownDecision(t *testing.T) {
	app, db, cfg := newTestApp(t)

	admin := testutil.SeedUser(t, db, "Admin", "admin@test.dev", models.RoleAdmin)
	applicant := seedApplicant(t, db, "applicant@test.dev")
	token := testutil.Token(t, cfg, admin)

	code, resp := doRequest(t, app, fiber.MethodPut,
		fmt.Sprintf("/admin/applications/%d", applicant.ID), token,
		`{"status": "maybe"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.False(t, resp.Status)
}

func TestApproveCoursePublishesIt(t *testing.T) {
	app, db, cfg := newTestApp(t)

	admin := testutil.SeedUser(t, db, "Admin", "admin@test.dev", models.RoleAdmin)
	creator := testutil.SeedUser(t, db, "Creator", "creator@test.dev", models.RoleCreator)
	course := testutil.SeedCourse(t, db, creator.ID, "Submitted Course", courseModels.StatusPending)
	token := testutil.Token(t, cfg, admin)

	code, resp := doRequest(t, app, fiber.MethodPut,
		fmt.Sprintf("/admin/courses/%d/review", course.ID), token,
		`{"status": "approved", "feedback": "Looks good"}`)
	require.Equal(t, fiber.StatusOK, code)
	assert.True(t, resp.Status)

	var reloaded courseModels.Course
	require.NoError(t, db.First(&reloaded, course.ID).Error)
	assert.Equal(t, courseModels.StatusPublished, reloaded.Status)
	require.NotNil(t, reloaded.AdminReview.ReviewedBy)
	assert.Equal(t, admin.ID, *reloaded.AdminReview.ReviewedBy)
	assert.NotNil(t, reloaded.AdminReview.ReviewedAt)
	assert.Equal(t, "Looks good", reloaded.AdminReview.Feedback)
}

func TestRejectedCourseIsTerminal(t *testing.T) {
	app, db, cfg := newTestApp(t)

	admin := testutil.SeedUser(t, db, "Admin", "admin@test.dev", models.RoleAdmin)
	creator := testutil.SeedUser(t, db, "Creator", "creator@test.dev", models.RoleCreator)
	course := testutil.SeedCourse(t, db, creator.ID, "Submitted Course", courseModels.StatusPending)
	token := testutil.Token(t, cfg, admin)

	path := fmt.Sprintf("/admin/courses/%d/review", course.ID)

	code, _ := doRequest(t, app, fiber.MethodPut, path, token, `{"status": "rejected", "feedback": "Too thin"}`)
	require.Equal(t, fiber.StatusOK, code)

	var reloaded courseModels.Course
	require.NoError(t, db.First(&reloaded, course.ID).Error)
	assert.Equal(t, courseModels.StatusRejected, reloaded.Status)

	// A rejected course cannot be re-reviewed into publication.
	code, resp := doRequest(t, app, fiber.MethodPut, path, token, `{"status": "approved"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Course is not pending review", resp.Message)
}

func TestReviewDraftCourseFails(t *testing.T) {
	app, db, cfg := newTestApp(t)

	admin := testutil.SeedUser(t, db, "Admin", "admin@test.dev", models.RoleAdmin)
	creator := testutil.SeedUser(t, db, "Creator", "creator@test.dev", models.RoleCreator)
	draft := testutil.SeedCourse(t, db, creator.ID, "Draft Course", courseModels.StatusDraft)
	token := testutil.Token(t, cfg, admin)

	code, resp := doRequest(t, app, fiber.MethodPut,
		fmt.Sprintf("/admin/courses/%d/review", draft.ID), token,
		`{"status": "approved"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Course is not pending review", resp.Message)
}

func TestListApplicationsReturnsPendingOnly(t *testing.T) {
	app, db, cfg := newTestApp(t)

	admin := testutil.SeedUser(t, db, "Admin", "admin@test.dev", models.RoleAdmin)
	seedApplicant(t, db, "pending@test.dev")
	testutil.SeedUser(t, db, "Bystander", "bystander@test.dev", models.RoleLearner)
	token := testutil.Token(t, cfg, admin)

	code, resp := doRequest(t, app, fiber.MethodGet, "/admin/applications", token, "")
	require.Equal(t, fiber.StatusOK, code)

	var data struct {
		Applications []models.User `json:"applications"`
		Total        int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Equal(t, 1, data.Total)
	assert.Equal(t, "pending@test.dev", data.Applications[0].Email)
}

func TestListCoursesFiltersByStatus(t *testing.T) {
	app, db, cfg := newTestApp(t)

	admin := testutil.SeedUser(t, db, "Admin", "admin@test.dev", models.RoleAdmin)
	creator := testutil.SeedUser(t, db, "Creator", "creator@test.dev", models.RoleCreator)
	testutil.SeedCourse(t, db, creator.ID, "Draft Course", courseModels.StatusDraft)
	pending := testutil.SeedCourse(t, db, creator.ID, "Pending Course", courseModels.StatusPending)
	token := testutil.Token(t, cfg, admin)

	code, resp := doRequest(t, app, fiber.MethodGet, "/admin/courses?status=pending", token, "")
	require.Equal(t, fiber.StatusOK, code)

	var data struct {
		Courses []struct {
			ID          uint   `json:"ID"`
			CreatorName string `json:"creator_name"`
		} `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data.Courses, 1)
	assert.Equal(t, pending.ID, data.Courses[0].ID)
	assert.Equal(t, "Creator", data.Courses[0].CreatorName)
}
