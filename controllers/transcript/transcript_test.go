package transcriptController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"microcourses/models"
	courseModels "microcourses/models/course"
	"microcourses/routers/transcriptRoutes"
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

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	cfg := testutil.Config()
	db := testutil.DB(t)

	app := fiber.New()
	transcriptRoutes.SetupTranscriptRoutes(app, db, cfg, utils.NewTranscriptService(db, cfg))
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(fiber.MethodPost, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("POST %s: read response: %v", path, err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("POST %s: decode response %q: %v", path, raw, err)
	}
	return resp.StatusCode, parsed
}

func seedLesson(t *testing.T, db *gorm.DB) *courseModels.Lesson {
	t.Helper()

	creator := testutil.SeedUser(t, db, "Creator", "creator@test.dev", models.RoleCreator)
	course := testutil.SeedCourse(t, db, creator.ID, "Go Basics", courseModels.StatusPublished)
	return testutil.SeedLesson(t, db, course.ID, 1)
}

func TestWebhookRejectsBadSecurityKey(t *testing.T) {
	app, db := newTestApp(t)
	lesson := seedLesson(t, db)

	code, resp := postJSON(t, app, "/webhooks/transcript-receive", fmt.Sprintf(
		`{"lessonId": %d, "transcriptText": "hello", "securityKey": "wrong-key"}`, lesson.ID))
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.False(t, resp.Status)

	var reloaded courseModels.Lesson
	require.NoError(t, db.First(&reloaded, lesson.ID).Error)
	assert.Empty(t, reloaded.Transcript)
}

func TestWebhookBadKeyBeatsMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	// Even an otherwise-invalid payload gets 401 first when the key is bad.
	code, _ := postJSON(t, app, "/webhooks/transcript-receive",
		`{"securityKey": "wrong-key"}`)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestWebhookRequiresLessonAndTranscript(t *testing.T) {
	app, _ := newTestApp(t)

	code, resp := postJSON(t, app, "/webhooks/transcript-receive",
		`{"securityKey": "webhook-test-key"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Missing lessonId or transcriptText", resp.Message)
}

func TestWebhookUnknownLesson(t *testing.T) {
	app, _ := newTestApp(t)

	code, resp := postJSON(t, app, "/webhooks/transcript-receive",
		`{"lessonId": 9999, "transcriptText": "hello", "securityKey": "webhook-test-key"}`)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.False(t, resp.Status)
}

func TestWebhookSavesTranscript(t *testing.T) {
	app, db := newTestApp(t)
	lesson := seedLesson(t, db)

	code, resp := postJSON(t, app, "/webhooks/transcript-receive", fmt.Sprintf(
		`{"lessonId": %d, "transcriptText": "Welcome to the course.", "securityKey": "webhook-test-key"}`,
		lesson.ID))
	require.Equal(t, fiber.StatusAccepted, code)
	assert.True(t, resp.Status)

	var reloaded courseModels.Lesson
	require.NoError(t, db.First(&reloaded, lesson.ID).Error)
	assert.Equal(t, "Welcome to the course.", reloaded.Transcript)
	assert.Equal(t, courseModels.TranscriptCompleted, reloaded.TranscriptStatus)
}

func TestGenerateUnknownLesson(t *testing.T) {
	app, _ := newTestApp(t)

	code, resp := postJSON(t, app, "/transcript/generate/9999", "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.False(t, resp.Status)
}

func TestGenerateAlreadyCompleted(t *testing.T) {
	app, db := newTestApp(t)
	lesson := seedLesson(t, db)
	require.NoError(t, db.Model(lesson).
		Update("transcript_status", courseModels.TranscriptCompleted).Error)

	code, resp := postJSON(t, app, fmt.Sprintf("/transcript/generate/%d", lesson.ID), "")
	require.Equal(t, fiber.StatusOK, code)
	assert.True(t, resp.Status)
	assert.Equal(t, "Transcript already generated", resp.Message)
}
