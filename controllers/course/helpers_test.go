package controllers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"microcourses/config"
	"microcourses/routers/courseRoutes"
	"microcourses/testutil"
	"microcourses/utils"

	"github.com/gofiber/fiber/v2"
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
	courseRoutes.SetupCourseRoutes(app, db, cfg, utils.NewMailer(cfg))
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

func jsonUnmarshal(raw json.RawMessage, v interface{}) error {
	return json.Unmarshal(raw, v)
}
