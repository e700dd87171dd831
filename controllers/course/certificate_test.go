package controllers_test

import (
	"fmt"
	"testing"
	"time"

	"microcourses/models"
	courseModels "microcourses/models/course"
	"microcourses/testutil"
	"microcourses/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificateFetchAndPublicVerify(t *testing.T) {
	app, db, cfg := newTestApp(t)

	creator := testutil.SeedUser(t, db, "Ada Creator", "creator@test.dev", models.RoleCreator)
	course := testutil.SeedCourse(t, db, creator.ID, "Go Basics", courseModels.StatusPublished)

	learner := testutil.SeedUser(t, db, "Lin Learner", "learner@test.dev", models.RoleLearner)
	enrollment := testutil.SeedEnrollment(t, db, learner.ID, course.ID)

	serial := utils.GenerateSerialNumber(learner.ID, course.ID)
	cert := courseModels.Certificate{
		StudentID:       learner.ID,
		CourseID:        course.ID,
		EnrollmentID:    enrollment.ID,
		SerialNumber:    serial,
		IssuedAt:        time.Now(),
		VerificationURL: cfg.ClientURL + "/certificate/verify/" + serial,
	}
	require.NoError(t, db.Create(&cert).Error)

	token := testutil.Token(t, cfg, learner)
	code, resp := doRequest(t, app, fiber.MethodGet,
		fmt.Sprintf("/courses/%d/certificate", course.ID), token, "")
	require.Equal(t, fiber.StatusOK, code)

	var owned struct {
		Certificate courseModels.Certificate `json:"certificate"`
		CourseTitle string                   `json:"course_title"`
		CreatorName string                   `json:"creator_name"`
	}
	require.NoError(t, jsonUnmarshal(resp.Data, &owned))
	assert.Equal(t, serial, owned.Certificate.SerialNumber)
	assert.Equal(t, "Go Basics", owned.CourseTitle)
	assert.Equal(t, "Ada Creator", owned.CreatorName)

	// Public lookup needs no token and names the same student and course.
	code, resp = doRequest(t, app, fiber.MethodGet,
		"/courses/certificate/verify/"+serial, "", "")
	require.Equal(t, fiber.StatusOK, code)

	var verified struct {
		Certificate courseModels.Certificate `json:"certificate"`
		StudentName string                   `json:"student_name"`
		CourseTitle string                   `json:"course_title"`
		CreatorName string                   `json:"creator_name"`
	}
	require.NoError(t, jsonUnmarshal(resp.Data, &verified))
	assert.Equal(t, serial, verified.Certificate.SerialNumber)
	assert.Equal(t, "Lin Learner", verified.StudentName)
	assert.Equal(t, "Go Basics", verified.CourseTitle)
	assert.Equal(t, "Ada Creator", verified.CreatorName)
}

func TestVerifyUnknownSerial(t *testing.T) {
	app, _, _ := newTestApp(t)

	code, resp := doRequest(t, app, fiber.MethodGet,
		"/courses/certificate/verify/0123456789ABCDEF", "", "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.False(t, resp.Status)
}

func TestCertificateBelongsToCaller(t *testing.T) {
	app, db, cfg := newTestApp(t)

	creator := testutil.SeedUser(t, db, "Creator", "creator@test.dev", models.RoleCreator)
	course := testutil.SeedCourse(t, db, creator.ID, "Go Basics", courseModels.StatusPublished)

	owner := testutil.SeedUser(t, db, "Owner", "owner@test.dev", models.RoleLearner)
	enrollment := testutil.SeedEnrollment(t, db, owner.ID, course.ID)

	cert := courseModels.Certificate{
		StudentID:    owner.ID,
		CourseID:     course.ID,
		EnrollmentID: enrollment.ID,
		SerialNumber: utils.GenerateSerialNumber(owner.ID, course.ID),
		IssuedAt:     time.Now(),
	}
	require.NoError(t, db.Create(&cert).Error)

	other := testutil.SeedUser(t, db, "Other", "other@test.dev", models.RoleLearner)
	token := testutil.Token(t, cfg, other)

	code, resp := doRequest(t, app, fiber.MethodGet,
		fmt.Sprintf("/courses/%d/certificate", course.ID), token, "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.False(t, resp.Status)
}
