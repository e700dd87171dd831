package utils_test

import (
	"testing"
	"time"

	"microcourses/models"
	courseModels "microcourses/models/course"
	"microcourses/testutil"
	"microcourses/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepStaleFailsOldProcessingJobs(t *testing.T) {
	cfg := testutil.Config()
	db := testutil.DB(t)
	svc := utils.NewTranscriptService(db, cfg)

	creator := testutil.SeedUser(t, db, "Creator", "creator@test.dev", models.RoleCreator)
	course := testutil.SeedCourse(t, db, creator.ID, "Go Basics", courseModels.StatusPublished)

	stale := testutil.SeedLesson(t, db, course.ID, 1)
	fresh := testutil.SeedLesson(t, db, course.ID, 2)
	done := testutil.SeedLesson(t, db, course.ID, 3)

	require.NoError(t, db.Model(stale).UpdateColumns(map[string]interface{}{
		"transcript_status": courseModels.TranscriptProcessing,
		"updated_at":        time.Now().Add(-2 * time.Hour),
	}).Error)
	require.NoError(t, db.Model(fresh).
		Update("transcript_status", courseModels.TranscriptProcessing).Error)
	require.NoError(t, db.Model(done).
		Update("transcript_status", courseModels.TranscriptCompleted).Error)

	svc.SweepStale(time.Hour)

	status := func(id uint) string {
		var lesson courseModels.Lesson
		require.NoError(t, db.First(&lesson, id).Error)
		return lesson.TranscriptStatus
	}

	assert.Equal(t, courseModels.TranscriptFailed, status(stale.ID))
	assert.Equal(t, courseModels.TranscriptProcessing, status(fresh.ID))
	assert.Equal(t, courseModels.TranscriptCompleted, status(done.ID))
}
