package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a learner's relationship to one course with progress.
// (student_id, course_id) is unique: at most one enrollment per learner per
// course, which is what makes enroll idempotent.
type Enrollment struct {
	gorm.Model
	StudentID  uint      `json:"student_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	CourseID   uint      `json:"course_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	EnrolledAt time.Time `json:"enrolled_at"`
	// Progress is an integer percentage, recomputed from the completed
	// lesson count on every completion.
	Progress         int               `json:"progress" gorm:"default:0"`
	CompletedLessons []CompletedLesson `json:"completed_lessons" gorm:"foreignKey:EnrollmentID"`
	IsCompleted      bool              `json:"is_completed" gorm:"default:false"`
	CompletedAt      *time.Time        `json:"completed_at"`
	CertificateID    *uint             `json:"certificate_id"`
	IsDeleted        bool              `json:"-" gorm:"default:false"`
}

// CompletedLesson is one entry of an enrollment's completed-lesson set.
// (enrollment_id, lesson_id) is unique so a lesson can only count once.
type CompletedLesson struct {
	gorm.Model
	EnrollmentID uint      `json:"-" gorm:"uniqueIndex:idx_completion_enrollment_lesson;not null"`
	LessonID     uint      `json:"lesson_id" gorm:"uniqueIndex:idx_completion_enrollment_lesson;not null"`
	CompletedAt  time.Time `json:"completed_at"`
}
