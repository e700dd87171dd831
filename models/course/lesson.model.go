package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transcript statuses for a lesson's video.
const (
	TranscriptPending    = "pending"
	TranscriptProcessing = "processing"
	TranscriptCompleted  = "completed"
	TranscriptFailed     = "failed"
)

// Resource is a downloadable attachment on a lesson, stored inside the
// Resources JSON column.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"` // pdf, doc, link, other
}

// Lesson is an ordered content unit of a course. (course_id, order_index)
// is unique: each lesson occupies a distinct position.
type Lesson struct {
	gorm.Model
	CourseID         uint           `json:"course_id" gorm:"uniqueIndex:idx_lesson_course_order;not null"`
	OrderIndex       int            `json:"order" gorm:"uniqueIndex:idx_lesson_course_order;not null"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	VideoURL         string         `json:"video_url"`
	Duration         int            `json:"duration" gorm:"default:0"` // duration in minutes
	Transcript       string         `json:"transcript" gorm:"type:text"`
	TranscriptStatus string         `json:"transcript_status" gorm:"default:'pending'"`
	Resources        datatypes.JSON `json:"resources"`
	IsDeleted        bool           `json:"-" gorm:"default:false"`
}
