package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is the proof-of-completion artifact minted when an enrollment
// reaches 100%. The unique index on EnrollmentID guarantees at most one
// certificate per enrollment even under concurrent final-lesson completions;
// SerialNumber is globally unique for public verification.
type Certificate struct {
	gorm.Model
	StudentID       uint      `json:"student_id" gorm:"index;not null"`
	CourseID        uint      `json:"course_id" gorm:"index;not null"`
	EnrollmentID    uint      `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	SerialNumber    string    `json:"serial_number" gorm:"uniqueIndex;not null"`
	IssuedAt        time.Time `json:"issued_at"`
	VerificationURL string    `json:"verification_url"`
	PdfURL          string    `json:"pdf_url"`
	IsDeleted       bool      `json:"-" gorm:"default:false"`
}
