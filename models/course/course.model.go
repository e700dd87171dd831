package course

import (
	"time"

	"gorm.io/gorm"
)

// Course lifecycle statuses. Transitions are enforced by the workflow package;
// handlers never mutate Status without going through it.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusRejected  = "rejected"
)

// Course difficulty levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// AdminReview records the admin decision embedded on Course.
type AdminReview struct {
	ReviewedBy *uint      `json:"reviewed_by"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	Feedback   string     `json:"feedback"`
	Status     string     `json:"status"`
}

// Course represents a creator-authored course
type Course struct {
	gorm.Model
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Thumbnail   string      `json:"thumbnail"`
	CreatorID   uint        `json:"creator_id" gorm:"index;not null"`
	Category    string      `json:"category"`
	Level       string      `json:"level"`
	Duration    int         `json:"duration" gorm:"default:0"` // duration in minutes
	Price       float64     `json:"price" gorm:"default:0"`
	Status      string      `json:"status" gorm:"default:'draft';index"`
	AdminReview AdminReview `json:"admin_review" gorm:"embedded;embeddedPrefix:review_"`
	// TotalLessons mirrors the lesson count; kept in sync on every
	// lesson create/delete.
	TotalLessons int     `json:"total_lessons" gorm:"default:0"`
	Rating       float64 `json:"rating" gorm:"default:0"`
	TotalRatings int     `json:"total_ratings" gorm:"default:0"`
	IsDeleted    bool    `json:"-" gorm:"default:false"`
}

// Editable reports whether the creator may still change course content.
func (c *Course) Editable() bool {
	return c.Status == StatusDraft
}
