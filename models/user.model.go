package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user can hold. Everyone starts as a learner; the creator role is
// granted through the application workflow.
const (
	RoleLearner = "learner"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// Creator application statuses.
const (
	ApplicationNone     = "none"
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// CreatorApplication is the embedded application sub-record on User. It is
// overwritten in place on re-application, never deleted.
type CreatorApplication struct {
	Bio        string     `json:"bio"`
	Experience string     `json:"experience"`
	Portfolio  string     `json:"portfolio"`
	AppliedAt  *time.Time `json:"applied_at"`
	Status     string     `json:"status" gorm:"default:'none'"`
	Feedback   string     `json:"feedback"`
}

type User struct {
	gorm.Model
	Name              string             `json:"name"`
	Email             string             `json:"email" gorm:"unique;not null"`
	Password          string             `json:"-" gorm:"not null"`
	Role              string             `json:"role" gorm:"default:'learner'"`
	IsCreatorApproved bool               `json:"is_creator_approved" gorm:"default:false"`
	Application       CreatorApplication `json:"creator_application" gorm:"embedded;embeddedPrefix:application_"`
	LastLogin         *time.Time         `json:"last_login"`
	IsDeleted         bool               `json:"-" gorm:"default:false"`
}
