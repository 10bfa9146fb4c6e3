package models

import (
	"time"
)

type Enrollment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID  uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User   User   `json:"user,omitempty"`
	Course Course `json:"course,omitempty"`
}
