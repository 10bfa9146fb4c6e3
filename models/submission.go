package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Submission is one graded answer set from a student. The number of
// submissions against an assessment is what locks its question set.
type Submission struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	AssessmentID uint           `json:"assessment_id" gorm:"not null;index"`
	UserID       uint           `json:"user_id" gorm:"not null;index"`
	Answers      datatypes.JSON `json:"answers"`
	Score        int            `json:"score" gorm:"not null;default:0"`
	MaxScore     int            `json:"max_score" gorm:"not null;default:0"`
	Passed       bool           `json:"passed" gorm:"not null;default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Assessment Assessment `json:"assessment,omitempty"`
	User       User       `json:"user,omitempty"`
}
