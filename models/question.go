package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is the stored form of an assessment question. The answer key
// fields (CorrectAnswer, Explanation) must never reach students; read
// paths go through the redacted view types in the services package.
type Question struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	AssessmentID  uint                        `json:"assessment_id" gorm:"not null"`
	Position      int                         `json:"position" gorm:"not null"`
	Type          string                      `json:"type" gorm:"not null;default:'multiple_choice'"`
	Text          string                      `json:"question" gorm:"not null"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	Points        int                         `json:"points" gorm:"not null;default:1"`
	CorrectAnswer string                      `json:"correct_answer"`
	Explanation   string                      `json:"explanation"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	DeletedAt     gorm.DeletedAt              `json:"-" gorm:"index"`
}
