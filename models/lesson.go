package models

import (
	"time"

	"gorm.io/gorm"
)

type Lesson struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CourseID  uint           `json:"course_id" gorm:"not null"`
	Title     string         `json:"title" gorm:"not null"`
	Position  int            `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Course      Course       `json:"course,omitempty"`
	Assessments []Assessment `json:"assessments,omitempty" gorm:"foreignKey:LessonID"`
}
