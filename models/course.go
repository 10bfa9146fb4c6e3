package models

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	CreatorID   uint           `json:"creator_id" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Creator     User         `json:"creator,omitempty"`
	Lessons     []Lesson     `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:CourseID"`
}
