package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AssessmentTypeQuiz = "quiz"
	AssessmentTypeExam = "exam"
)

type Assessment struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	LessonID     uint           `json:"lesson_id" gorm:"not null"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description"`
	Type         string         `json:"type" gorm:"not null;default:'quiz'"` // quiz, exam
	MaxScore     int            `json:"max_score" gorm:"not null;default:0"`
	PassingScore int            `json:"passing_score" gorm:"not null;default:0"`
	TimeLimit    int            `json:"time_limit" gorm:"not null;default:0"` // minutes, 0 = unlimited
	Attempts     int            `json:"attempts" gorm:"not null;default:0"`   // max attempts per student, 0 = unlimited
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Lesson    Lesson     `json:"lesson,omitempty"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:AssessmentID"`
}
