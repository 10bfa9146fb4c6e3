package services

import (
	"errors"
	"fmt"
)

var (
	ErrAssessmentNotFound      = errors.New("assessment not found")
	ErrCourseNotFound          = errors.New("course not found")
	ErrLessonNotFound          = errors.New("lesson not found")
	ErrNotEnrolled             = errors.New("not enrolled in this course")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrAlreadyEnrolled         = errors.New("already enrolled in this course")
	ErrAttemptLimitReached     = errors.New("attempt limit reached for this assessment")
)

// QuestionsLockedError rejects a question-sequence replacement once
// students have submitted answers.
type QuestionsLockedError struct {
	AttemptCount int64
}

func (e *QuestionsLockedError) Error() string {
	return fmt.Sprintf("cannot modify questions: assessment has %d submitted attempt(s)", e.AttemptCount)
}

// ScoreMismatchError rejects an update whose question points do not sum
// to the declared max score.
type ScoreMismatchError struct {
	TotalPoints int
	MaxScore    int
}

func (e *ScoreMismatchError) Error() string {
	return fmt.Sprintf("question points sum to %d but max score is %d", e.TotalPoints, e.MaxScore)
}

// HasAttemptsError rejects deletion of an assessment with submitted
// attempts.
type HasAttemptsError struct {
	AttemptCount int64
}

func (e *HasAttemptsError) Error() string {
	return fmt.Sprintf("cannot delete assessment: %d attempt(s) have been submitted", e.AttemptCount)
}
