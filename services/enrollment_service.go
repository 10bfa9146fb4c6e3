package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"learnhub/logger"
	"learnhub/models"
)

// EnrollmentStore is the persistence surface for enrollment facts.
type EnrollmentStore interface {
	FindCourse(ctx context.Context, id uint) (*models.Course, error)
	EnrollmentExists(ctx context.Context, userID, courseID uint) (bool, error)
	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error
}

// EnrollmentService owns the enrollment relation and implements the
// EnrollmentOracle predicates the assessment engine relies on.
type EnrollmentService struct {
	store EnrollmentStore
	log   *logger.Logger
}

func NewEnrollmentService(store EnrollmentStore, log *logger.Logger) *EnrollmentService {
	return &EnrollmentService{store: store, log: log.With("service", "EnrollmentService")}
}

// CanManage reports whether the actor manages the course: its creator,
// or an admin. Pure predicate over the actor and the creator id.
func (s *EnrollmentService) CanManage(actor *models.User, courseCreatorID uint) bool {
	if actor == nil {
		return false
	}
	return actor.Role == models.RoleAdmin || actor.ID == courseCreatorID
}

// IsEnrolled reports whether an enrollment record exists for the pair.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	return s.store.EnrollmentExists(ctx, userID, courseID)
}

// Enroll records the actor as a student of the course. Enrolling twice
// is rejected rather than silently ignored.
func (s *EnrollmentService) Enroll(ctx context.Context, actor *models.User, courseID uint) (*models.Enrollment, error) {
	course, err := s.store.FindCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	exists, err := s.store.EnrollmentExists(ctx, actor.ID, course.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{UserID: actor.ID, CourseID: course.ID}
	if err := s.store.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}

	s.log.Info("user enrolled", "user_id", actor.ID, "course_id", course.ID)
	return enrollment, nil
}
