package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"learnhub/logger"
	"learnhub/models"
)

// CourseStore is the persistence surface for courses and lessons.
type CourseStore interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	FindCourse(ctx context.Context, id uint) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
}

type CourseService struct {
	store  CourseStore
	oracle EnrollmentOracle
	log    *logger.Logger
}

func NewCourseService(store CourseStore, oracle EnrollmentOracle, log *logger.Logger) *CourseService {
	return &CourseService{store: store, oracle: oracle, log: log.With("service", "CourseService")}
}

type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type CreateLessonRequest struct {
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position"`
}

// CreateCourse makes the actor the course's creator. Students cannot
// create courses.
func (s *CourseService) CreateCourse(ctx context.Context, actor *models.User, req *CreateCourseRequest) (*models.Course, error) {
	if actor.Role != models.RoleInstructor && actor.Role != models.RoleAdmin {
		return nil, ErrInsufficientPermissions
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   actor.ID,
	}
	if err := s.store.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	s.log.Info("course created", "course_id", course.ID, "creator_id", actor.ID)
	return course, nil
}

// CreateLesson adds a lesson to a course the actor manages.
func (s *CourseService) CreateLesson(ctx context.Context, actor *models.User, courseID uint, req *CreateLessonRequest) (*models.Lesson, error) {
	course, err := s.store.FindCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if !s.oracle.CanManage(actor, course.CreatorID) {
		return nil, ErrInsufficientPermissions
	}

	lesson := &models.Lesson{
		CourseID: course.ID,
		Title:    req.Title,
		Position: req.Position,
	}
	if err := s.store.CreateLesson(ctx, lesson); err != nil {
		return nil, err
	}

	s.log.Info("lesson created", "lesson_id", lesson.ID, "course_id", course.ID)
	return lesson, nil
}

func (s *CourseService) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.store.ListCourses(ctx)
}

func (s *CourseService) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.store.FindCourse(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}
