package repository

import (
	"context"

	"gorm.io/gorm"

	"learnhub/models"
)

// Store is the gorm-backed implementation of the narrow persistence
// interfaces consumed by the services package.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindWithCourseAndAttemptCount loads an assessment with its ordered
// questions, resolves the owning lesson and course, and counts the
// submitted attempts. A missing assessment, lesson or course all surface
// as gorm.ErrRecordNotFound: an assessment whose ownership chain is
// broken does not exist as far as callers are concerned.
func (s *Store) FindWithCourseAndAttemptCount(ctx context.Context, id uint) (*models.Assessment, *models.Course, int64, error) {
	var assessment models.Assessment
	err := s.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position")
		}).
		First(&assessment, id).Error
	if err != nil {
		return nil, nil, 0, err
	}

	var lesson models.Lesson
	if err := s.db.WithContext(ctx).First(&lesson, assessment.LessonID).Error; err != nil {
		return nil, nil, 0, err
	}

	var course models.Course
	if err := s.db.WithContext(ctx).First(&course, lesson.CourseID).Error; err != nil {
		return nil, nil, 0, err
	}

	var attemptCount int64
	err = s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("assessment_id = ?", assessment.ID).
		Count(&attemptCount).Error
	if err != nil {
		return nil, nil, 0, err
	}

	return &assessment, &course, attemptCount, nil
}

func (s *Store) FindLessonWithCourse(ctx context.Context, lessonID uint) (*models.Lesson, *models.Course, error) {
	var lesson models.Lesson
	if err := s.db.WithContext(ctx).First(&lesson, lessonID).Error; err != nil {
		return nil, nil, err
	}

	var course models.Course
	if err := s.db.WithContext(ctx).First(&course, lesson.CourseID).Error; err != nil {
		return nil, nil, err
	}

	return &lesson, &course, nil
}

func (s *Store) ListByLesson(ctx context.Context, lessonID uint) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := s.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position")
		}).
		Order("created_at").
		Find(&assessments).Error
	return assessments, err
}

// Create writes an assessment and its questions in one transaction.
func (s *Store) Create(ctx context.Context, assessment *models.Assessment) error {
	questions := assessment.Questions
	assessment.Questions = nil

	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(assessment).Error; err != nil {
		tx.Rollback()
		return err
	}

	for i := range questions {
		questions[i].AssessmentID = assessment.ID
		if err := tx.Create(&questions[i]).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	assessment.Questions = questions
	return nil
}

// ApplyUpdate saves the patched assessment and, when replaceQuestions is
// set, swaps the full question sequence for the given one. One
// transaction; nothing is written if any step fails.
func (s *Store) ApplyUpdate(ctx context.Context, assessment *models.Assessment, questions []models.Question, replaceQuestions bool) error {
	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	existing := assessment.Questions
	assessment.Questions = nil
	if err := tx.Save(assessment).Error; err != nil {
		tx.Rollback()
		assessment.Questions = existing
		return err
	}
	assessment.Questions = existing

	if replaceQuestions {
		if err := tx.Where("assessment_id = ?", assessment.ID).Delete(&models.Question{}).Error; err != nil {
			tx.Rollback()
			return err
		}
		for i := range questions {
			questions[i].AssessmentID = assessment.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				tx.Rollback()
				return err
			}
		}
	}

	return tx.Commit().Error
}

// Delete removes an assessment and its questions. Submissions are left
// untouched; the guard guarantees there are none when this runs.
func (s *Store) Delete(ctx context.Context, id uint) error {
	tx := s.db.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("assessment_id = ?", id).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Assessment{}, id).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// --- courses and lessons ---

func (s *Store) CreateCourse(ctx context.Context, course *models.Course) error {
	return s.db.WithContext(ctx).Create(course).Error
}

func (s *Store) FindCourse(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *Store) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (s *Store) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	return s.db.WithContext(ctx).Create(lesson).Error
}

// --- enrollments ---

func (s *Store) EnrollmentExists(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	return s.db.WithContext(ctx).Create(enrollment).Error
}

// --- submissions ---

func (s *Store) CountForUser(ctx context.Context, assessmentID, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Submission{}).
		Where("assessment_id = ? AND user_id = ?", assessmentID, userID).
		Count(&count).Error
	return count, err
}

func (s *Store) CreateSubmission(ctx context.Context, submission *models.Submission) error {
	return s.db.WithContext(ctx).Create(submission).Error
}

// --- users ---

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
