package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"learnhub/logger"
	"learnhub/models"
)

// AssessmentStore is the persistence surface the policy engine consumes.
// Implemented by repository.Store.
type AssessmentStore interface {
	FindWithCourseAndAttemptCount(ctx context.Context, id uint) (*models.Assessment, *models.Course, int64, error)
	FindLessonWithCourse(ctx context.Context, lessonID uint) (*models.Lesson, *models.Course, error)
	ListByLesson(ctx context.Context, lessonID uint) ([]models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) error
	ApplyUpdate(ctx context.Context, assessment *models.Assessment, questions []models.Question, replaceQuestions bool) error
	Delete(ctx context.Context, id uint) error
}

// EnrollmentOracle answers the two authorization questions the engine
// asks. Never bypassed: every read and write goes through one of these
// predicates first.
type EnrollmentOracle interface {
	CanManage(actor *models.User, courseCreatorID uint) bool
	IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error)
}

type AssessmentService struct {
	store  AssessmentStore
	oracle EnrollmentOracle
	events EventPublisher
	log    *logger.Logger
}

func NewAssessmentService(store AssessmentStore, oracle EnrollmentOracle, events EventPublisher, log *logger.Logger) *AssessmentService {
	return &AssessmentService{
		store:  store,
		oracle: oracle,
		events: events,
		log:    log.With("service", "AssessmentService"),
	}
}

type QuestionInput struct {
	Type          string   `json:"type" binding:"required"`
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options"`
	Points        int      `json:"points" binding:"omitempty,min=1"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type CreateAssessmentRequest struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	MaxScore     int             `json:"max_score"`
	PassingScore int             `json:"passing_score"`
	TimeLimit    int             `json:"time_limit"`
	Attempts     int             `json:"attempts"`
	Questions    []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// UpdateAssessmentRequest is a partial patch. Pointer fields distinguish
// "absent" from a zero value; a non-nil Questions slice (including an
// empty one) is a full question-sequence replacement.
type UpdateAssessmentRequest struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	Type         *string         `json:"type"`
	MaxScore     *int            `json:"max_score"`
	PassingScore *int            `json:"passing_score"`
	TimeLimit    *int            `json:"time_limit"`
	Attempts     *int            `json:"attempts"`
	Questions    []QuestionInput `json:"questions" binding:"omitempty,dive"`
}

type AssessmentStats struct {
	AttemptCount int64 `json:"attempt_count"`
}

type AssessmentView struct {
	ID           uint            `json:"id"`
	LessonID     uint            `json:"lesson_id"`
	CourseID     uint            `json:"course_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	MaxScore     int             `json:"max_score"`
	PassingScore int             `json:"passing_score"`
	TimeLimit    int             `json:"time_limit"`
	Attempts     int             `json:"attempts"`
	Questions    []QuestionView  `json:"questions"`
	Stats        AssessmentStats `json:"stats"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type AssessmentSummary struct {
	ID            uint   `json:"id"`
	LessonID      uint   `json:"lesson_id"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	MaxScore      int    `json:"max_score"`
	PassingScore  int    `json:"passing_score"`
	TimeLimit     int    `json:"time_limit"`
	Attempts      int    `json:"attempts"`
	QuestionCount int    `json:"question_count"`
}

type DeletionReceipt struct {
	Title     string    `json:"title"`
	DeletedAt time.Time `json:"deleted_at"`
}

// View loads an assessment and returns it with questions redacted for
// the actor's role. Order of checks: existence, then authorization.
// No side effects.
func (s *AssessmentService) View(ctx context.Context, actor *models.User, assessmentID uint) (*AssessmentView, error) {
	assessment, course, attemptCount, err := s.loadAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	isManager := s.oracle.CanManage(actor, course.CreatorID)
	if !isManager {
		enrolled, err := s.oracle.IsEnrolled(ctx, actor.ID, course.ID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, ErrNotEnrolled
		}
	}

	view := buildView(assessment, course.ID, attemptCount, isManager)
	return view, nil
}

// Update applies a partial patch to an assessment. Order of checks:
// existence, authorization, mutation guard, then the single write.
func (s *AssessmentService) Update(ctx context.Context, actor *models.User, assessmentID uint, req *UpdateAssessmentRequest) (*models.Assessment, error) {
	assessment, course, attemptCount, err := s.loadAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	if !s.oracle.CanManage(actor, course.CreatorID) {
		return nil, ErrInsufficientPermissions
	}

	if err := validateUpdate(req, attemptCount); err != nil {
		return nil, err
	}

	applyPatch(assessment, req)

	replaceQuestions := req.Questions != nil
	var questions []models.Question
	if replaceQuestions {
		questions = buildQuestions(assessment.ID, req.Questions)
	}

	if err := s.store.ApplyUpdate(ctx, assessment, questions, replaceQuestions); err != nil {
		return nil, err
	}

	s.log.Info("assessment updated",
		"assessment_id", assessment.ID, "actor_id", actor.ID, "questions_replaced", replaceQuestions)
	s.publish(ctx, EventAssessmentUpdated, assessment.ID, course.ID, actor.ID)

	updated, _, _, err := s.loadAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an assessment that has no submitted attempts. Same
// check ordering as Update.
func (s *AssessmentService) Delete(ctx context.Context, actor *models.User, assessmentID uint) (*DeletionReceipt, error) {
	assessment, course, attemptCount, err := s.loadAssessment(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	if !s.oracle.CanManage(actor, course.CreatorID) {
		return nil, ErrInsufficientPermissions
	}

	if err := validateDelete(attemptCount); err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, assessment.ID); err != nil {
		return nil, err
	}

	s.log.Info("assessment deleted", "assessment_id", assessment.ID, "actor_id", actor.ID)
	s.publish(ctx, EventAssessmentDeleted, assessment.ID, course.ID, actor.ID)

	return &DeletionReceipt{Title: assessment.Title, DeletedAt: time.Now().UTC()}, nil
}

// Create builds a new assessment under a lesson. When a max score is
// supplied it must equal the sum of the question points; when omitted it
// defaults to that sum, so the invariant holds from the first write.
func (s *AssessmentService) Create(ctx context.Context, actor *models.User, lessonID uint, req *CreateAssessmentRequest) (*models.Assessment, error) {
	lesson, course, err := s.store.FindLessonWithCourse(ctx, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	if !s.oracle.CanManage(actor, course.CreatorID) {
		return nil, ErrInsufficientPermissions
	}

	total := totalPoints(req.Questions)
	maxScore := req.MaxScore
	if maxScore == 0 {
		maxScore = total
	} else if maxScore != total {
		return nil, &ScoreMismatchError{TotalPoints: total, MaxScore: maxScore}
	}

	assessmentType := req.Type
	if assessmentType == "" {
		assessmentType = models.AssessmentTypeQuiz
	}

	assessment := &models.Assessment{
		LessonID:     lesson.ID,
		Title:        req.Title,
		Description:  req.Description,
		Type:         assessmentType,
		MaxScore:     maxScore,
		PassingScore: req.PassingScore,
		TimeLimit:    req.TimeLimit,
		Attempts:     req.Attempts,
	}
	assessment.Questions = buildQuestions(0, req.Questions)

	if err := s.store.Create(ctx, assessment); err != nil {
		return nil, err
	}

	s.log.Info("assessment created",
		"assessment_id", assessment.ID, "lesson_id", lesson.ID, "actor_id", actor.ID)
	s.publish(ctx, EventAssessmentCreated, assessment.ID, course.ID, actor.ID)

	return assessment, nil
}

// ListByLesson returns assessment summaries for a lesson. Managers see
// every lesson they own; students must be enrolled in the course.
func (s *AssessmentService) ListByLesson(ctx context.Context, actor *models.User, lessonID uint) ([]AssessmentSummary, error) {
	lesson, course, err := s.store.FindLessonWithCourse(ctx, lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	if !s.oracle.CanManage(actor, course.CreatorID) {
		enrolled, err := s.oracle.IsEnrolled(ctx, actor.ID, course.ID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, ErrNotEnrolled
		}
	}

	assessments, err := s.store.ListByLesson(ctx, lesson.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]AssessmentSummary, 0, len(assessments))
	for _, a := range assessments {
		summaries = append(summaries, AssessmentSummary{
			ID:            a.ID,
			LessonID:      a.LessonID,
			Title:         a.Title,
			Type:          a.Type,
			MaxScore:      a.MaxScore,
			PassingScore:  a.PassingScore,
			TimeLimit:     a.TimeLimit,
			Attempts:      a.Attempts,
			QuestionCount: len(a.Questions),
		})
	}
	return summaries, nil
}

func (s *AssessmentService) loadAssessment(ctx context.Context, id uint) (*models.Assessment, *models.Course, int64, error) {
	return loadAssessmentRecord(ctx, s.store, id)
}

// loadAssessmentRecord resolves an assessment together with its owning
// course and attempt count, mapping a missing row (or a broken
// lesson/course chain) to ErrAssessmentNotFound. Past this point callers
// may treat the course as always present.
func loadAssessmentRecord(ctx context.Context, store AssessmentStore, id uint) (*models.Assessment, *models.Course, int64, error) {
	assessment, course, attemptCount, err := store.FindWithCourseAndAttemptCount(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, ErrAssessmentNotFound
		}
		return nil, nil, 0, err
	}
	return assessment, course, attemptCount, nil
}

func (s *AssessmentService) publish(ctx context.Context, eventType string, assessmentID, courseID, actorID uint) {
	event := Event{
		Type:         eventType,
		AssessmentID: assessmentID,
		CourseID:     courseID,
		ActorID:      actorID,
		At:           time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Error("failed to publish assessment event", "type", eventType, "error", err)
	}
}

func applyPatch(assessment *models.Assessment, req *UpdateAssessmentRequest) {
	if req.Title != nil {
		assessment.Title = *req.Title
	}
	if req.Description != nil {
		assessment.Description = *req.Description
	}
	if req.Type != nil {
		assessment.Type = *req.Type
	}
	if req.MaxScore != nil {
		assessment.MaxScore = *req.MaxScore
	}
	if req.PassingScore != nil {
		assessment.PassingScore = *req.PassingScore
	}
	if req.TimeLimit != nil {
		assessment.TimeLimit = *req.TimeLimit
	}
	if req.Attempts != nil {
		assessment.Attempts = *req.Attempts
	}
}

func buildQuestions(assessmentID uint, inputs []QuestionInput) []models.Question {
	questions := make([]models.Question, 0, len(inputs))
	for i, in := range inputs {
		options := in.Options
		if options == nil {
			options = []string{}
		}
		questions = append(questions, models.Question{
			AssessmentID:  assessmentID,
			Position:      i,
			Type:          in.Type,
			Text:          in.Question,
			Options:       options,
			Points:        pointsOrDefault(in.Points),
			CorrectAnswer: in.CorrectAnswer,
			Explanation:   in.Explanation,
		})
	}
	return questions
}

func buildView(assessment *models.Assessment, courseID uint, attemptCount int64, isManager bool) *AssessmentView {
	return &AssessmentView{
		ID:           assessment.ID,
		LessonID:     assessment.LessonID,
		CourseID:     courseID,
		Title:        assessment.Title,
		Description:  assessment.Description,
		Type:         assessment.Type,
		MaxScore:     assessment.MaxScore,
		PassingScore: assessment.PassingScore,
		TimeLimit:    assessment.TimeLimit,
		Attempts:     assessment.Attempts,
		Questions:    redactQuestions(assessment.Questions, isManager),
		Stats:        AssessmentStats{AttemptCount: attemptCount},
		CreatedAt:    assessment.CreatedAt,
		UpdatedAt:    assessment.UpdatedAt,
	}
}
