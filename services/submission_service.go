package services

import (
	"context"
	"encoding/json"
	"strings"

	"learnhub/logger"
	"learnhub/models"
)

// SubmissionStore is the persistence surface for graded attempts.
type SubmissionStore interface {
	CountForUser(ctx context.Context, assessmentID, userID uint) (int64, error)
	CreateSubmission(ctx context.Context, submission *models.Submission) error
}

// SubmissionService records student attempts. It is the only writer of
// the submission rows whose count locks an assessment's question set;
// the assessment policy engine only ever reads that count.
type SubmissionService struct {
	assessments AssessmentStore
	submissions SubmissionStore
	oracle      EnrollmentOracle
	log         *logger.Logger
}

func NewSubmissionService(assessments AssessmentStore, submissions SubmissionStore, oracle EnrollmentOracle, log *logger.Logger) *SubmissionService {
	return &SubmissionService{
		assessments: assessments,
		submissions: submissions,
		oracle:      oracle,
		log:         log.With("service", "SubmissionService"),
	}
}

type SubmitAnswersRequest struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

type SubmissionResult struct {
	SubmissionID  uint  `json:"submission_id"`
	Score         int   `json:"score"`
	MaxScore      int   `json:"max_score"`
	Passed        bool  `json:"passed"`
	AttemptNumber int64 `json:"attempt_number"`
}

// Submit grades the actor's answers against the stored key and records
// the attempt. The actor must be enrolled in the owning course, and the
// assessment's per-student attempt limit (0 = unlimited) is enforced.
func (s *SubmissionService) Submit(ctx context.Context, actor *models.User, assessmentID uint, req *SubmitAnswersRequest) (*SubmissionResult, error) {
	assessment, course, _, err := loadAssessmentRecord(ctx, s.assessments, assessmentID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.oracle.IsEnrolled(ctx, actor.ID, course.ID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	used, err := s.submissions.CountForUser(ctx, assessment.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if assessment.Attempts > 0 && used >= int64(assessment.Attempts) {
		return nil, ErrAttemptLimitReached
	}

	score := gradeAnswers(assessment.Questions, req.Answers)
	passed := score >= assessment.PassingScore

	raw, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		AssessmentID: assessment.ID,
		UserID:       actor.ID,
		Answers:      raw,
		Score:        score,
		MaxScore:     assessment.MaxScore,
		Passed:       passed,
	}
	if err := s.submissions.CreateSubmission(ctx, submission); err != nil {
		return nil, err
	}

	s.log.Info("submission recorded",
		"assessment_id", assessment.ID, "user_id", actor.ID, "score", score, "passed", passed)

	return &SubmissionResult{
		SubmissionID:  submission.ID,
		Score:         score,
		MaxScore:      assessment.MaxScore,
		Passed:        passed,
		AttemptNumber: used + 1,
	}, nil
}

func gradeAnswers(questions []models.Question, answers map[uint]string) int {
	score := 0
	for _, q := range questions {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		if q.CorrectAnswer == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer)) {
			score += pointsOrDefault(q.Points)
		}
	}
	return score
}
