package services

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestValidateUpdateMetadataOnly(t *testing.T) {
	req := &UpdateAssessmentRequest{Title: strPtr("New title")}

	if err := validateUpdate(req, 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Metadata stays editable even after attempts exist.
	if err := validateUpdate(req, 5); err != nil {
		t.Fatalf("unexpected err with attempts: %v", err)
	}
}

func TestValidateUpdateLockedQuestions(t *testing.T) {
	req := &UpdateAssessmentRequest{
		Questions: []QuestionInput{{Type: "multiple_choice", Question: "Q1", Points: 2}},
	}

	err := validateUpdate(req, 3)
	var locked *QuestionsLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected QuestionsLockedError, got %v", err)
	}
	if locked.AttemptCount != 3 {
		t.Fatalf("expected attempt count 3, got %d", locked.AttemptCount)
	}
}

func TestValidateUpdateLockPrecedesScoreCheck(t *testing.T) {
	// Payload violates the score invariant too; the lock must win.
	req := &UpdateAssessmentRequest{
		MaxScore:  intPtr(99),
		Questions: []QuestionInput{{Type: "multiple_choice", Question: "Q1", Points: 2}},
	}

	err := validateUpdate(req, 1)
	var locked *QuestionsLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected QuestionsLockedError, got %v", err)
	}
}

func TestValidateUpdateScoreMismatch(t *testing.T) {
	req := &UpdateAssessmentRequest{
		MaxScore: intPtr(9),
		Questions: []QuestionInput{
			{Type: "multiple_choice", Question: "Q1", Points: 2},
			{Type: "multiple_choice", Question: "Q2", Points: 3},
			{Type: "multiple_choice", Question: "Q3", Points: 5},
		},
	}

	err := validateUpdate(req, 0)
	var mismatch *ScoreMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ScoreMismatchError, got %v", err)
	}
	if mismatch.TotalPoints != 10 || mismatch.MaxScore != 9 {
		t.Fatalf("expected total=10 max=9, got total=%d max=%d", mismatch.TotalPoints, mismatch.MaxScore)
	}
}

func TestValidateUpdateScoreMatch(t *testing.T) {
	req := &UpdateAssessmentRequest{
		MaxScore: intPtr(10),
		Questions: []QuestionInput{
			{Type: "multiple_choice", Question: "Q1", Points: 2},
			{Type: "multiple_choice", Question: "Q2", Points: 3},
			{Type: "multiple_choice", Question: "Q3", Points: 5},
		},
	}

	if err := validateUpdate(req, 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestValidateUpdateDefaultPoints(t *testing.T) {
	// Absent points count as 1 each.
	req := &UpdateAssessmentRequest{
		MaxScore: intPtr(3),
		Questions: []QuestionInput{
			{Type: "short_answer", Question: "Q1"},
			{Type: "short_answer", Question: "Q2"},
			{Type: "short_answer", Question: "Q3"},
		},
	}

	if err := validateUpdate(req, 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestValidateUpdateQuestionsWithoutMaxScore(t *testing.T) {
	// Without a max score in the payload the invariant is not checked.
	req := &UpdateAssessmentRequest{
		Questions: []QuestionInput{{Type: "multiple_choice", Question: "Q1", Points: 7}},
	}

	if err := validateUpdate(req, 0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestValidateUpdateEmptyQuestionsIsStructural(t *testing.T) {
	// An explicit empty sequence still replaces the questions, so the
	// lock applies to it.
	req := &UpdateAssessmentRequest{Questions: []QuestionInput{}}

	err := validateUpdate(req, 2)
	var locked *QuestionsLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected QuestionsLockedError, got %v", err)
	}
}

func TestValidateDelete(t *testing.T) {
	if err := validateDelete(0); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	err := validateDelete(4)
	var hasAttempts *HasAttemptsError
	if !errors.As(err, &hasAttempts) {
		t.Fatalf("expected HasAttemptsError, got %v", err)
	}
	if hasAttempts.AttemptCount != 4 {
		t.Fatalf("expected attempt count 4, got %d", hasAttempts.AttemptCount)
	}
}

func TestTotalPoints(t *testing.T) {
	questions := []QuestionInput{
		{Points: 2},
		{Points: 0}, // defaults to 1
		{Points: 5},
	}
	if got := totalPoints(questions); got != 8 {
		t.Fatalf("expected 8, got %d", got)
	}
	if got := totalPoints(nil); got != 0 {
		t.Fatalf("expected 0 for empty sequence, got %d", got)
	}
}
