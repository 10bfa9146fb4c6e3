package services

import (
	"testing"

	"learnhub/models"
)

func sampleQuestions() []models.Question {
	return []models.Question{
		{
			ID:            1,
			Position:      0,
			Type:          "multiple_choice",
			Text:          "What is 2+2?",
			Options:       []string{"3", "4", "5"},
			Points:        2,
			CorrectAnswer: "4",
			Explanation:   "basic arithmetic",
		},
		{
			ID:       2,
			Position: 1,
			Type:     "short_answer",
			Text:     "Name the capital of France.",
			// no options, no points set
			CorrectAnswer: "Paris",
		},
	}
}

func TestRedactQuestionsStudentView(t *testing.T) {
	views := redactQuestions(sampleQuestions(), false)

	if len(views) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(views))
	}
	for i, v := range views {
		if v.CorrectAnswer != nil {
			t.Fatalf("question %d: correct answer leaked to student view", i)
		}
		if v.Explanation != nil {
			t.Fatalf("question %d: explanation leaked to student view", i)
		}
	}
	if views[1].Options == nil || len(views[1].Options) != 0 {
		t.Fatalf("expected empty options slice, got %v", views[1].Options)
	}
	if views[1].Points != 1 {
		t.Fatalf("expected default points 1, got %d", views[1].Points)
	}
}

func TestRedactQuestionsManagerView(t *testing.T) {
	views := redactQuestions(sampleQuestions(), true)

	if views[0].CorrectAnswer == nil || *views[0].CorrectAnswer != "4" {
		t.Fatalf("expected correct answer in manager view, got %v", views[0].CorrectAnswer)
	}
	if views[0].Explanation == nil || *views[0].Explanation != "basic arithmetic" {
		t.Fatalf("expected explanation in manager view, got %v", views[0].Explanation)
	}
}

func TestRedactQuestionsPreservesOrder(t *testing.T) {
	questions := []models.Question{
		{ID: 9, Text: "third", Position: 2},
		{ID: 7, Text: "first", Position: 0},
		{ID: 8, Text: "second", Position: 1},
	}

	// Redaction must not reorder; ordering is the loader's concern.
	views := redactQuestions(questions, false)
	for i, want := range []uint{9, 7, 8} {
		if views[i].ID != want {
			t.Fatalf("position %d: expected id %d, got %d", i, want, views[i].ID)
		}
	}
}

func TestRedactQuestionsDoesNotMutateSource(t *testing.T) {
	questions := sampleQuestions()
	_ = redactQuestions(questions, false)

	if questions[0].CorrectAnswer != "4" || questions[0].Explanation != "basic arithmetic" {
		t.Fatal("redaction mutated the stored questions")
	}
}
