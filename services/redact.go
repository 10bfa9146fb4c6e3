package services

import "learnhub/models"

// QuestionView is the role-projected form of a stored question. The
// answer key fields are pointers so they serialize only when set, which
// happens only for course managers.
type QuestionView struct {
	ID            uint     `json:"id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	Points        int      `json:"points"`
	CorrectAnswer *string  `json:"correct_answer,omitempty"`
	Explanation   *string  `json:"explanation,omitempty"`
}

// redactQuestions projects stored questions into the view appropriate to
// the viewer's role. Source order is preserved; the stored records are
// never mutated.
func redactQuestions(questions []models.Question, isManager bool) []QuestionView {
	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		view := QuestionView{
			ID:       q.ID,
			Type:     q.Type,
			Question: q.Text,
			Options:  append([]string{}, q.Options...),
			Points:   pointsOrDefault(q.Points),
		}
		if isManager {
			correct := q.CorrectAnswer
			explanation := q.Explanation
			view.CorrectAnswer = &correct
			view.Explanation = &explanation
		}
		views = append(views, view)
	}
	return views
}
