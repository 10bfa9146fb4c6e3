package services

// The mutation guard gates structural changes to an assessment on its
// attempt history. An assessment with zero submitted attempts is open:
// its question sequence may be replaced and the record may be deleted.
// The first submitted attempt locks it; only metadata fields stay
// editable after that.

// validateUpdate applies the guard rules to a proposed update. The lock
// check runs before the score invariant: a locked assessment rejects a
// structural update regardless of what else the payload carries.
//
// The points/max-score invariant is only checked when the payload carries
// both a question sequence and a max score. A questions-only update keeps
// the stored max score and is not re-validated against it.
func validateUpdate(req *UpdateAssessmentRequest, attemptCount int64) error {
	if req.Questions == nil {
		return nil
	}
	if attemptCount > 0 {
		return &QuestionsLockedError{AttemptCount: attemptCount}
	}
	if req.MaxScore != nil {
		total := totalPoints(req.Questions)
		if total != *req.MaxScore {
			return &ScoreMismatchError{TotalPoints: total, MaxScore: *req.MaxScore}
		}
	}
	return nil
}

// validateDelete permits deletion only while no attempts exist.
func validateDelete(attemptCount int64) error {
	if attemptCount > 0 {
		return &HasAttemptsError{AttemptCount: attemptCount}
	}
	return nil
}

// totalPoints sums question points, treating an absent or zero value as
// the default of 1 point.
func totalPoints(questions []QuestionInput) int {
	total := 0
	for _, q := range questions {
		total += pointsOrDefault(q.Points)
	}
	return total
}

func pointsOrDefault(points int) int {
	if points <= 0 {
		return 1
	}
	return points
}
