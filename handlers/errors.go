package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"learnhub/services"
)

// respondError maps service error kinds to HTTP status codes. Guard
// failures carry their diagnostic values through to the response body.
func respondError(c *gin.Context, err error) {
	var locked *services.QuestionsLockedError
	var mismatch *services.ScoreMismatchError
	var hasAttempts *services.HasAttemptsError

	switch {
	case errors.Is(err, services.ErrAssessmentNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrLessonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotEnrolled),
		errors.Is(err, services.ErrInsufficientPermissions):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &locked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "attempt_count": locked.AttemptCount})
	case errors.As(err, &hasAttempts):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "attempt_count": hasAttempts.AttemptCount})
	case errors.As(err, &mismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "total_points": mismatch.TotalPoints, "max_score": mismatch.MaxScore})
	case errors.Is(err, services.ErrAlreadyEnrolled),
		errors.Is(err, services.ErrAttemptLimitReached):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
