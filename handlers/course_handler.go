package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"learnhub/middleware"
	"learnhub/services"
)

type CourseHandler struct {
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
}

func NewCourseHandler(courseService *services.CourseService, enrollmentService *services.EnrollmentService) *CourseHandler {
	return &CourseHandler{
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course, err := h.courseService.CreateCourse(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course ID"})
		return
	}

	course, err := h.courseService.GetCourse(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) CreateLesson(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	courseID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course ID"})
		return
	}

	var req services.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson, err := h.courseService.CreateLesson(c.Request.Context(), actor, courseID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

func (h *CourseHandler) Enroll(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	courseID, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course ID"})
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), actor, courseID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}
