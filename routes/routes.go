package routes

import (
	"github.com/gin-gonic/gin"

	"learnhub/handlers"
	"learnhub/middleware"
	"learnhub/services"
)

func SetupRoutes(
	router *gin.Engine,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	courseHandler *handlers.CourseHandler,
	assessmentHandler *handlers.AssessmentHandler,
	submissionHandler *handlers.SubmissionHandler,
) {
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(authService))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)

			courses := protected.Group("/courses")
			{
				courses.GET("", courseHandler.ListCourses)
				courses.POST("", courseHandler.CreateCourse)
				courses.GET("/:id", courseHandler.GetCourse)
				courses.POST("/:id/lessons", courseHandler.CreateLesson)
				courses.POST("/:id/enroll", courseHandler.Enroll)
			}

			lessons := protected.Group("/lessons")
			{
				lessons.GET("/:id/assessments", assessmentHandler.ListAssessments)
				lessons.POST("/:id/assessments", assessmentHandler.CreateAssessment)
			}

			assessments := protected.Group("/assessments")
			{
				assessments.GET("/:id", assessmentHandler.GetAssessment)
				assessments.PUT("/:id", assessmentHandler.UpdateAssessment)
				assessments.DELETE("/:id", assessmentHandler.DeleteAssessment)
				assessments.POST("/:id/submissions", submissionHandler.SubmitAnswers)
			}
		}
	}
}
