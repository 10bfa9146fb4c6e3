package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"learnhub/config"
	"learnhub/handlers"
	"learnhub/logger"
	"learnhub/middleware"
	"learnhub/models"
	"learnhub/repository"
	"learnhub/routes"
	"learnhub/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLog, err := logger.New(cfg.Mode)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer appLog.Sync()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.Assessment{},
		&models.Question{},
		&models.Submission{},
	)
	if err != nil {
		appLog.Fatal("Failed to migrate database", "error", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize repository and services
	store := repository.NewStore(db)
	events := services.NewRedisPublisher(redisClient, appLog)

	authService := services.NewAuthService(store, cfg.JWTSecret, appLog)
	enrollmentService := services.NewEnrollmentService(store, appLog)
	courseService := services.NewCourseService(store, enrollmentService, appLog)
	assessmentService := services.NewAssessmentService(store, enrollmentService, events, appLog)
	submissionService := services.NewSubmissionService(store, store, enrollmentService, appLog)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	courseHandler := handlers.NewCourseHandler(courseService, enrollmentService)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)

	// Setup Gin router
	if cfg.Mode == "prod" || cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(appLog))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
	}))

	// Setup routes
	routes.SetupRoutes(router, authService, authHandler, courseHandler, assessmentHandler, submissionHandler)

	// Start server
	appLog.Info("server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		appLog.Fatal("Failed to start server", "error", err)
	}
}
