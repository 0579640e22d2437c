package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lorikeet/config"
	"github.com/lshigami/Lorikeet/database"
	_ "github.com/lshigami/Lorikeet/docs" // Swagger docs - auto-generated
	adminctrl "github.com/lshigami/Lorikeet/internal/controller/admin"
	userctrl "github.com/lshigami/Lorikeet/internal/controller/user"
	"github.com/lshigami/Lorikeet/internal/logger"
	"github.com/lshigami/Lorikeet/internal/model"
	"github.com/lshigami/Lorikeet/internal/repository"
	"github.com/lshigami/Lorikeet/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Lorikeet Language Learning API
// @version 1.0
// @description API for lessons, daily quests, and XP progress tracking.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewLessonRepository,
			repository.NewCompletionRepository,
			repository.NewQuestRepository,
			repository.NewQuestAttemptRepository,
			repository.NewProgressRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewQuestionPoolService,
			service.NewQuestGeneratorService,
			service.NewProgressService,
			service.NewGeminiLLMService,
			service.NewQuestAttemptService,
			service.NewAdminLessonService,
			service.NewUserLessonService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewQuestController,
			userctrl.NewLessonController,
			adminctrl.NewAdminLessonController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Request logging through zerolog rather than Gin's default logger.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminLessonCtrl *adminctrl.AdminLessonController,
	questCtrl *userctrl.QuestController,
	lessonCtrl *userctrl.LessonController,
) {
	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		lessonsAdminGroup := adminAPIGroup.Group("/lessons")
		lessonsAdminGroup.POST("", adminLessonCtrl.CreateLesson)
		lessonsAdminGroup.GET("", adminLessonCtrl.ListLessons)
		lessonsAdminGroup.PATCH("/:lesson_id/publish", adminLessonCtrl.SetLessonPublished)
	}

	// User Routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		// Daily quest
		userAPIGroup.GET("/quests/today", questCtrl.GetTodayQuest)
		userAPIGroup.GET("/quests/history", questCtrl.GetQuestHistory)
		userAPIGroup.POST("/quests/:quest_id/attempts", questCtrl.SubmitQuestAttempt)
		userAPIGroup.GET("/quests/:quest_id/review", questCtrl.GetQuestReview)

		// Lessons and progress
		userAPIGroup.GET("/lessons", lessonCtrl.ListLessons)
		userAPIGroup.GET("/lessons/:lesson_id", lessonCtrl.GetLessonDetail)
		userAPIGroup.POST("/lessons/:lesson_id/complete", lessonCtrl.CompleteLesson)
		userAPIGroup.GET("/progress", lessonCtrl.GetProgress)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Lorikeet API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Lesson{},
		&model.LessonQuestion{},
		&model.UserLessonCompletion{},
		&model.UserProgress{},
		&model.Quest{},
		&model.QuestQuestionSnapshot{},
		&model.UserQuestAttempt{},
		&model.UserQuestAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
