package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhost/config"
	"github.com/lshigami/quizhost/database"
	"github.com/lshigami/quizhost/docs"
	"github.com/lshigami/quizhost/internal/controller"
	adminctrl "github.com/lshigami/quizhost/internal/controller/admin"
	userctrl "github.com/lshigami/quizhost/internal/controller/user"
	"github.com/lshigami/quizhost/internal/logger"
	"github.com/lshigami/quizhost/internal/repository"
	"github.com/lshigami/quizhost/internal/router"
	"github.com/lshigami/quizhost/internal/seed"
	"github.com/lshigami/quizhost/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Quiz Management API
// @version 1.0
// @description Quizzes of multiple-choice questions, scored submissions and attempt history.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			router.NewGinEngine,
		),

		fx.Provide(
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewUserQuizAttemptRepository,
			repository.NewUserAnswerRepository,
			repository.NewUserRepository,
		),

		fx.Provide(
			service.NewQuizService,
			service.NewSubmissionService,
			service.NewAuthService,
			seed.NewSeeder,
		),

		fx.Provide(
			controller.NewHealthController,
			controller.NewAuthController,
			adminctrl.NewAdminQuizController,
			userctrl.NewUserQuizController,
		),

		// Order matters: schema before seed data before serving.
		fx.Invoke(
			applyLogLevel,
			migrate,
			seedData,
			router.RegisterRoutes,
			startServer,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown finished with errors")
	}
}

func applyLogLevel(cfg *config.Config) {
	logger.SetLevel(cfg.LogLevel)
	docs.SwaggerInfo.BasePath = cfg.Server.APIPrefix
}

func migrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

func seedData(cfg *config.Config, seeder *seed.Seeder) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := seeder.EnsureAdmin(ctx, cfg.Seed.AdminPassword); err != nil {
		return err
	}
	if cfg.Seed.SampleData {
		if _, err := seeder.EnsureSampleQuiz(ctx); err != nil {
			return err
		}
	}
	return nil
}

func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
