// Package router builds the gin engine and binds the quiz API onto it.
package router

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhost/config"
	"github.com/lshigami/quizhost/internal/controller"
	adminctrl "github.com/lshigami/quizhost/internal/controller/admin"
	userctrl "github.com/lshigami/quizhost/internal/controller/user"
	"github.com/lshigami/quizhost/internal/dto"
	"github.com/lshigami/quizhost/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// Controllers groups every handler set the API exposes.
type Controllers struct {
	fx.In

	Health *controller.HealthController
	Auth   *controller.AuthController
	Admin  *adminctrl.AdminQuizController
	User   *userctrl.UserQuizController
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.Server.AllowOrigins) == 0 || slices.Contains(cfg.Server.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.Server.AllowOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutes mounts the API under cfg.Server.APIPrefix. The quiz
// collection answers with and without a trailing slash.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, ctrl Controllers) {
	r.GET("/", ctrl.Health.Root)

	api := r.Group(cfg.Server.APIPrefix)
	api.GET("/health", ctrl.Health.Health)

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	quizzes := api.Group("/quizzes")
	{
		for _, p := range []string{"", "/"} {
			quizzes.GET(p, ctrl.User.ListQuizzes)
			quizzes.POST(p, ctrl.Admin.CreateQuiz)
		}
		quizzes.GET("/:quiz_id", ctrl.User.GetQuiz)
		quizzes.GET("/:quiz_id/attempts", ctrl.User.ListAttempts)
		quizzes.POST("/:quiz_id/questions", ctrl.Admin.AddQuestion)
		quizzes.DELETE("/questions/:question_id", ctrl.Admin.DeleteQuestion)
	}

	userQuiz := api.Group("/user-quiz")
	{
		userQuiz.POST("/submit", ctrl.User.SubmitQuiz)
		userQuiz.GET("/attempts/:attempt_id", ctrl.User.GetAttempt)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	})
}
