package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/merchly/console-backend/internal/handlers"
	"github.com/merchly/console-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName      string
	AllowOrigins     []string
	AuthHandler      *handlers.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	QuizHandler      *handlers.QuizHandler
	DraftHandler     *handlers.DraftHandler
	ProductHandler   *handlers.ProductHandler
	SettingsHandler  *handlers.SettingsHandler
	ImportJobHandler *handlers.ImportJobHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	// Refresh must stay reachable once the access token has expired, so it
	// cannot sit behind RequireAuth; the refresh token row is the credential.
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// Quizzes
	protected.GET("/quizzes", cfg.QuizHandler.List)
	protected.POST("/quizzes", cfg.QuizHandler.Create)
	protected.GET("/quizzes/:quiz_id", cfg.QuizHandler.Get)
	protected.PUT("/quizzes/:quiz_id/document", cfg.QuizHandler.UpdateDocument)
	protected.DELETE("/quizzes/:quiz_id", cfg.QuizHandler.Delete)
	protected.GET("/quizzes/:quiz_id/export", cfg.QuizHandler.Export)
	protected.GET("/quizzes/:quiz_id/preview", cfg.QuizHandler.Preview)
	protected.POST("/quizzes/:quiz_id/import", cfg.QuizHandler.Import)
	// Builder drafts
	protected.PUT("/quizzes/:quiz_id/draft", cfg.DraftHandler.Save)
	protected.GET("/quizzes/:quiz_id/draft", cfg.DraftHandler.Load)
	protected.DELETE("/quizzes/:quiz_id/draft", cfg.DraftHandler.Clear)
	// Products
	protected.GET("/products", cfg.ProductHandler.List)
	protected.POST("/products", cfg.ProductHandler.Create)
	protected.GET("/products/:product_id", cfg.ProductHandler.Get)
	protected.PUT("/products/:product_id", cfg.ProductHandler.Update)
	protected.DELETE("/products/:product_id", cfg.ProductHandler.Delete)
	// Product imports
	protected.POST("/imports/products", cfg.ImportJobHandler.UploadProductCSV)
	protected.GET("/imports", cfg.ImportJobHandler.List)
	protected.GET("/imports/:job_id", cfg.ImportJobHandler.Get)
	// Settings
	protected.GET("/settings", cfg.SettingsHandler.Get)
	protected.PATCH("/settings/:section", cfg.SettingsHandler.UpdateSection)

	return router
}
