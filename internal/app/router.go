package app

import (
	"github.com/gin-gonic/gin"

	"github.com/merchly/console-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:      cfg.ServiceName,
		AllowOrigins:     cfg.AllowOrigins,
		AuthHandler:      handlers.Auth,
		AuthMiddleware:   middleware.Auth,
		QuizHandler:      handlers.Quiz,
		DraftHandler:     handlers.Draft,
		ProductHandler:   handlers.Product,
		SettingsHandler:  handlers.Settings,
		ImportJobHandler: handlers.ImportJob,
	})
}
