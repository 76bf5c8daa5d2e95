package app

import (
	"github.com/merchly/console-backend/internal/handlers"
	"github.com/merchly/console-backend/internal/logger"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Quiz      *handlers.QuizHandler
	Draft     *handlers.DraftHandler
	Product   *handlers.ProductHandler
	Settings  *handlers.SettingsHandler
	ImportJob *handlers.ImportJobHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:      handlers.NewAuthHandler(services.Auth),
		Quiz:      handlers.NewQuizHandler(services.Quiz, services.Export),
		Draft:     handlers.NewDraftHandler(services.Draft),
		Product:   handlers.NewProductHandler(services.Product),
		Settings:  handlers.NewSettingsHandler(services.Settings),
		ImportJob: handlers.NewImportJobHandler(services.ImportJob),
	}
}
