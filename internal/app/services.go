package app

import (
	"gorm.io/gorm"

	"github.com/merchly/console-backend/internal/jobs"
	"github.com/merchly/console-backend/internal/logger"
	"github.com/merchly/console-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Quiz      services.QuizService
	Export    services.ExportService
	Draft     services.DraftService
	Product   services.ProductService
	Settings  services.SettingsService
	ImportJob services.ImportJobService

	JobWorker *jobs.Worker
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	authService := services.NewAuthService(
		db,
		log,
		reposet.Merchant,
		reposet.User,
		reposet.UserToken,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	quizService := services.NewQuizService(db, log, reposet.Quiz)
	exportService := services.NewExportService(log, quizService)
	draftService := services.NewDraftService(log, clients.DraftStore)
	productService := services.NewProductService(db, log, reposet.Product)
	settingsService := services.NewSettingsService(db, log, reposet.Settings)
	importJobService := services.NewImportJobService(db, log, reposet.ImportJob)

	registry := jobs.NewRegistry()
	if err := registry.Register(jobs.NewProductCSVHandler(log, reposet.Product)); err != nil {
		return Services{}, err
	}
	worker := jobs.NewWorker(db, log, reposet.ImportJob, registry)

	return Services{
		Auth:      authService,
		Quiz:      quizService,
		Export:    exportService,
		Draft:     draftService,
		Product:   productService,
		Settings:  settingsService,
		ImportJob: importJobService,
		JobWorker: worker,
	}, nil
}
