package app

import (
	"gorm.io/gorm"

	"github.com/merchly/console-backend/internal/logger"
	"github.com/merchly/console-backend/internal/repos"
)

type Repos struct {
	Merchant  repos.MerchantRepo
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Quiz      repos.QuizRepo
	Product   repos.ProductRepo
	Settings  repos.SettingsRepo
	ImportJob repos.ImportJobRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Merchant:  repos.NewMerchantRepo(db, log),
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Quiz:      repos.NewQuizRepo(db, log),
		Product:   repos.NewProductRepo(db, log),
		Settings:  repos.NewSettingsRepo(db, log),
		ImportJob: repos.NewImportJobRepo(db, log),
	}
}
