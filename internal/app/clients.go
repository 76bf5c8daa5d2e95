package app

import (
	redisclient "github.com/merchly/console-backend/internal/clients/redis"
	"github.com/merchly/console-backend/internal/logger"
)

type Clients struct {
	DraftStore redisclient.DraftStore
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")
	draftStore, err := redisclient.NewDraftStore(log)
	if err != nil {
		return Clients{}, err
	}
	return Clients{DraftStore: draftStore}, nil
}
