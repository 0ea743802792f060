package app

import (
	"github.com/aethermind/rag-backend/internal/handlers"
)

type Handlers struct {
	Healthcheck *handlers.HealthcheckHandler
	Auth        *handlers.AuthHandler
	Document    *handlers.DocumentHandler
	Query       *handlers.QueryHandler
}

func wireHandlers(s Services) Handlers {
	return Handlers{
		Healthcheck: handlers.NewHealthcheckHandler(),
		Auth:        handlers.NewAuthHandler(s.Auth),
		Document:    handlers.NewDocumentHandler(s.Ingestion, s.Document),
		Query:       handlers.NewQueryHandler(s.Query),
	}
}
