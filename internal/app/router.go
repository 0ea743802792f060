package app

import (
	"github.com/gin-gonic/gin"

	"github.com/aethermind/rag-backend/internal/server"
)

func wireRouter(h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		HealthcheckHandler: h.Healthcheck,
		AuthHandler:        h.Auth,
		DocumentHandler:    h.Document,
		QueryHandler:       h.Query,
		AuthMiddleware:     m.Auth,
	})
}
