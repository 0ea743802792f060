package app

import (
	"gorm.io/gorm"

	"github.com/aethermind/rag-backend/internal/clients/huggingface"
	"github.com/aethermind/rag-backend/internal/llm"
	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/services"
	"github.com/aethermind/rag-backend/internal/vectorstore"
)

type Services struct {
	Auth      services.AuthService
	Ingestion services.IngestionService
	Query     services.QueryService
	Document  services.DocumentService

	Embedder huggingface.Client
	Router   llm.Router
	Store    vectorstore.VectorStore
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	store, err := resolveVectorStoreProvider(log, cfg, db)
	if err != nil {
		return Services{}, err
	}

	embedder, err := huggingface.NewClient(log, cfg.EmbeddingDim)
	if err != nil {
		return Services{}, err
	}

	router, err := llm.NewRouter(log)
	if err != nil {
		return Services{}, err
	}

	authService := services.NewAuthService(
		db, log, r.User, r.UserToken,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	ingestionService := services.NewIngestionService(
		db, log, r.Document, r.DocumentChunk, embedder, store, cfg.ChunkSize,
	)
	queryService := services.NewQueryService(
		log, embedder, store, router, cfg.TopK, cfg.SimilarityThreshold,
	)
	documentService := services.NewDocumentService(
		db, log, r.Document, r.DocumentChunk, store,
	)

	return Services{
		Auth:      authService,
		Ingestion: ingestionService,
		Query:     queryService,
		Document:  documentService,
		Embedder:  embedder,
		Router:    router,
		Store:     store,
	}, nil
}
