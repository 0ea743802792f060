package app

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/vectorstore"
)

// Constructor seams for tests.
var (
	newPgvectorStore = vectorstore.NewPgvectorStore
	newMemoryStore   = vectorstore.NewMemoryStore
)

type VectorProviderBootstrapErrorCode string

const (
	VectorProviderBootstrapErrorInvalidProvider    VectorProviderBootstrapErrorCode = "invalid_provider"
	VectorProviderBootstrapErrorInvalidDim         VectorProviderBootstrapErrorCode = "invalid_embedding_dim"
	VectorProviderBootstrapErrorProviderInitFailed VectorProviderBootstrapErrorCode = "provider_init_failed"
)

type VectorProviderBootstrapError struct {
	Code     VectorProviderBootstrapErrorCode
	Provider string
	Cause    error
}

func (e *VectorProviderBootstrapError) Error() string {
	if e == nil {
		return "vector provider bootstrap failed"
	}
	return fmt.Sprintf("vector provider bootstrap failed (code=%s provider=%q): %v", e.Code, e.Provider, e.Cause)
}

func (e *VectorProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func VectorProviderBootstrapCode(err error) VectorProviderBootstrapErrorCode {
	var bootstrapErr *VectorProviderBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return VectorProviderBootstrapErrorProviderInitFailed
}

func resolveVectorStoreProvider(log *logger.Logger, cfg Config, db *gorm.DB) (vectorstore.VectorStore, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.VectorProvider))
	if provider == "" {
		provider = "pgvector"
	}

	if cfg.EmbeddingDim <= 0 {
		err := &VectorProviderBootstrapError{
			Code:     VectorProviderBootstrapErrorInvalidDim,
			Provider: provider,
			Cause:    fmt.Errorf("embedding dim must be positive, got %d", cfg.EmbeddingDim),
		}
		log.Error("Vector store provider bootstrap failed",
			"provider", provider, "error_code", err.Code, "error", err)
		return nil, err
	}

	log.Info("Selecting vector store provider",
		"provider", provider,
		"embedding_dim", cfg.EmbeddingDim,
	)

	switch provider {
	case "pgvector":
		vs, err := newPgvectorStore(db, log, cfg.EmbeddingDim)
		if err != nil {
			classified := &VectorProviderBootstrapError{
				Code:     VectorProviderBootstrapErrorProviderInitFailed,
				Provider: provider,
				Cause:    err,
			}
			log.Error("Vector store provider bootstrap failed",
				"provider", provider, "error_code", classified.Code, "error", classified)
			return nil, classified
		}
		return vs, nil

	case "memory":
		vs, err := newMemoryStore(log, cfg.EmbeddingDim)
		if err != nil {
			classified := &VectorProviderBootstrapError{
				Code:     VectorProviderBootstrapErrorProviderInitFailed,
				Provider: provider,
				Cause:    err,
			}
			log.Error("Vector store provider bootstrap failed",
				"provider", provider, "error_code", classified.Code, "error", classified)
			return nil, classified
		}
		return vs, nil

	default:
		err := &VectorProviderBootstrapError{
			Code:     VectorProviderBootstrapErrorInvalidProvider,
			Provider: provider,
			Cause:    fmt.Errorf("unsupported vector provider %q", provider),
		}
		log.Error("Vector store provider selection failed",
			"provider", provider, "error_code", err.Code, "error", err)
		return nil, err
	}
}
