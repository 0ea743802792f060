package app

import (
	"time"

	"github.com/aethermind/rag-backend/internal/chunker"
	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/utils"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	VectorProvider      string
	EmbeddingDim        int
	SimilarityThreshold float64
	TopK                int
	ChunkSize           int
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	return Config{
		Port:            utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,

		VectorProvider:      utils.GetEnv("VECTOR_PROVIDER", "pgvector", log),
		EmbeddingDim:        utils.GetEnvAsInt("EMBEDDING_DIM", 384, log),
		SimilarityThreshold: utils.GetEnvAsFloat("SIMILARITY_THRESHOLD", 0.5, log),
		TopK:                utils.GetEnvAsInt("RAG_TOP_K", 5, log),
		ChunkSize:           utils.GetEnvAsInt("CHUNK_SIZE", chunker.DefaultChunkSize, log),
	}
}
