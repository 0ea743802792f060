package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/llm"
	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/prompt"
	"github.com/aethermind/rag-backend/internal/vectorstore"
)

type QueryRequest struct {
	Query     string
	Model     string
	TopK      int
	Threshold *float64
}

type QueryResult struct {
	Answer      string
	ModelUsed   string
	Sources     []string
	ChunksFound int
}

type QueryService interface {
	Query(ctx context.Context, userID uuid.UUID, req QueryRequest) (*QueryResult, error)
}

type queryService struct {
	log              *logger.Logger
	embedder         Embedder
	store            vectorstore.VectorStore
	router           llm.Router
	defaultTopK      int
	defaultThreshold float64
}

func NewQueryService(
	log *logger.Logger,
	embedder Embedder,
	store vectorstore.VectorStore,
	router llm.Router,
	defaultTopK int,
	defaultThreshold float64,
) QueryService {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &queryService{
		log:              log.With("service", "QueryService"),
		embedder:         embedder,
		store:            store,
		router:           router,
		defaultTopK:      defaultTopK,
		defaultThreshold: defaultThreshold,
	}
}

// Query embeds the question, retrieves the owner's most similar chunks, and
// asks the routed model for a grounded answer. Zero matches is not an error:
// the model is asked anyway with a no-context placeholder.
func (s *queryService) Query(ctx context.Context, userID uuid.UUID, req QueryRequest) (*QueryResult, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Unauthorized("owner required for query")
	}
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return nil, apperrors.Validation("query is required")
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}
	threshold := s.defaultThreshold
	if req.Threshold != nil {
		if *req.Threshold < 0 || *req.Threshold > 1 {
			return nil, apperrors.Validation("threshold must be between 0 and 1")
		}
		threshold = *req.Threshold
	}

	vecs, err := s.embedder.Embed(ctx, []string{q})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, apperrors.Newf(apperrors.CodeEmbeddingService,
			"got %d embeddings for query", len(vecs))
	}

	matches, err := s.store.Search(ctx, userID, vecs[0], threshold, topK)
	if err != nil {
		return nil, err
	}

	passages := make([]string, 0, len(matches))
	sources := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		passages = append(passages, fmt.Sprintf("Source: %s\n%s", m.Filename, m.Text))
		if _, ok := seen[m.Filename]; !ok {
			seen[m.Filename] = struct{}{}
			sources = append(sources, m.Filename)
		}
	}

	p := prompt.Grounded(q, passages)
	answer, modelUsed, err := s.router.Generate(ctx, req.Model, p)
	if err != nil {
		return nil, err
	}

	s.log.Info("Query answered",
		"user_id", userID,
		"model_used", modelUsed,
		"chunks_found", len(matches),
	)
	return &QueryResult{
		Answer:      answer,
		ModelUsed:   modelUsed,
		Sources:     sources,
		ChunksFound: len(matches),
	}, nil
}
