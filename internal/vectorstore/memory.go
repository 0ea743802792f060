package vectorstore

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/logger"
)

// memoryStore is a dev/test store: cosine similarity computed in-process.
type memoryStore struct {
	log *logger.Logger
	dim int

	mu      sync.RWMutex
	entries map[uuid.UUID]Entry
}

func NewMemoryStore(log *logger.Logger, dim int) (VectorStore, error) {
	if log == nil {
		return nil, apperrors.Internal("logger required")
	}
	if dim <= 0 {
		return nil, apperrors.Newf(apperrors.CodeInternal, "embedding dim must be positive, got %d", dim)
	}
	return &memoryStore{
		log:     log.With("service", "MemoryVectorStore"),
		dim:     dim,
		entries: make(map[uuid.UUID]Entry),
	}, nil
}

func (s *memoryStore) Upsert(ctx context.Context, entries []Entry) error {
	for _, e := range entries {
		if len(e.Values) != s.dim {
			return apperrors.Newf(apperrors.CodeValidation,
				"embedding dimensionality mismatch: chunk %s has %d dims, index expects %d",
				e.ChunkID, len(e.Values), s.dim)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[e.ChunkID] = e
	}
	return nil
}

func (s *memoryStore) Search(ctx context.Context, userID uuid.UUID, query []float32, threshold float64, limit int) ([]RetrievalMatch, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Validation("owner id required for similarity search")
	}
	if len(query) != s.dim {
		return nil, apperrors.Newf(apperrors.CodeValidation,
			"query embedding has %d dims, index expects %d", len(query), s.dim)
	}
	if limit <= 0 {
		return nil, apperrors.Validation("search limit must be positive")
	}

	s.mu.RLock()
	matches := make([]RetrievalMatch, 0, len(s.entries))
	for _, e := range s.entries {
		if e.UserID != userID {
			continue
		}
		score := cosine(query, e.Values)
		if score < threshold {
			continue
		}
		matches = append(matches, RetrievalMatch{
			ChunkID:    e.ChunkID,
			DocumentID: e.DocumentID,
			Filename:   e.Filename,
			Text:       e.Text,
			ChunkIndex: e.ChunkIndex,
			Score:      score,
		})
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		// Deterministic tie break so identical queries return identical order.
		return strings.Compare(matches[i].ChunkID.String(), matches[j].ChunkID.String()) < 0
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *memoryStore) DeleteByDocument(ctx context.Context, docID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if e.DocumentID == docID {
			delete(s.entries, id)
		}
	}
	return nil
}

func cosine(a []float32, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	denom := math.Sqrt(na)*math.Sqrt(nb) + 1e-8
	return dot / denom
}
