package vectorstore

import (
	"context"

	"github.com/google/uuid"
)

// Entry is one indexed chunk vector plus the metadata retrieval needs.
type Entry struct {
	ChunkID    uuid.UUID
	DocumentID uuid.UUID
	UserID     uuid.UUID
	Filename   string
	Text       string
	ChunkIndex int
	Values     []float32
}

// RetrievalMatch is transient query output, never persisted.
type RetrievalMatch struct {
	ChunkID    uuid.UUID `json:"chunk_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	Text       string    `json:"text"`
	ChunkIndex int       `json:"chunk_index"`
	Score      float64   `json:"score"`
}

// VectorStore answers owner-scoped nearest-neighbor queries. Matches come back
// strictly descending by score with ties broken by chunk id; anything below
// threshold is excluded even when limit is not reached. An empty result is
// valid, not an error.
type VectorStore interface {
	Upsert(ctx context.Context, entries []Entry) error
	Search(ctx context.Context, userID uuid.UUID, query []float32, threshold float64, limit int) ([]RetrievalMatch, error)
	DeleteByDocument(ctx context.Context, docID uuid.UUID) error
}
