package vectorstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/types"
)

// pgvectorStore queries the document_chunk table directly: chunk rows carry
// their embeddings, so Upsert is satisfied by the ingestion transaction and
// DeleteByDocument by the FK cascade.
type pgvectorStore struct {
	db  *gorm.DB
	log *logger.Logger
	dim int
}

func NewPgvectorStore(db *gorm.DB, log *logger.Logger, dim int) (VectorStore, error) {
	if db == nil {
		return nil, fmt.Errorf("db required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dim must be positive, got %d", dim)
	}
	return &pgvectorStore{
		db:  db,
		log: log.With("service", "PgvectorStore"),
		dim: dim,
	}, nil
}

func (s *pgvectorStore) Upsert(ctx context.Context, entries []Entry) error {
	for _, e := range entries {
		if len(e.Values) != s.dim {
			return apperrors.Newf(apperrors.CodeValidation,
				"embedding dimensionality mismatch: chunk %s has %d dims, index expects %d",
				e.ChunkID, len(e.Values), s.dim)
		}
	}
	// Vectors are persisted on the chunk rows themselves.
	return nil
}

type pgvectorRow struct {
	ID         uuid.UUID `gorm:"column:id"`
	DocumentID uuid.UUID `gorm:"column:document_id"`
	ChunkIndex int       `gorm:"column:chunk_index"`
	Text       string    `gorm:"column:text"`
	Filename   string    `gorm:"column:filename"`
	Score      float64   `gorm:"column:score"`
}

func (s *pgvectorStore) Search(ctx context.Context, userID uuid.UUID, query []float32, threshold float64, limit int) ([]RetrievalMatch, error) {
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

	qv, err := types.Vector(query).Value()
	if err != nil {
		return nil, err
	}

	var rows []pgvectorRow
	err = s.db.WithContext(ctx).Raw(`
		SELECT dc.id, dc.document_id, dc.chunk_index, dc.text, d.filename,
		       1 - (dc.embedding <=> ?::vector) AS score
		FROM document_chunk dc
		JOIN document d ON d.id = dc.document_id
		WHERE d.user_id = ?
		  AND dc.embedding IS NOT NULL
		  AND 1 - (dc.embedding <=> ?::vector) >= ?
		ORDER BY score DESC, dc.id ASC
		LIMIT ?`,
		qv, userID, qv, threshold, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]RetrievalMatch, 0, len(rows))
	for _, r := range rows {
		out = append(out, RetrievalMatch{
			ChunkID:    r.ID,
			DocumentID: r.DocumentID,
			Filename:   r.Filename,
			Text:       r.Text,
			ChunkIndex: r.ChunkIndex,
			Score:      r.Score,
		})
	}
	return out, nil
}

func (s *pgvectorStore) DeleteByDocument(ctx context.Context, docID uuid.UUID) error {
	// FK cascade removes the chunk rows (and their vectors) with the document.
	return nil
}
