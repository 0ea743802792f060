package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/chunker"
	"github.com/aethermind/rag-backend/internal/extract"
	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/repos"
	"github.com/aethermind/rag-backend/internal/types"
	"github.com/aethermind/rag-backend/internal/vectorstore"
)

// Embedder is the slice of the embedding client ingestion and query need.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

type IngestResult struct {
	DocumentID  uuid.UUID
	ChunksCount int
}

type IngestionService interface {
	IngestDocument(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*IngestResult, error)
}

type ingestionService struct {
	db        *gorm.DB
	log       *logger.Logger
	docRepo   repos.DocumentRepo
	chunkRepo repos.DocumentChunkRepo
	embedder  Embedder
	store     vectorstore.VectorStore
	chunkSize int
}

// Embedding requests are bounded so one large document does not become one
// giant upstream call.
const embedBatchSize = 64

func NewIngestionService(
	db *gorm.DB,
	log *logger.Logger,
	docRepo repos.DocumentRepo,
	chunkRepo repos.DocumentChunkRepo,
	embedder Embedder,
	store vectorstore.VectorStore,
	chunkSize int,
) IngestionService {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultChunkSize
	}
	return &ingestionService{
		db:        db,
		log:       log.With("service", "IngestionService"),
		docRepo:   docRepo,
		chunkRepo: chunkRepo,
		embedder:  embedder,
		store:     store,
		chunkSize: chunkSize,
	}
}

// IngestDocument extracts, chunks, embeds, and persists in that order. The
// document row and every chunk row commit in a single transaction: a failure
// at any stage leaves no partial document behind.
func (s *ingestionService) IngestDocument(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*IngestResult, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Unauthorized("owner required for ingestion")
	}
	if filename == "" {
		return nil, apperrors.Validation("filename is required")
	}
	if len(data) == 0 {
		return nil, apperrors.Validation("file is empty")
	}

	text, err := extract.Text(filename, contentType, data)
	if err != nil {
		return nil, err
	}

	chunks := chunker.Split(text, s.chunkSize)
	if len(chunks) == 0 {
		return nil, apperrors.Validation("no text content found in file")
	}

	vectors, err := s.embedChunks(ctx, chunker.Texts(chunks))
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(chunks) {
		return nil, apperrors.Newf(apperrors.CodeEmbeddingService,
			"got %d embeddings for %d chunks", len(vectors), len(chunks))
	}

	docID := uuid.New()
	now := time.Now()

	doc := &types.Document{
		ID:          docID,
		UserID:      userID,
		Filename:    filename,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		CreatedAt:   now,
	}

	rows := make([]*types.DocumentChunk, 0, len(chunks))
	entries := make([]vectorstore.Entry, 0, len(chunks))
	for i, c := range chunks {
		meta, mErr := json.Marshal(map[string]any{"filename": filename})
		if mErr != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to encode chunk metadata", mErr)
		}
		chunkID := uuid.New()
		rows = append(rows, &types.DocumentChunk{
			ID:         chunkID,
			DocumentID: docID,
			ChunkIndex: c.Index,
			Text:       c.Text,
			Embedding:  types.Vector(vectors[i]),
			Metadata:   datatypes.JSON(meta),
			CreatedAt:  now,
		})
		entries = append(entries, vectorstore.Entry{
			ChunkID:    chunkID,
			DocumentID: docID,
			UserID:     userID,
			Filename:   filename,
			Text:       c.Text,
			ChunkIndex: c.Index,
			Values:     vectors[i],
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := s.docRepo.Create(ctx, tx, []*types.Document{doc}); cErr != nil {
			return apperrors.Wrap(apperrors.CodeInternal, "failed to create document", cErr)
		}
		if _, cErr := s.chunkRepo.Create(ctx, tx, rows); cErr != nil {
			return apperrors.Wrap(apperrors.CodeInternal, "failed to create document chunks", cErr)
		}
		// Index inside the transaction so an index failure rolls the rows back.
		if uErr := s.store.Upsert(ctx, entries); uErr != nil {
			return uErr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Document ingested",
		"document_id", docID,
		"user_id", userID,
		"filename", filename,
		"chunks", len(rows),
	)
	return &IngestResult{DocumentID: docID, ChunksCount: len(rows)}, nil
}

func (s *ingestionService) embedChunks(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		vecs, err := s.embedder.Embed(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vecs...)
	}
	return out, nil
}
