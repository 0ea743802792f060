package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/repos"
	"github.com/aethermind/rag-backend/internal/vectorstore"
)

type DocumentSummary struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	ChunksCount int64     `json:"chunks_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type DocumentService interface {
	ListDocuments(ctx context.Context, userID uuid.UUID) ([]DocumentSummary, error)
	DeleteDocument(ctx context.Context, userID, docID uuid.UUID) error
}

type documentService struct {
	db        *gorm.DB
	log       *logger.Logger
	docRepo   repos.DocumentRepo
	chunkRepo repos.DocumentChunkRepo
	store     vectorstore.VectorStore
}

func NewDocumentService(
	db *gorm.DB,
	log *logger.Logger,
	docRepo repos.DocumentRepo,
	chunkRepo repos.DocumentChunkRepo,
	store vectorstore.VectorStore,
) DocumentService {
	return &documentService{
		db:        db,
		log:       log.With("service", "DocumentService"),
		docRepo:   docRepo,
		chunkRepo: chunkRepo,
		store:     store,
	}
}

func (s *documentService) ListDocuments(ctx context.Context, userID uuid.UUID) ([]DocumentSummary, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Unauthorized("owner required")
	}
	docs, err := s.docRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to list documents", err)
	}

	out := make([]DocumentSummary, 0, len(docs))
	for _, d := range docs {
		count, cErr := s.chunkRepo.CountByDocumentID(ctx, nil, d.ID)
		if cErr != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, "failed to count chunks", cErr)
		}
		out = append(out, DocumentSummary{
			ID:          d.ID,
			Filename:    d.Filename,
			ContentType: d.ContentType,
			SizeBytes:   d.SizeBytes,
			ChunksCount: count,
			CreatedAt:   d.CreatedAt,
		})
	}
	return out, nil
}

// DeleteDocument removes a document the caller owns. A document belonging to
// someone else reads as not found rather than forbidden.
func (s *documentService) DeleteDocument(ctx context.Context, userID, docID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperrors.Unauthorized("owner required")
	}
	docs, err := s.docRepo.GetByIDs(ctx, nil, []uuid.UUID{docID})
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, "failed to load document", err)
	}
	if len(docs) == 0 || docs[0].UserID != userID {
		return apperrors.NotFound("document not found")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dErr := s.chunkRepo.DeleteByDocumentID(ctx, tx, docID); dErr != nil {
			return apperrors.Wrap(apperrors.CodeInternal, "failed to delete chunks", dErr)
		}
		if dErr := s.docRepo.DeleteByID(ctx, tx, docID); dErr != nil {
			return apperrors.Wrap(apperrors.CodeInternal, "failed to delete document", dErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if sErr := s.store.DeleteByDocument(ctx, docID); sErr != nil {
		s.log.Warn("Failed to remove vectors for deleted document",
			"document_id", docID, "error", sErr)
	}

	s.log.Info("Document deleted", "document_id", docID, "user_id", userID)
	return nil
}
