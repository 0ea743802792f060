package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/repos"
)

type documentFixture struct {
	svc       DocumentService
	ingest    IngestionService
	chunkRepo repos.DocumentChunkRepo
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	docRepo := repos.NewDocumentRepo(db, log)
	chunkRepo := repos.NewDocumentChunkRepo(db, log)
	store := newTestStore(t, 3)
	return &documentFixture{
		svc:       NewDocumentService(db, log, docRepo, chunkRepo, store),
		ingest:    NewIngestionService(db, log, docRepo, chunkRepo, &stubEmbedder{dim: 3}, store, 500),
		chunkRepo: chunkRepo,
	}
}

func TestListDocumentsIncludesChunkCounts(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	user := uuid.New()

	res, err := f.ingest.IngestDocument(ctx, user, "notes.txt", "text/plain", []byte(twelveSentences()))
	if err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}

	docs, err := f.svc.ListDocuments(ctx, user)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("want 1 document, got %d", len(docs))
	}
	if docs[0].ID != res.DocumentID {
		t.Fatalf("listed wrong document")
	}
	if docs[0].ChunksCount != int64(res.ChunksCount) {
		t.Fatalf("chunk count mismatch: list says %d, ingest said %d", docs[0].ChunksCount, res.ChunksCount)
	}
}

func TestListDocumentsScopedToOwner(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	if _, err := f.ingest.IngestDocument(ctx, alice, "alice.txt", "text/plain", []byte("Alice owns this.")); err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}

	docs, err := f.svc.ListDocuments(ctx, bob)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("owner scoping leaked: bob sees %d documents", len(docs))
	}
}

func TestDeleteDocumentRemovesChunks(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	user := uuid.New()

	res, err := f.ingest.IngestDocument(ctx, user, "notes.txt", "text/plain", []byte(twelveSentences()))
	if err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}

	if err := f.svc.DeleteDocument(ctx, user, res.DocumentID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}

	count, err := f.chunkRepo.CountByDocumentID(ctx, nil, res.DocumentID)
	if err != nil {
		t.Fatalf("CountByDocumentID: %v", err)
	}
	if count != 0 {
		t.Fatalf("chunks survived document deletion: %d", count)
	}

	docs, err := f.svc.ListDocuments(ctx, user)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("document survived deletion")
	}
}

func TestDeleteDocumentOtherOwnerNotFound(t *testing.T) {
	f := newDocumentFixture(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	res, err := f.ingest.IngestDocument(ctx, alice, "alice.txt", "text/plain", []byte("Alice owns this."))
	if err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}

	err = f.svc.DeleteDocument(ctx, bob, res.DocumentID)
	if err == nil {
		t.Fatalf("expected not found for foreign document")
	}
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Fatalf("want not_found, got %s", apperrors.CodeOf(err))
	}
}

func TestDeleteDocumentUnknownIDNotFound(t *testing.T) {
	f := newDocumentFixture(t)
	err := f.svc.DeleteDocument(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatalf("expected not found")
	}
	if apperrors.CodeOf(err) != apperrors.CodeNotFound {
		t.Fatalf("want not_found, got %s", apperrors.CodeOf(err))
	}
}
