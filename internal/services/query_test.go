package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/prompt"
	"github.com/aethermind/rag-backend/internal/vectorstore"
)

func TestQueryZeroMatchesStillAnswers(t *testing.T) {
	log := newTestLogger(t)
	router := &stubRouter{answer: "I don't know."}
	svc := NewQueryService(log, &stubEmbedder{dim: 3}, newTestStore(t, 3), router, 5, 0.5)

	res, err := svc.Query(context.Background(), uuid.New(), QueryRequest{Query: "anything?"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.ChunksFound != 0 {
		t.Fatalf("want 0 chunks found, got %d", res.ChunksFound)
	}
	if len(res.Sources) != 0 {
		t.Fatalf("want no sources, got %v", res.Sources)
	}
	if !strings.Contains(router.lastPrompt, prompt.NoContextPlaceholder) {
		t.Fatalf("prompt missing no-context placeholder:\n%s", router.lastPrompt)
	}
	if res.Answer != "I don't know." {
		t.Fatalf("got answer %q", res.Answer)
	}
}

func TestQuerySourcesDistinctInRetrievalOrder(t *testing.T) {
	log := newTestLogger(t)
	store := newTestStore(t, 3)
	user := uuid.New()
	docA := uuid.New()
	docB := uuid.New()

	entries := []vectorstore.Entry{
		{ChunkID: uuid.New(), DocumentID: docA, UserID: user, Filename: "alpha.txt", Text: "best match", ChunkIndex: 0, Values: []float32{1, 0, 0}},
		{ChunkID: uuid.New(), DocumentID: docA, UserID: user, Filename: "alpha.txt", Text: "second match", ChunkIndex: 1, Values: []float32{0.9, 0.1, 0}},
		{ChunkID: uuid.New(), DocumentID: docB, UserID: user, Filename: "beta.txt", Text: "third match", ChunkIndex: 0, Values: []float32{0.8, 0.2, 0}},
	}
	if err := store.Upsert(context.Background(), entries); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	router := &stubRouter{answer: "grounded"}
	svc := NewQueryService(log, &stubEmbedder{dim: 3}, store, router, 5, 0.0)

	res, err := svc.Query(context.Background(), user, QueryRequest{Query: "q"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.ChunksFound != 3 {
		t.Fatalf("want 3 chunks found, got %d", res.ChunksFound)
	}
	if len(res.Sources) != 2 || res.Sources[0] != "alpha.txt" || res.Sources[1] != "beta.txt" {
		t.Fatalf("sources not distinct in retrieval order: %v", res.Sources)
	}
	if !strings.Contains(router.lastPrompt, "Source: alpha.txt\nbest match") {
		t.Fatalf("passage formatting missing filename attribution:\n%s", router.lastPrompt)
	}
	ia := strings.Index(router.lastPrompt, "best match")
	ib := strings.Index(router.lastPrompt, "third match")
	if !(ia >= 0 && ib >= 0 && ia < ib) {
		t.Fatalf("passages not in retrieval order")
	}
}

func TestQueryEmptyQueryRejected(t *testing.T) {
	svc := NewQueryService(newTestLogger(t), &stubEmbedder{dim: 3}, newTestStore(t, 3), &stubRouter{}, 5, 0.5)
	_, err := svc.Query(context.Background(), uuid.New(), QueryRequest{Query: "   "})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("want validation_error, got %s", apperrors.CodeOf(err))
	}
}

func TestQueryThresholdOverrideOutOfRangeRejected(t *testing.T) {
	svc := NewQueryService(newTestLogger(t), &stubEmbedder{dim: 3}, newTestStore(t, 3), &stubRouter{}, 5, 0.5)
	bad := 1.5
	_, err := svc.Query(context.Background(), uuid.New(), QueryRequest{Query: "q", Threshold: &bad})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if apperrors.CodeOf(err) != apperrors.CodeValidation {
		t.Fatalf("want validation_error, got %s", apperrors.CodeOf(err))
	}
}

func TestQueryTopKOverrideLimitsMatches(t *testing.T) {
	store := newTestStore(t, 3)
	user := uuid.New()
	doc := uuid.New()
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		err := store.Upsert(ctx, []vectorstore.Entry{{
			ChunkID:    uuid.New(),
			DocumentID: doc,
			UserID:     user,
			Filename:   "big.txt",
			Text:       "passage",
			ChunkIndex: i,
			Values:     []float32{1, 0, 0},
		}})
		if err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	svc := NewQueryService(newTestLogger(t), &stubEmbedder{dim: 3}, store, &stubRouter{answer: "a"}, 5, 0.0)
	res, err := svc.Query(ctx, user, QueryRequest{Query: "q", TopK: 2})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.ChunksFound != 2 {
		t.Fatalf("top_k override ignored: got %d chunks", res.ChunksFound)
	}
}

func TestQueryRouterFailurePropagates(t *testing.T) {
	router := &stubRouter{fail: apperrors.Configuration("GOOGLE_AI_API_KEY")}
	svc := NewQueryService(newTestLogger(t), &stubEmbedder{dim: 3}, newTestStore(t, 3), router, 5, 0.5)
	_, err := svc.Query(context.Background(), uuid.New(), QueryRequest{Query: "q"})
	if err == nil {
		t.Fatalf("expected configuration error")
	}
	if apperrors.CodeOf(err) != apperrors.CodeConfiguration {
		t.Fatalf("want configuration_error, got %s", apperrors.CodeOf(err))
	}
}
