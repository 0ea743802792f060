package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/vectorstore"
)

type fakeStore struct{}

func (fakeStore) Upsert(ctx context.Context, entries []vectorstore.Entry) error { return nil }
func (fakeStore) Search(ctx context.Context, userID uuid.UUID, query []float32, threshold float64, limit int) ([]vectorstore.RetrievalMatch, error) {
	return nil, nil
}
func (fakeStore) DeleteByDocument(ctx context.Context, docID uuid.UUID) error { return nil }

func testConfig(provider string, dim int) Config {
	return Config{VectorProvider: provider, EmbeddingDim: dim}
}

func newProviderTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestResolveVectorStoreProviderPgvector(t *testing.T) {
	origPg := newPgvectorStore
	defer func() { newPgvectorStore = origPg }()

	var gotDim int
	newPgvectorStore = func(db *gorm.DB, log *logger.Logger, dim int) (vectorstore.VectorStore, error) {
		gotDim = dim
		return fakeStore{}, nil
	}

	vs, err := resolveVectorStoreProvider(newProviderTestLogger(t), testConfig("pgvector", 384), nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if vs == nil {
		t.Fatalf("nil store")
	}
	if gotDim != 384 {
		t.Fatalf("dim not threaded through: %d", gotDim)
	}
}

func TestResolveVectorStoreProviderDefaultsToPgvector(t *testing.T) {
	origPg := newPgvectorStore
	defer func() { newPgvectorStore = origPg }()

	called := false
	newPgvectorStore = func(db *gorm.DB, log *logger.Logger, dim int) (vectorstore.VectorStore, error) {
		called = true
		return fakeStore{}, nil
	}

	if _, err := resolveVectorStoreProvider(newProviderTestLogger(t), testConfig("", 384), nil); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !called {
		t.Fatalf("empty provider should default to pgvector")
	}
}

func TestResolveVectorStoreProviderMemory(t *testing.T) {
	vs, err := resolveVectorStoreProvider(newProviderTestLogger(t), testConfig("memory", 3), nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if vs == nil {
		t.Fatalf("nil store")
	}
}

func TestResolveVectorStoreProviderUnknown(t *testing.T) {
	_, err := resolveVectorStoreProvider(newProviderTestLogger(t), testConfig("chroma", 384), nil)
	if err == nil {
		t.Fatalf("expected bootstrap error")
	}
	if VectorProviderBootstrapCode(err) != VectorProviderBootstrapErrorInvalidProvider {
		t.Fatalf("want invalid_provider, got %s", VectorProviderBootstrapCode(err))
	}
}

func TestResolveVectorStoreProviderBadDim(t *testing.T) {
	_, err := resolveVectorStoreProvider(newProviderTestLogger(t), testConfig("pgvector", 0), nil)
	if err == nil {
		t.Fatalf("expected bootstrap error")
	}
	if VectorProviderBootstrapCode(err) != VectorProviderBootstrapErrorInvalidDim {
		t.Fatalf("want invalid_embedding_dim, got %s", VectorProviderBootstrapCode(err))
	}
}

func TestResolveVectorStoreProviderInitFailureClassified(t *testing.T) {
	origPg := newPgvectorStore
	defer func() { newPgvectorStore = origPg }()

	boom := fmt.Errorf("connect refused")
	newPgvectorStore = func(db *gorm.DB, log *logger.Logger, dim int) (vectorstore.VectorStore, error) {
		return nil, boom
	}

	_, err := resolveVectorStoreProvider(newProviderTestLogger(t), testConfig("pgvector", 384), nil)
	if err == nil {
		t.Fatalf("expected bootstrap error")
	}
	if VectorProviderBootstrapCode(err) != VectorProviderBootstrapErrorProviderInitFailed {
		t.Fatalf("want provider_init_failed, got %s", VectorProviderBootstrapCode(err))
	}
	if !errors.Is(err, boom) {
		t.Fatalf("cause not wrapped")
	}
}
