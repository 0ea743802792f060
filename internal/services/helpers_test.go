package services

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/types"
	"github.com/aethermind/rag-backend/internal/vectorstore"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Document{},
		&types.DocumentChunk{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestStore(t *testing.T, dim int) vectorstore.VectorStore {
	t.Helper()
	store, err := vectorstore.NewMemoryStore(newTestLogger(t), dim)
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	return store
}

// stubEmbedder returns a fixed-dimension vector per input; the first component
// varies with call order so vectors stay distinguishable.
type stubEmbedder struct {
	dim   int
	calls int
	fail  error
}

func (s *stubEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	out := make([][]float32, len(inputs))
	for i := range inputs {
		vec := make([]float32, s.dim)
		vec[0] = 1
		out[i] = vec
	}
	s.calls++
	return out, nil
}

// stubRouter records the prompt it was asked to answer.
type stubRouter struct {
	answer     string
	lastPrompt string
	lastModel  string
	fail       error
}

func (s *stubRouter) Generate(ctx context.Context, modelKey string, prompt string) (string, string, error) {
	if s.fail != nil {
		return "", "", s.fail
	}
	s.lastPrompt = prompt
	s.lastModel = modelKey
	used := modelKey
	if used == "" {
		used = "gemini-2.5-flash"
	}
	return s.answer, used, nil
}

func (s *stubRouter) DefaultModel() string { return "gemini-2.5-flash" }
