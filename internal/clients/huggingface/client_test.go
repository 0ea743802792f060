package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/logger"
)

func newTestClient(t *testing.T, baseURL string, dim int) Client {
	t.Helper()
	t.Setenv("HF_API_KEY", "test-key")
	t.Setenv("HF_BASE_URL", baseURL)
	t.Setenv("HF_MAX_RETRIES", "2")
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	c, err := NewClient(log, dim)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestEmbedPreservesInputOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Inputs  []string `json:"inputs"`
			Options struct {
				WaitForModel bool `json:"wait_for_model"`
			} `json:"options"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !req.Options.WaitForModel {
			t.Errorf("wait_for_model not set")
		}
		out := make([][]float64, len(req.Inputs))
		for i := range req.Inputs {
			out[i] = []float64{float64(i), 0, 0}
		}
		_ = json.NewEncoder(w).Encode(out)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	vecs, err := c.Embed(context.Background(), []string{"first", "second", "third"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 3 {
		t.Fatalf("want 3 vectors, got %d", len(vecs))
	}
	for i, v := range vecs {
		if v[0] != float32(i) {
			t.Fatalf("vector %d out of order: first component %f", i, v[0])
		}
	}
}

func TestEmbedEmptyInputSkipsNetwork(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	vecs, err := c.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 0 {
		t.Fatalf("want empty result, got %d", len(vecs))
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("network call made for empty input")
	}
}

func TestEmbedNonRetryableFailureSurfacesStatusAndBody(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	_, err := c.Embed(context.Background(), []string{"hello"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if apperrors.CodeOf(err) != apperrors.CodeEmbeddingService {
		t.Fatalf("want embedding_service_error, got %s", apperrors.CodeOf(err))
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("401 should not be retried, got %d calls", atomic.LoadInt32(&calls))
	}
}

func TestEmbedRetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode([][]float64{{1, 0, 0}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	vecs, err := c.Embed(context.Background(), []string{"hello"})
	if err != nil {
		t.Fatalf("Embed after retry: %v", err)
	}
	if len(vecs) != 1 {
		t.Fatalf("want 1 vector, got %d", len(vecs))
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("want 2 calls (1 retry), got %d", atomic.LoadInt32(&calls))
	}
}

func TestEmbedDimMismatchRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([][]float64{{1, 0}})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 384)
	_, err := c.Embed(context.Background(), []string{"hello"})
	if err == nil {
		t.Fatalf("expected dim mismatch error")
	}
	if apperrors.CodeOf(err) != apperrors.CodeEmbeddingService {
		t.Fatalf("want embedding_service_error, got %s", apperrors.CodeOf(err))
	}
}

func TestNewClientMissingKey(t *testing.T) {
	t.Setenv("HF_API_KEY", "")
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	if _, err := NewClient(log, 384); err == nil {
		t.Fatalf("expected configuration error without HF_API_KEY")
	}
}
