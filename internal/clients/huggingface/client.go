package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/pkg/ctxutil"
	"github.com/aethermind/rag-backend/internal/pkg/httpx"
)

const (
	defaultBaseURL    = "https://api-inference.huggingface.co"
	defaultEmbedModel = "sentence-transformers/all-MiniLM-L6-v2"
)

// Client calls the HuggingFace Inference API feature-extraction pipeline.
type Client interface {
	// Embed returns one vector per input, in input order.
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
	EmbedOne(ctx context.Context, input string) ([]float32, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	embedModel string
	dim        int
	httpClient *http.Client

	maxRetries int
}

func NewClient(log *logger.Logger, dim int) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dim must be positive, got %d", dim)
	}

	apiKey := strings.TrimSpace(os.Getenv("HF_API_KEY"))
	if apiKey == "" {
		return nil, apperrors.Configuration("HF_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("HF_BASE_URL"))
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	embedModel := strings.TrimSpace(os.Getenv("HF_EMBED_MODEL"))
	if embedModel == "" {
		embedModel = defaultEmbedModel
	}

	timeoutSec := 60
	if v := os.Getenv("HF_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	maxRetries := 3
	if v := os.Getenv("HF_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
			maxRetries = parsed
		}
	}

	return &client{
		log:        log.With("service", "HuggingFaceClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		embedModel: embedModel,
		dim:        dim,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
	}, nil
}

type hfHTTPError struct {
	StatusCode int
	Body       string
}

func (e *hfHTTPError) Error() string {
	return fmt.Sprintf("huggingface http %d: %s", e.StatusCode, e.Body)
}

func (e *hfHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type featureExtractionRequest struct {
	Inputs  []string                 `json:"inputs"`
	Options featureExtractionOptions `json:"options"`
}

type featureExtractionOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

func (c *client) doOnce(ctx context.Context, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &hfHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, path string, body any, out any) error {
	ctx = ctxutil.Default(ctx)
	backoff := 1 * time.Second

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, path, body)
		if err == nil {
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("huggingface decode error: %w; raw=%s", uErr, string(raw))
			}
			return nil
		}

		if !httpx.IsRetryableError(err) {
			return err
		}
		if attempt == c.maxRetries {
			return err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, 10*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)

		c.log.Warn("HuggingFace request retrying",
			"path", path,
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		time.Sleep(sleepFor)
		backoff *= 2
	}

	return fmt.Errorf("unreachable retry loop")
}

func (c *client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}

	clean := make([]string, len(inputs))
	for i := range inputs {
		s := strings.TrimSpace(inputs[i])
		if s == "" {
			s = " "
		}
		clean[i] = s
	}

	req := featureExtractionRequest{
		Inputs:  clean,
		Options: featureExtractionOptions{WaitForModel: true},
	}
	path := "/pipeline/feature-extraction/" + c.embedModel

	var resp [][]float64
	if err := c.do(ctx, path, req, &resp); err != nil {
		var httpErr *hfHTTPError
		if errors.As(err, &httpErr) {
			return nil, apperrors.EmbeddingService(httpErr.StatusCode, httpErr.Body)
		}
		return nil, apperrors.Wrap(apperrors.CodeEmbeddingService, "embedding request failed", err)
	}

	if len(resp) != len(clean) {
		return nil, apperrors.Newf(apperrors.CodeEmbeddingService,
			"embedding service returned %d vectors for %d inputs", len(resp), len(clean))
	}

	out := make([][]float32, len(resp))
	for i, row := range resp {
		if len(row) != c.dim {
			return nil, apperrors.Newf(apperrors.CodeEmbeddingService,
				"embedding %d has %d dims, expected %d", i, len(row), c.dim)
		}
		vec := make([]float32, len(row))
		for j, f := range row {
			vec[j] = float32(f)
		}
		out[i] = vec
	}
	return out, nil
}

func (c *client) EmbedOne(ctx context.Context, input string) ([]float32, error) {
	vecs, err := c.Embed(ctx, []string{input})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, apperrors.Newf(apperrors.CodeEmbeddingService,
			"embedding service returned %d vectors for 1 input", len(vecs))
	}
	return vecs[0], nil
}
