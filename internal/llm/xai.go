package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/logger"
)

const defaultXAIBaseURL = "https://api.x.ai/v1"

type xaiProvider struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func newXAIProvider(log *logger.Logger, hc *http.Client) Provider {
	baseURL := strings.TrimSpace(os.Getenv("XAI_BASE_URL"))
	if baseURL == "" {
		baseURL = defaultXAIBaseURL
	}
	return &xaiProvider{
		log:        log.With("service", "XAIProvider"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

func (p *xaiProvider) Complete(ctx context.Context, modelID string, prompt string) (string, error) {
	apiKey := strings.TrimSpace(os.Getenv("XAI_API_KEY"))
	if apiKey == "" {
		return "", apperrors.Configuration("XAI_API_KEY")
	}

	reqBody := chatCompletionRequest{
		Model:       modelID,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeProvider, "xAI request failed", err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.Provider("xAI", string(raw))
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", apperrors.Wrap(apperrors.CodeProvider, "xAI decode error", err)
	}
	if len(out.Choices) == 0 {
		return "", apperrors.Provider("xAI", "no completion choices returned")
	}
	return out.Choices[0].Message.Content, nil
}
