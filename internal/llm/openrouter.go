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

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

type openRouterProvider struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func newOpenRouterProvider(log *logger.Logger, hc *http.Client) Provider {
	baseURL := strings.TrimSpace(os.Getenv("OPENROUTER_BASE_URL"))
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return &openRouterProvider{
		log:        log.With("service", "OpenRouterProvider"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

func (p *openRouterProvider) Complete(ctx context.Context, modelID string, prompt string) (string, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
	if apiKey == "" {
		return "", apperrors.Configuration("OPENROUTER_API_KEY")
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
	req.Header.Set("HTTP-Referer", "https://aethermind.app")
	req.Header.Set("X-Title", "AetherMind RAG")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeProvider, "OpenRouter request failed", err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.Provider("OpenRouter", string(raw))
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", apperrors.Wrap(apperrors.CodeProvider, "OpenRouter decode error", err)
	}
	if len(out.Choices) == 0 {
		return "", apperrors.Provider("OpenRouter", "no completion choices returned")
	}
	return out.Choices[0].Message.Content, nil
}
