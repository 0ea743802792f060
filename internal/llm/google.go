package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/logger"
)

const defaultGoogleBaseURL = "https://generativelanguage.googleapis.com"

type googleProvider struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func newGoogleProvider(log *logger.Logger, hc *http.Client) Provider {
	baseURL := strings.TrimSpace(os.Getenv("GOOGLE_AI_BASE_URL"))
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	return &googleProvider{
		log:        log.With("service", "GoogleAIProvider"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

type generateContentRequest struct {
	Contents         []googleContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *googleProvider) Complete(ctx context.Context, modelID string, prompt string) (string, error) {
	apiKey := strings.TrimSpace(os.Getenv("GOOGLE_AI_API_KEY"))
	if apiKey == "" {
		return "", apperrors.Configuration("GOOGLE_AI_API_KEY")
	}

	reqBody := generateContentRequest{
		Contents:         []googleContent{{Parts: []googlePart{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: temperature},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		p.baseURL, modelID, url.QueryEscape(apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeProvider, "Google AI request failed", err)
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.Provider("Google AI", string(raw))
	}

	var out generateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", apperrors.Wrap(apperrors.CodeProvider, "Google AI decode error", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.Provider("Google AI", "no candidates returned")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
