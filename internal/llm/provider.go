package llm

import (
	"context"
)

// Grounded answers use a fixed low temperature.
const temperature = 0.3

// Provider turns a finished prompt into a single completion. The prompt is
// sent as one user turn; no conversation state is kept.
type Provider interface {
	Complete(ctx context.Context, modelID string, prompt string) (string, error)
}

// OpenAI-compatible chat completion wire types, shared by the OpenRouter and
// xAI adapters.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
