package llm

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aethermind/rag-backend/internal/apperrors"
	"github.com/aethermind/rag-backend/internal/logger"
	"github.com/aethermind/rag-backend/internal/utils"
)

// Router dispatches a prompt to the provider behind the requested model key.
// An unknown key silently falls back to the configured default; a missing
// credential fails before any network call.
type Router interface {
	Generate(ctx context.Context, modelKey string, prompt string) (answer string, modelUsed string, err error)
	DefaultModel() string
}

type router struct {
	log        *logger.Logger
	defaultKey string
	providers  map[string]Provider
}

func NewRouter(log *logger.Logger) (Router, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	log = log.With("service", "LLMRouter")

	timeoutSec := utils.GetEnvAsInt("LLM_TIMEOUT_SECONDS", 60, log)
	hc := &http.Client{Timeout: time.Duration(timeoutSec) * time.Second}

	defaultKey := strings.TrimSpace(utils.GetEnv("LLM_DEFAULT_MODEL", DefaultModelKey, log))
	if !KnownModel(defaultKey) {
		log.Warn("Configured default model unknown, using built-in default",
			"configured", defaultKey, "default", DefaultModelKey)
		defaultKey = DefaultModelKey
	}

	return &router{
		log:        log,
		defaultKey: defaultKey,
		providers: map[string]Provider{
			"openrouter": newOpenRouterProvider(log, hc),
			"xai":        newXAIProvider(log, hc),
			"google":     newGoogleProvider(log, hc),
		},
	}, nil
}

func (r *router) DefaultModel() string {
	return r.defaultKey
}

func (r *router) Generate(ctx context.Context, modelKey string, prompt string) (string, string, error) {
	key := strings.TrimSpace(modelKey)
	cfg, ok := modelConfigs[key]
	if !ok {
		if key != "" {
			r.log.Info("Unknown model requested, falling back to default",
				"requested", key, "default", r.defaultKey)
		}
		key = r.defaultKey
		cfg = modelConfigs[key]
	}

	if strings.TrimSpace(os.Getenv(cfg.CredentialEnv)) == "" {
		return "", "", apperrors.Configuration(cfg.CredentialEnv)
	}

	p, ok := r.providers[cfg.Provider]
	if !ok {
		return "", "", apperrors.Newf(apperrors.CodeInternal, "no provider registered for %q", cfg.Provider)
	}

	answer, err := p.Complete(ctx, cfg.ModelID, prompt)
	if err != nil {
		return "", "", err
	}
	return answer, key, nil
}
