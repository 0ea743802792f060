package llm

// ModelConfig maps a public model key to the provider that serves it.
type ModelConfig struct {
	Provider      string
	ModelID       string
	CredentialEnv string
}

const DefaultModelKey = "gemini-2.5-flash"

var modelConfigs = map[string]ModelConfig{
	"deepseek-r1": {
		Provider:      "openrouter",
		ModelID:       "deepseek/deepseek-r1-0528-qwen3-8b",
		CredentialEnv: "OPENROUTER_API_KEY",
	},
	"deepseek-v3": {
		Provider:      "openrouter",
		ModelID:       "deepseek/deepseek-v3.1",
		CredentialEnv: "OPENROUTER_API_KEY",
	},
	"glm-4.5": {
		Provider:      "openrouter",
		ModelID:       "zai/glm-4.5-air",
		CredentialEnv: "OPENROUTER_API_KEY",
	},
	"grok-beta": {
		Provider:      "xai",
		ModelID:       "grok-beta",
		CredentialEnv: "XAI_API_KEY",
	},
	"grok-2": {
		Provider:      "xai",
		ModelID:       "grok-2-latest",
		CredentialEnv: "XAI_API_KEY",
	},
	"gemini-2.5-flash": {
		Provider:      "google",
		ModelID:       "gemini-2.5-flash",
		CredentialEnv: "GOOGLE_AI_API_KEY",
	},
	"gemini-2.5-pro": {
		Provider:      "google",
		ModelID:       "gemini-2.5-pro",
		CredentialEnv: "GOOGLE_AI_API_KEY",
	},
}

// KnownModel reports whether key is a routable model key.
func KnownModel(key string) bool {
	_, ok := modelConfigs[key]
	return ok
}

// ModelKeys lists the routable model keys, unordered.
func ModelKeys() []string {
	keys := make([]string, 0, len(modelConfigs))
	for k := range modelConfigs {
		keys = append(keys, k)
	}
	return keys
}
