package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string // Default: "claude-sonnet"
	BaseURL string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "openai/gpt-4o"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// credentialEnv lists, per provider, the environment variables checked for
// the API key in priority order.
var credentialEnv = map[string][]string{
	ProviderOpenAI:     {"COMPASS_OPENAI_API_KEY", "OPENAI_API_KEY"},
	ProviderAnthropic:  {"COMPASS_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
	ProviderGemini:     {"COMPASS_GEMINI_API_KEY", "GEMINI_API_KEY"},
	ProviderOpenRouter: {"COMPASS_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
}

// discoveryOrder is the order providers are probed when none is selected.
var discoveryOrder = []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOpenRouter}

// DefaultConfig returns a Config with the defaults used for evaluation.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderOpenAI,
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "openai/gpt-4o",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. When COMPASS_LLM_PROVIDER is unset the
// first provider with a credential in the environment is selected.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.OpenAI.APIKey = lookupEnv(credentialEnv[ProviderOpenAI]...)
	cfg.Anthropic.APIKey = lookupEnv(credentialEnv[ProviderAnthropic]...)
	cfg.Gemini.APIKey = lookupEnv(credentialEnv[ProviderGemini]...)
	cfg.OpenRouter.APIKey = lookupEnv(credentialEnv[ProviderOpenRouter]...)

	if u := os.Getenv("COMPASS_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if p := strings.TrimSpace(os.Getenv("COMPASS_LLM_PROVIDER")); p != "" {
		cfg.Provider = strings.ToLower(p)
	} else if p, ok := discoverProvider(cfg); ok {
		cfg.Provider = p
	}

	return cfg
}

// discoverProvider returns the first provider in discoveryOrder whose key
// is set.
func discoverProvider(cfg Config) (string, bool) {
	for _, p := range discoveryOrder {
		if cfg.apiKey(p) != "" {
			return p, true
		}
	}
	return "", false
}

// SetModel overrides the model of the selected provider. Empty is a no-op.
func (c *Config) SetModel(model string) {
	model = strings.TrimSpace(model)
	if model == "" {
		return
	}
	switch c.Provider {
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderAnthropic:
		c.Anthropic.Model = model
	case ProviderGemini:
		c.Gemini.Model = model
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	}
}

// Model returns the configured model of the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	case ProviderMock:
		return "mock"
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
// A missing key is reported as *ErrMissingCredential.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini, ProviderOpenRouter:
		if c.apiKey(c.Provider) == "" {
			return &ErrMissingCredential{
				Provider: c.Provider,
				EnvVar:   credentialEnv[c.Provider][len(credentialEnv[c.Provider])-1],
			}
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func (c Config) apiKey(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	}
	return ""
}

func lookupEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
