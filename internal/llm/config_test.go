package llm

import (
	"errors"
	"testing"
)

func clearCredentials(t *testing.T) {
	t.Helper()
	for _, keys := range credentialEnv {
		for _, k := range keys {
			t.Setenv(k, "")
		}
	}
	t.Setenv("COMPASS_LLM_PROVIDER", "")
	t.Setenv("COMPASS_OPENAI_BASE_URL", "")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateNamesEnvVar(t *testing.T) {
	err := Config{Provider: ProviderAnthropic}.Validate()

	var missing *ErrMissingCredential
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingCredential, got %T", err)
	}
	if missing.EnvVar != "ANTHROPIC_API_KEY" {
		t.Fatalf("expected ANTHROPIC_API_KEY, got %q", missing.EnvVar)
	}
}

func TestConfigFromEnv_Discovery(t *testing.T) {
	clearCredentials(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderGemini {
		t.Fatalf("expected gemini, got %q", cfg.Provider)
	}
	if cfg.Gemini.APIKey != "g-key" {
		t.Fatalf("expected gemini key, got %q", cfg.Gemini.APIKey)
	}
}

func TestConfigFromEnv_PrefixedKeyWins(t *testing.T) {
	clearCredentials(t)
	t.Setenv("OPENAI_API_KEY", "plain")
	t.Setenv("COMPASS_OPENAI_API_KEY", "prefixed")

	cfg := ConfigFromEnv()
	if cfg.OpenAI.APIKey != "prefixed" {
		t.Fatalf("expected prefixed key, got %q", cfg.OpenAI.APIKey)
	}
}

func TestConfigFromEnv_ExplicitProvider(t *testing.T) {
	clearCredentials(t)
	t.Setenv("OPENAI_API_KEY", "sk")
	t.Setenv("COMPASS_LLM_PROVIDER", " Anthropic ")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderAnthropic {
		t.Fatalf("expected anthropic, got %q", cfg.Provider)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing anthropic credential")
	}
}

func TestConfig_SetModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderAnthropic
	cfg.SetModel("claude-haiku")
	cfg.SetModel("  ")

	if cfg.Model() != "claude-haiku" {
		t.Fatalf("expected claude-haiku, got %q", cfg.Model())
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("openai model should be untouched, got %q", cfg.OpenAI.Model)
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("gpt-4o"); c == nil || c.InputPerMTok != 2.5 {
		t.Fatalf("unexpected cost for gpt-4o: %v", c)
	}
	if c := LookupCost("openai/gpt-4o-mini"); c == nil || c.OutputPerMTok != 0.6 {
		t.Fatalf("expected prefixed lookup to resolve, got %v", c)
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}

	cost := ModelCost{InputPerMTok: 2, OutputPerMTok: 8}.Cost(500_000, 250_000)
	if cost != 3 {
		t.Fatalf("expected 3, got %v", cost)
	}
}
