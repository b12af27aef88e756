package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/compass/internal/llm"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"COMPASS_LLM_PROVIDER", "COMPASS_LLM_MODEL", "COMPASS_LLM_TIMEOUT", "COMPASS_LLM_MAX_ATTEMPTS",
		"COMPASS_OPENAI_API_KEY", "OPENAI_API_KEY", "COMPASS_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY",
		"COMPASS_GEMINI_API_KEY", "GEMINI_API_KEY", "COMPASS_OPENROUTER_API_KEY", "OPENROUTER_API_KEY",
		"COMPASS_OPENAI_BASE_URL", "COMPASS_SERVER_ADDR", "COMPASS_DB",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.LLM.Provider)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.MaxAttempts)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Log.JSON)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("COMPASS_LLM_PROVIDER", "Anthropic")
	t.Setenv("COMPASS_LLM_MAX_ATTEMPTS", "5")
	t.Setenv("COMPASS_SERVER_ADDR", "127.0.0.1:9000")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 5, cfg.LLM.MaxAttempts)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `llm:
  provider: gemini
  model: gemini-pro
  timeout: 30s
server:
  allowed-origins:
    - https://example.com
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "compass.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-pro", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	clearEnv(t)
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "compass.yaml"), []byte("llm:\n  provider: gemini\n"), 0o644))
	t.Setenv("COMPASS_LLM_PROVIDER", "openai")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			LLM:    LLMConfig{Timeout: time.Second, MaxAttempts: 1},
			Server: ServerConfig{Addr: ":8080"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"mock provider", func(c *Config) { c.LLM.Provider = llm.ProviderMock }, false},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "cohere" }, true},
		{"negative timeout", func(c *Config) { c.LLM.Timeout = -time.Second }, true},
		{"zero attempts", func(c *Config) { c.LLM.MaxAttempts = 0 }, true},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLLMConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")

	cfg := Config{LLM: LLMConfig{Model: "claude-haiku", Timeout: 15 * time.Second, MaxAttempts: 2}}
	got := cfg.LLMConfig()

	assert.Equal(t, llm.ProviderAnthropic, got.Provider)
	assert.Equal(t, "claude-haiku", got.Model())
	assert.Equal(t, 15*time.Second, got.Timeout)
	assert.Equal(t, 2, got.Retry.MaxAttempts)
	assert.NoError(t, got.Validate())
}

func TestLLMConfigMissingCredential(t *testing.T) {
	clearEnv(t)

	cfg := Config{LLM: LLMConfig{Provider: llm.ProviderOpenAI, MaxAttempts: 1}}
	got := cfg.LLMConfig()

	var missing *llm.ErrMissingCredential
	assert.ErrorAs(t, got.Validate(), &missing)
}

func TestLLMConfigBaseURL(t *testing.T) {
	clearEnv(t)

	cfg := Config{LLM: LLMConfig{Provider: llm.ProviderOpenRouter, BaseURL: "http://localhost:9999/v1", MaxAttempts: 1}}
	got := cfg.LLMConfig()
	assert.Equal(t, "http://localhost:9999/v1", got.OpenRouter.BaseURL)
}

func TestDBPathExplicit(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "c.db")
	cfg := Config{DB: p}
	got, err := cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}
