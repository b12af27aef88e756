// Package config resolves compass settings from flags, environment, an
// optional compass.yaml and defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/compass/internal/llm"
	"github.com/abhisek/compass/internal/store"
)

const (
	// EnvPrefix prefixes every environment variable read through viper.
	EnvPrefix = "COMPASS"

	configName = "compass"
)

// Config holds all application configuration.
type Config struct {
	LLM    LLMConfig    `mapstructure:"llm"`
	DB     string       `mapstructure:"db"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

// LLMConfig selects and tunes the evaluation provider. Credentials are read
// from the environment only.
type LLMConfig struct {
	// Provider is empty to pick the first provider with a credential set.
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base-url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxAttempts int           `mapstructure:"max-attempts"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Debug bool   `mapstructure:"debug"`
	File  string `mapstructure:"file"`
}

// ServerConfig controls `compass serve`.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	AllowedOrigins []string      `mapstructure:"allowed-origins"`
	SessionTTL     time.Duration `mapstructure:"session-ttl"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base-url", "")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.max-attempts", 3)
	v.SetDefault("db", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.file", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed-origins", []string{"*"})
	v.SetDefault("server.session-ttl", 2*time.Hour)
}

// LoadDotEnv loads .env from the working directory if present. Variables
// already set in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load resolves the configuration held by v. cfgFile names an explicit
// config file; when empty compass.yaml is looked up in the working
// directory and silently skipped when absent.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that can be checked without touching the network.
// A missing LLM credential is not an error here: interviews run without one.
func (c *Config) Validate() error {
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	if c.LLM.MaxAttempts < 1 {
		return fmt.Errorf("llm.max-attempts must be at least 1")
	}
	switch c.LLM.Provider {
	case "", llm.ProviderOpenAI, llm.ProviderAnthropic, llm.ProviderGemini, llm.ProviderOpenRouter, llm.ProviderMock:
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	return nil
}

// LLMConfig returns the provider configuration: credentials and discovery
// from the environment, overridden by the resolved settings.
func (c *Config) LLMConfig() llm.Config {
	cfg := llm.ConfigFromEnv()
	if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	cfg.SetModel(c.LLM.Model)
	if c.LLM.BaseURL != "" {
		switch cfg.Provider {
		case llm.ProviderOpenAI:
			cfg.OpenAI.BaseURL = c.LLM.BaseURL
		case llm.ProviderAnthropic:
			cfg.Anthropic.BaseURL = c.LLM.BaseURL
		case llm.ProviderOpenRouter:
			cfg.OpenRouter.BaseURL = c.LLM.BaseURL
		}
	}
	cfg.Timeout = c.LLM.Timeout
	cfg.Retry.MaxAttempts = c.LLM.MaxAttempts
	return cfg
}

// DBPath returns the database path, creating its directory.
func (c *Config) DBPath() (string, error) {
	if c.DB != "" {
		return c.DB, store.EnsureDir(c.DB)
	}
	return store.DefaultDBPath()
}

// LogFile returns the log file for the TUI, defaulting to compass.log in the
// data directory.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, store.EnsureDir(c.Log.File)
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "compass.log")
	return p, store.EnsureDir(p)
}
