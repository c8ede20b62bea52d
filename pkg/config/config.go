package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DefaultPersona conditions the model toward the accessibility-advisor
// role. Injected into the advisor at construction; never mutated at
// runtime.
const DefaultPersona = `You are an accessibility expert. Provide concise, actionable answers about digital accessibility.

Focus on:
1. Direct answer
2. Relevant WCAG guidelines
3. Practical steps

Keep responses under 300 words.`

// Config holds all runtime configuration, loaded from the process
// environment at startup.
type Config struct {
	Provider string `env:"A11YBOT_PROVIDER" envDefault:"gemini"`
	Model    string `env:"A11YBOT_MODEL"`

	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`

	// Persona can override the built-in accessibility-advisor prompt.
	Persona string `env:"A11YBOT_PERSONA"`

	// Minimum seconds between remote calls. Matches the upstream
	// service's free-tier pacing.
	RateLimitSeconds int `env:"A11YBOT_RATE_LIMIT_SECONDS" envDefault:"2"`

	// Response cache capacity. Zero disables caching.
	CacheSize int `env:"A11YBOT_CACHE_SIZE" envDefault:"100"`

	// Workspace for usage metrics and the semantic index.
	Workspace string `env:"A11YBOT_WORKSPACE" envDefault:".a11ybot"`

	// SemanticSearch enables the chromem-backed knowledge index.
	// Requires an OpenAI API key for embeddings.
	SemanticSearch bool `env:"A11YBOT_SEMANTIC_SEARCH" envDefault:"false"`

	// StatusAddr, if non-empty, serves /healthz and /metrics.
	StatusAddr string `env:"A11YBOT_STATUS_ADDR"`

	LogLevel string `env:"A11YBOT_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Persona == "" {
		cfg.Persona = DefaultPersona
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	return cfg, nil
}

// DefaultModel returns the default model identifier for a provider.
func DefaultModel(provider string) string {
	switch provider {
	case "anthropic":
		return "claude-sonnet-4-5-20250929"
	case "openai":
		return "gpt-4o-mini"
	default:
		return "gemini-2.0-flash"
	}
}

// Credential returns the API key for the active provider.
func (c *Config) Credential() string {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicAPIKey
	case "openai":
		return c.OpenAIAPIKey
	default:
		return c.GeminiAPIKey
	}
}

// Validate checks that the configuration is usable. A missing
// credential for the active provider is fatal: no request may be
// attempted without one.
func (c *Config) Validate() error {
	switch c.Provider {
	case "gemini", "anthropic", "openai":
	default:
		return fmt.Errorf("unknown provider %q (want gemini, anthropic or openai)", c.Provider)
	}
	if c.Credential() == "" {
		return fmt.Errorf("no API key configured for provider %q", c.Provider)
	}
	if c.SemanticSearch && c.OpenAIAPIKey == "" {
		return fmt.Errorf("semantic search requires OPENAI_API_KEY for embeddings")
	}
	return nil
}
