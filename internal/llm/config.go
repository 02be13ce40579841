package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which backend generates questions.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // OpenAI-compatible endpoints
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// Timeout bounds all attempts together. Zero means no limit.
	Timeout time.Duration
}

// DefaultConfig returns a Config with small, cheap models selected.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
			Timeout:     45 * time.Second,
		},
	}
}

// envKey builds a TRIVIA_ prefixed variable name.
func envKey(parts ...string) string {
	k := "TRIVIA"
	for _, p := range parts {
		k += "_" + p
	}
	return k
}

// ConfigFromEnv builds a Config from TRIVIA_* variables read through
// getenv, falling back to defaults for unset values. A nil getenv uses
// os.Getenv.
func ConfigFromEnv(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := DefaultConfig()

	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, envKey("LLM", "PROVIDER"))

	set(&cfg.Anthropic.APIKey, envKey("ANTHROPIC", "API", "KEY"))
	set(&cfg.Anthropic.Model, envKey("ANTHROPIC", "MODEL"))

	set(&cfg.OpenAI.APIKey, envKey("OPENAI", "API", "KEY"))
	set(&cfg.OpenAI.Model, envKey("OPENAI", "MODEL"))
	set(&cfg.OpenAI.BaseURL, envKey("OPENAI", "BASE", "URL"))

	set(&cfg.Gemini.APIKey, envKey("GEMINI", "API", "KEY"))
	set(&cfg.Gemini.Model, envKey("GEMINI", "MODEL"))

	set(&cfg.OpenRouter.APIKey, envKey("OPENROUTER", "API", "KEY"))
	set(&cfg.OpenRouter.Model, envKey("OPENROUTER", "MODEL"))
	set(&cfg.OpenRouter.BaseURL, envKey("OPENROUTER", "BASE", "URL"))

	return cfg
}

// DiscoverConfig probes the vendors' standard API key variables in order
// Gemini, OpenAI, Anthropic, OpenRouter and returns a Config for the first
// one found.
func DiscoverConfig(getenv func(string) string) (Config, bool) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := DefaultConfig()

	switch {
	case getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = getenv("GEMINI_API_KEY")
	case getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = getenv("OPENAI_API_KEY")
	case getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = getenv("ANTHROPIC_API_KEY")
	case getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envKey(strings.ToUpper(c.Provider), "API", "KEY"), c.Provider)
	}
	return nil
}
