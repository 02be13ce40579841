package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hijaydeep/Trivia-Game/internal/store"
)

// ErrNotConfigured is returned when no provider or API key is configured.
var ErrNotConfigured = errors.New("no LLM provider configured: set TRIVIA_LLM_PROVIDER or a provider API key")

// NewProvider creates a Provider from configuration, wrapped as
// caller → retry → logging → base. A nil eventRepo skips event logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini, nil)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewScripted(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if eventRepo != nil {
		p = WithLogging(p, eventRepo, logger)
	}
	p = WithRetry(p, cfg.Retry, logger)

	logger.Info("llm provider ready", zap.String("provider", cfg.Provider), zap.String("model", base.ModelID()))
	return p, nil
}

// NewProviderFromEnv resolves configuration from TRIVIA_* variables, or
// from a vendor API key when TRIVIA_LLM_PROVIDER is unset.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	cfg, ok := ResolveConfig(nil)
	if !ok {
		return nil, ErrNotConfigured
	}
	return NewProvider(ctx, cfg, eventRepo, logger)
}

// ResolveConfig prefers an explicit TRIVIA_LLM_PROVIDER and falls back to
// key discovery. A nil getenv uses os.Getenv.
func ResolveConfig(getenv func(string) string) (Config, bool) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if getenv(envKey("LLM", "PROVIDER")) != "" {
		return ConfigFromEnv(getenv), true
	}
	return DiscoverConfig(getenv)
}
