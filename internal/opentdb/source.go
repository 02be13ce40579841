package opentdb

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hijaydeep/Trivia-Game/internal/trivia"
)

// RetryConfig bounds retries of a single question fetch.
type RetryConfig struct {
	MaxAttempts   int
	InitialWait   time.Duration
	MaxWait       time.Duration
	Multiplier    float64
	RateLimitWait time.Duration
}

// DefaultRetryConfig matches the API's one-request-per-5s rate limit.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   4,
		InitialWait:   1 * time.Second,
		MaxWait:       8 * time.Second,
		Multiplier:    2.0,
		RateLimitWait: 5 * time.Second,
	}
}

// SourceConfig selects which questions a Source asks for.
type SourceConfig struct {
	Category     int
	Difficulty   string
	Type         string
	SessionToken bool
	Retry        RetryConfig
}

// Source serves one question per request and implements trivia.Source.
type Source struct {
	client *Client
	config SourceConfig
	logger *zap.Logger

	mu    sync.Mutex
	token string

	// sleep waits between attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

var _ trivia.Source = (*Source)(nil)

// NewSource creates a Source. A nil logger is replaced with a no-op logger.
func NewSource(client *Client, cfg SourceConfig, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Retry.MaxAttempts < 1 {
		cfg.Retry.MaxAttempts = 1
	}
	return &Source{
		client: client,
		config: cfg,
		logger: logger,
		sleep:  sleepCtx,
	}
}

// Next fetches a single question, retrying transient failures.
func (s *Source) Next(ctx context.Context) (*trivia.Question, error) {
	var lastErr error

	for attempt := range s.config.Retry.MaxAttempts {
		q, err := s.fetch(ctx)
		if err == nil {
			if attempt > 0 {
				s.logger.Info("question fetched after retry", zap.Int("attempt", attempt+1))
			}
			return q, nil
		}
		lastErr = err

		if !s.recover(ctx, err) {
			s.logger.Warn("question fetch failed", zap.Error(err), zap.Int("attempt", attempt+1))
			return nil, err
		}

		if attempt == s.config.Retry.MaxAttempts-1 {
			break
		}

		wait := s.backoff(attempt, err)
		s.logger.Info("retrying question fetch",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
		)
		if err := s.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	s.logger.Warn("question fetch gave up", zap.Error(lastErr), zap.Int("attempts", s.config.Retry.MaxAttempts))
	return nil, lastErr
}

func (s *Source) fetch(ctx context.Context) (*trivia.Question, error) {
	token, err := s.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.client.Questions(ctx, Params{
		Amount:     1,
		Category:   s.config.Category,
		Difficulty: s.config.Difficulty,
		Type:       s.config.Type,
		Token:      token,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("question received",
		zap.String("category", results[0].Category),
		zap.String("difficulty", results[0].Difficulty),
	)
	return ToQuestion(results[0], nil), nil
}

// recover repairs token state where possible and reports whether err is
// worth another attempt.
func (s *Source) recover(ctx context.Context, err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	switch {
	case errors.Is(err, ErrTokenNotFound):
		s.setToken("")
		return true

	case errors.Is(err, ErrTokenEmpty):
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()
		if token == "" {
			return false
		}
		fresh, rerr := s.client.ResetToken(ctx, token)
		if rerr != nil {
			s.logger.Warn("reset session token", zap.Error(rerr))
			s.setToken("")
			return true
		}
		s.setToken(fresh)
		return true

	case errors.Is(err, ErrNoResults), errors.Is(err, ErrInvalidParameter):
		return false

	case errors.Is(err, ErrRateLimit):
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}

	// Network errors and the like are treated as transient.
	return true
}

func (s *Source) ensureToken(ctx context.Context) (string, error) {
	if !s.config.SessionToken {
		return "", nil
	}

	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token != "" {
		return token, nil
	}

	token, err := s.client.RequestToken(ctx)
	if err != nil {
		// Play on without a token rather than failing the question.
		s.logger.Warn("request session token", zap.Error(err))
		return "", nil
	}
	s.setToken(token)
	return token, nil
}

func (s *Source) setToken(t string) {
	s.mu.Lock()
	s.token = t
	s.mu.Unlock()
}

// backoff computes the wait before the next attempt.
func (s *Source) backoff(attempt int, err error) time.Duration {
	cfg := s.config.Retry
	if errors.Is(err, ErrRateLimit) && cfg.RateLimitWait > 0 {
		return cfg.RateLimitWait
	}
	if errors.Is(err, ErrTokenNotFound) || errors.Is(err, ErrTokenEmpty) {
		return 0
	}

	wait := float64(cfg.InitialWait) * math.Pow(cfg.Multiplier, float64(attempt))
	if cfg.MaxWait > 0 && wait > float64(cfg.MaxWait) {
		wait = float64(cfg.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}

// ToQuestion decodes an API result into a shuffled trivia.Question.
func ToQuestion(r Result, rng *rand.Rand) *trivia.Question {
	q := trivia.NewQuestion(
		trivia.Decode(r.Question),
		trivia.Decode(r.CorrectAnswer),
		trivia.DecodeAll(r.IncorrectAnswers),
		rng,
	)
	q.Category = trivia.Decode(r.Category)
	q.Difficulty = r.Difficulty
	if r.Type != "" {
		q.Type = trivia.QuestionType(r.Type)
	}
	return q
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
