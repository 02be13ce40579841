package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hijaydeep/Trivia-Game/internal/llm"
	"github.com/hijaydeep/Trivia-Game/internal/trivia"
)

// Purpose labels question requests in the llm_requests log.
const Purpose = "question-gen"

// Output is the raw model response before validation.
type Output struct {
	Question         string   `json:"question"`
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Type             string   `json:"type"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Generator asks an LLM for questions and implements trivia.Source.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
	rng      *rand.Rand

	mu    sync.Mutex
	prior []string
}

var _ trivia.Source = (*Generator)(nil)

// New creates a Generator. A nil logger discards logs.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Generator{provider: provider, config: cfg, logger: logger}
}

// Next generates one validated, shuffled question.
func (g *Generator) Next(ctx context.Context) (*trivia.Question, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	var lastErr error
	for attempt := range g.config.MaxAttempts {
		out, err := g.generate(ctx)
		if err == nil {
			g.remember(out.Question)
			return g.toQuestion(out), nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			return nil, err
		}
		g.logger.Info("regenerating question", zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return nil, lastErr
}

func (g *Generator) generate(ctx context.Context) (*Output, error) {
	req := llm.Request{
		System:      systemPrompt,
		Prompt:      buildUserMessage(g.config, g.priorQuestions()),
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out Output
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	out.Question = strings.TrimSpace(out.Question)
	out.CorrectAnswer = strings.TrimSpace(out.CorrectAnswer)
	for i, a := range out.IncorrectAnswers {
		out.IncorrectAnswers[i] = strings.TrimSpace(a)
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&out, g.config); verr != nil {
			return nil, verr
		}
	}
	if g.isRepeat(out.Question) {
		return nil, &ValidationError{Validator: "dedup", Message: "question already asked", Retryable: true}
	}
	return &out, nil
}

func (g *Generator) toQuestion(out *Output) *trivia.Question {
	q := trivia.NewQuestion(out.Question, out.CorrectAnswer, out.IncorrectAnswers, g.rng)
	q.Category = out.Category
	q.Difficulty = out.Difficulty
	q.Type = trivia.QuestionType(out.Type)
	return q
}

func (g *Generator) remember(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prior = append(g.prior, text)
}

func (g *Generator) priorQuestions() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.prior))
	copy(out, g.prior)
	return out
}

func (g *Generator) isRepeat(text string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.prior {
		if strings.EqualFold(p, text) {
			return true
		}
	}
	return false
}
