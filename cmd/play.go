package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hijaydeep/Trivia-Game/internal/app"
	"github.com/hijaydeep/Trivia-Game/internal/config"
	"github.com/hijaydeep/Trivia-Game/internal/llm"
	"github.com/hijaydeep/Trivia-Game/internal/opentdb"
	"github.com/hijaydeep/Trivia-Game/internal/questiongen"
	"github.com/hijaydeep/Trivia-Game/internal/screen"
	"github.com/hijaydeep/Trivia-Game/internal/screens/home"
	"github.com/hijaydeep/Trivia-Game/internal/screens/quiz"
	"github.com/hijaydeep/Trivia-Game/internal/screens/welcome"
	"github.com/hijaydeep/Trivia-Game/internal/selfupdate"
	"github.com/hijaydeep/Trivia-Game/internal/store"
	"github.com/hijaydeep/Trivia-Game/internal/trivia"
)

// categoryLookupTimeout bounds the category name lookup at startup.
const categoryLookupTimeout = 5 * time.Second

// runPlay opens the store, builds the question source and launches the TUI.
func runPlay(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	qs, err := newQuestionSource(ctx, e.cfg, e.store.EventRepo(), e.logger)
	if err != nil {
		return err
	}

	games := e.store.GameRepo()
	newQuiz := func() screen.Screen {
		return quiz.New(quiz.Config{
			Source:     qs.source,
			Games:      games,
			Total:      e.cfg.Questions,
			SourceName: e.cfg.Source,
			Category:   qs.category,
			Difficulty: e.cfg.OpenTDB.Difficulty,
			Logger:     e.logger,
		})
	}
	newHome := func() screen.Screen {
		return home.New(home.Options{
			NewQuiz:     newQuiz,
			Games:       games,
			SourceLabel: qs.label,
			Checker:     selfupdate.NewChecker(),
			Version:     version,
		})
	}

	root := newHome()
	if e.cfg.Splash {
		root = welcome.New(newHome)
	}

	e.logger.Info("starting game",
		zap.String("source", e.cfg.Source),
		zap.Int("questions", e.cfg.Questions),
		zap.String("category", qs.category),
		zap.String("difficulty", e.cfg.OpenTDB.Difficulty),
	)
	return app.Run(root)
}

// questionSource is a configured trivia.Source with its display names.
type questionSource struct {
	source   trivia.Source
	label    string // shown on the home screen
	category string // recorded with saved games
}

// newQuestionSource builds the source selected by cfg.Source. eventRepo
// may be nil, in which case LLM requests are not recorded.
func newQuestionSource(ctx context.Context, cfg *config.Config, eventRepo store.EventRepo, logger *zap.Logger) (*questionSource, error) {
	client := newAPIClient(cfg)
	category := categoryName(ctx, client, cfg.OpenTDB.Category, logger)

	switch cfg.Source {
	case config.SourceLLM:
		provider, err := llm.NewProviderFromEnv(ctx, eventRepo, logger)
		if err != nil {
			return nil, fmt.Errorf("LLM provider: %w", err)
		}
		gcfg := questiongen.DefaultConfig()
		gcfg.Category = category
		gcfg.Difficulty = cfg.OpenTDB.Difficulty
		gcfg.Type = cfg.OpenTDB.Type
		return &questionSource{
			source:   questiongen.New(provider, gcfg, logger),
			label:    "LLM (" + provider.ModelID() + ")",
			category: category,
		}, nil

	default:
		src := opentdb.NewSource(client, opentdb.SourceConfig{
			Category:     cfg.OpenTDB.Category,
			Difficulty:   cfg.OpenTDB.Difficulty,
			Type:         cfg.OpenTDB.Type,
			SessionToken: cfg.OpenTDB.SessionToken,
			Retry: opentdb.RetryConfig{
				MaxAttempts:   cfg.Retry.MaxAttempts,
				InitialWait:   cfg.Retry.InitialWait,
				MaxWait:       cfg.Retry.MaxWait,
				Multiplier:    cfg.Retry.Multiplier,
				RateLimitWait: cfg.Retry.RateLimitWait,
			},
		}, logger)
		return &questionSource{source: src, label: "Open Trivia DB", category: category}, nil
	}
}

func newAPIClient(cfg *config.Config) *opentdb.Client {
	return opentdb.NewClient(
		opentdb.WithBaseURL(cfg.OpenTDB.BaseURL),
		opentdb.WithTimeout(cfg.OpenTDB.Timeout),
	)
}

// categoryName resolves a category ID to its name. The ID itself is used
// when the lookup fails; 0 means any category and yields "".
func categoryName(ctx context.Context, client *opentdb.Client, id int, logger *zap.Logger) string {
	if id == 0 {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, categoryLookupTimeout)
	defer cancel()

	cats, err := client.Categories(ctx)
	if err != nil {
		logger.Warn("category lookup failed", zap.Int("category", id), zap.Error(err))
		return strconv.Itoa(id)
	}
	for _, c := range cats {
		if c.ID == id {
			return c.Name
		}
	}
	fmt.Fprintf(os.Stderr, "warning: unknown category %d, see `trivia categories`\n", id)
	return strconv.Itoa(id)
}
