package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hijaydeep/Trivia-Game/internal/config"
	"github.com/hijaydeep/Trivia-Game/internal/logging"
	"github.com/hijaydeep/Trivia-Game/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "trivia",
	Short: "Terminal trivia quiz",
	Long: `trivia asks multiple-choice questions one at a time, reveals the answer
after each pick and keeps score. Questions come from the Open Trivia DB
or, with --source llm, from a configured LLM provider.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides TRIVIA_DB)")
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/trivia/config.yaml)")

	f := rootCmd.Flags()
	f.IntP("questions", "n", config.DefaultQuestions, "Questions per game")
	f.IntP("category", "c", 0, "Category ID, see `trivia categories` (0 = any)")
	f.StringP("difficulty", "d", "", "easy, medium or hard (empty = any)")
	f.StringP("type", "t", "", "multiple or boolean (empty = any)")
	f.String("source", config.SourceOpenTDB, "Question source: opentdb or llm")
	f.Bool("splash", true, "Show the welcome animation")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"db":         "db",
	"questions":  "questions",
	"category":   "opentdb.category",
	"difficulty": "opentdb.difficulty",
	"type":       "opentdb.type",
	"source":     "source",
	"splash":     "splash",
}

// bindFlags binds every known flag defined on fs. Unset flags fall back to
// env, file and defaults.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// loadConfig builds the config for cmd from flags, env and the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	v := config.New(file)
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	return config.Load(v)
}

// env is what most commands open before doing any work.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// setup loads config, starts the logger and opens the database.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := store.ResolvePath(cfg.DB)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(cmd.Context(), dbPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("path", dbPath))

	return &env{cfg: cfg, logger: logger, store: st}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store", zap.Error(err))
	}
	_ = e.logger.Sync()
}
