package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultQuestions = 10
	MaxQuestions     = 50

	SourceOpenTDB = "opentdb"
	SourceLLM     = "llm"
)

// Config holds application configuration loaded from file, env and flags.
type Config struct {
	Questions int     `mapstructure:"questions"` // rounds per game
	Source    string  `mapstructure:"source"`    // opentdb or llm
	DB        string  `mapstructure:"db"`        // sqlite path; empty means default
	Splash    bool    `mapstructure:"splash"`    // show the welcome animation
	OpenTDB   OpenTDB `mapstructure:"opentdb"`
	Retry     Retry   `mapstructure:"retry"`
	Log       Log     `mapstructure:"log"`
}

// OpenTDB configures the remote question API.
type OpenTDB struct {
	BaseURL      string        `mapstructure:"base_url"`
	Category     int           `mapstructure:"category"`   // 0 = any
	Difficulty   string        `mapstructure:"difficulty"` // "", easy, medium, hard
	Type         string        `mapstructure:"type"`       // "", multiple, boolean
	SessionToken bool          `mapstructure:"session_token"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// Retry bounds how hard a question fetch is retried.
type Retry struct {
	MaxAttempts   int           `mapstructure:"max_attempts"`
	InitialWait   time.Duration `mapstructure:"initial_wait"`
	MaxWait       time.Duration `mapstructure:"max_wait"`
	Multiplier    float64       `mapstructure:"multiplier"`
	RateLimitWait time.Duration `mapstructure:"rate_limit_wait"`
}

// Log configures the file logger.
type Log struct {
	File    string `mapstructure:"file"`
	Level   string `mapstructure:"level"`
	Disable bool   `mapstructure:"disable"`
}

// New returns a viper instance with defaults, env binding and the optional
// config file wired up. Flags are bound by the caller before Load.
func New(configFile string) *viper.Viper {
	v := viper.New()

	v.SetDefault("questions", DefaultQuestions)
	v.SetDefault("source", SourceOpenTDB)
	v.SetDefault("db", "")
	v.SetDefault("splash", true)
	v.SetDefault("opentdb.base_url", "https://opentdb.com")
	v.SetDefault("opentdb.category", 0)
	v.SetDefault("opentdb.difficulty", "")
	v.SetDefault("opentdb.type", "")
	v.SetDefault("opentdb.session_token", true)
	v.SetDefault("opentdb.timeout", "10s")
	v.SetDefault("retry.max_attempts", 4)
	v.SetDefault("retry.initial_wait", "1s")
	v.SetDefault("retry.max_wait", "8s")
	v.SetDefault("retry.multiplier", 2.0)
	v.SetDefault("retry.rate_limit_wait", "5s")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.disable", false)

	v.SetEnvPrefix("TRIVIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	return v
}

// Load reads the .env file (if any), the config file (if any) and unmarshals
// the result. Missing files are not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Questions < 1 || c.Questions > MaxQuestions {
		return fmt.Errorf("questions must be between 1 and %d, got %d", MaxQuestions, c.Questions)
	}

	switch c.Source {
	case SourceOpenTDB, SourceLLM:
	default:
		return fmt.Errorf("unknown question source: %q", c.Source)
	}

	switch c.OpenTDB.Difficulty {
	case "", "easy", "medium", "hard":
	default:
		return fmt.Errorf("unknown difficulty: %q", c.OpenTDB.Difficulty)
	}

	switch c.OpenTDB.Type {
	case "", "multiple", "boolean":
	default:
		return fmt.Errorf("unknown question type: %q", c.OpenTDB.Type)
	}

	if c.OpenTDB.Category < 0 {
		return fmt.Errorf("category must be a positive ID, got %d", c.OpenTDB.Category)
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

// configDir returns $XDG_CONFIG_HOME/trivia (or ~/.config/trivia).
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "trivia"), nil
}
