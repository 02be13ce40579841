package store

import (
	"context"
	"time"
)

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // id > After (events only)
	Before int64     // id < Before (events only)
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Source string    // games only; empty matches all
}

// GameRecord is a finished game.
type GameRecord struct {
	ID         string
	Source     string
	Category   string
	Difficulty string
	StartedAt  time.Time
	FinishedAt time.Time
	Score      int
	Total      int

	// Answers is populated on save; ListGames leaves it empty.
	Answers []AnswerRecord
}

// AnswerRecord is one answered question of a game.
type AnswerRecord struct {
	Position      int
	Question      string
	Category      string
	Difficulty    string
	CorrectAnswer string
	Selected      string
	Correct       bool
}

// GameStats aggregates every stored game.
type GameStats struct {
	Games     int
	Questions int
	Correct   int
	Accuracy  float64

	// BestScore and BestTotal describe the highest scoring game.
	BestScore int
	BestTotal int
}

// GameRepo stores finished games and their answers.
type GameRepo interface {
	// SaveGame stores a game with its answers in one transaction.
	SaveGame(ctx context.Context, g *GameRecord) error

	// ListGames returns games, most recently finished first.
	ListGames(ctx context.Context, opts QueryOpts) ([]GameRecord, error)

	// GameAnswers returns the answers of a game in question order.
	GameAnswers(ctx context.Context, gameID string) ([]AnswerRecord, error)

	// Stats aggregates all games.
	Stats(ctx context.Context) (*GameStats, error)

	// Reset deletes every game and returns how many were removed.
	Reset(ctx context.Context) (int, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates token usage for one purpose.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
