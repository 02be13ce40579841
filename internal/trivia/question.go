package trivia

import (
	"context"
	"errors"
	"html"
	"math/rand/v2"
	"strings"
)

// QuestionType is the answer layout of a question.
type QuestionType string

const (
	TypeMultiple QuestionType = "multiple" // four options
	TypeBoolean  QuestionType = "boolean"  // True / False
)

// Difficulty levels accepted by question sources.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ErrNoQuestions is returned by a source that has nothing left to serve.
var ErrNoQuestions = errors.New("no questions available")

// Question is a single multiple-choice question ready for display.
type Question struct {
	// ID is a source-specific identifier (empty for API questions).
	ID string

	Category   string
	Difficulty string
	Type       QuestionType

	// Text is the decoded question prompt.
	Text string

	// Correct is the text of the correct option.
	Correct string

	// Options holds every choice in display order. Correct appears exactly once.
	Options []string
}

// Source produces questions one at a time.
type Source interface {
	Next(ctx context.Context) (*Question, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) (*Question, error)

func (f SourceFunc) Next(ctx context.Context) (*Question, error) { return f(ctx) }

// NewQuestion builds a question from its correct and incorrect answers and
// shuffles the options. A nil rng uses the global generator.
func NewQuestion(text, correct string, incorrect []string, rng *rand.Rand) *Question {
	options := make([]string, 0, len(incorrect)+1)
	options = append(options, incorrect...)
	options = append(options, correct)
	Shuffle(options, rng)

	qt := TypeMultiple
	if len(incorrect) == 1 {
		qt = TypeBoolean
	}

	return &Question{
		Type:    qt,
		Text:    text,
		Correct: correct,
		Options: options,
	}
}

// Shuffle permutes options in place (Fisher-Yates).
func Shuffle(options []string, rng *rand.Rand) {
	swap := func(i, j int) { options[i], options[j] = options[j], options[i] }
	if rng == nil {
		rand.Shuffle(len(options), swap)
		return
	}
	rng.Shuffle(len(options), swap)
}

// Decode unescapes the HTML entities the trivia API embeds in its text.
func Decode(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}

// DecodeAll applies Decode to every element.
func DecodeAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = Decode(s)
	}
	return out
}

// IsCorrect reports whether option is the correct answer.
func (q *Question) IsCorrect(option string) bool {
	return q != nil && option != "" && option == q.Correct
}

// HasOption reports whether option is one of the offered choices.
func (q *Question) HasOption(option string) bool {
	if q == nil {
		return false
	}
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// CorrectIndex returns the display index of the correct option, or -1.
func (q *Question) CorrectIndex() int {
	if q == nil {
		return -1
	}
	for i, o := range q.Options {
		if o == q.Correct {
			return i
		}
	}
	return -1
}
