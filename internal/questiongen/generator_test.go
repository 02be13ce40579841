package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hijaydeep/Trivia-Game/internal/llm"
	"github.com/hijaydeep/Trivia-Game/internal/trivia"
)

func multipleJSON(question string) json.RawMessage {
	b, _ := json.Marshal(Output{
		Question:         question,
		Category:         "Science: Nature",
		Difficulty:       "easy",
		Type:             "multiple",
		CorrectAnswer:    "Jupiter",
		IncorrectAnswers: []string{"Mars", "Venus", "Earth"},
	})
	return b
}

func booleanJSON() json.RawMessage {
	return json.RawMessage(`{
		"question": "The Great Wall of China is visible from the Moon with the naked eye.",
		"category": "Geography",
		"difficulty": "medium",
		"type": "boolean",
		"correct_answer": "False",
		"incorrect_answers": ["True"]
	}`)
}

func TestNext_Multiple(t *testing.T) {
	mock := llm.NewScripted(llm.Step{Content: multipleJSON("Which planet is the largest?")})
	gen := New(mock, DefaultConfig(), nil)

	q, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Which planet is the largest?", q.Text)
	assert.Equal(t, "Jupiter", q.Correct)
	assert.Equal(t, trivia.TypeMultiple, q.Type)
	assert.Equal(t, "Science: Nature", q.Category)
	assert.ElementsMatch(t, []string{"Jupiter", "Mars", "Venus", "Earth"}, q.Options)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Same(t, QuestionSchema, reqs[0].Schema)
	assert.Contains(t, reqs[0].Prompt, "Already asked:\nNone")
}

func TestNext_Boolean(t *testing.T) {
	mock := llm.NewScripted(llm.Step{Content: booleanJSON()})
	gen := New(mock, DefaultConfig(), nil)

	q, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, trivia.TypeBoolean, q.Type)
	assert.ElementsMatch(t, []string{"True", "False"}, q.Options)
	assert.Equal(t, "False", q.Correct)
}

func TestNext_PriorQuestionsInPrompt(t *testing.T) {
	mock := llm.NewScripted(
		llm.Step{Content: multipleJSON("First?")},
		llm.Step{Content: multipleJSON("Second?")},
	)
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Next(context.Background())
	require.NoError(t, err)
	_, err = gen.Next(context.Background())
	require.NoError(t, err)

	assert.Contains(t, mock.Requests()[1].Prompt, "1. First?")
}

func TestNext_RepeatRegenerated(t *testing.T) {
	mock := llm.NewScripted(
		llm.Step{Content: multipleJSON("Same?")},
		llm.Step{Content: multipleJSON("same?")},
		llm.Step{Content: multipleJSON("Different?")},
	)
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Next(context.Background())
	require.NoError(t, err)

	q, err := gen.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Different?", q.Text)
	assert.Equal(t, 3, mock.Calls())
}

func TestNext_ValidationFailureExhaustsAttempts(t *testing.T) {
	bad := json.RawMessage(`{"question":"Q?","category":"X","difficulty":"easy","type":"multiple","correct_answer":"A","incorrect_answers":["B"]}`)
	mock := llm.NewScripted(llm.Step{Content: bad}, llm.Step{Content: bad})
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Next(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "options", verr.Validator)
	assert.Equal(t, 2, mock.Calls())
}

func TestNext_ProviderErrorNotRetried(t *testing.T) {
	mock := llm.NewScripted(llm.Step{Err: &llm.Error{Kind: llm.KindUnavailable, Err: errors.New("down")}})
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Next(context.Background())
	assert.ErrorIs(t, err, llm.ErrUnavailable)
	assert.Equal(t, 1, mock.Calls())
}

func TestNext_SetsPurpose(t *testing.T) {
	var purpose string
	p := providerFunc(func(ctx context.Context, req llm.Request) (*llm.Response, error) {
		purpose = llm.PurposeFrom(ctx)
		return &llm.Response{Content: multipleJSON("Q?")}, nil
	})

	_, err := New(p, DefaultConfig(), nil).Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Purpose, purpose)
}

type providerFunc func(ctx context.Context, req llm.Request) (*llm.Response, error)

func (f providerFunc) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	return f(ctx, req)
}

func (f providerFunc) Name() string    { return "func" }
func (f providerFunc) ModelID() string { return "func" }
