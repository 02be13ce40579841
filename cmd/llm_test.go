package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hijaydeep/Trivia-Game/internal/questiongen"
	"github.com/hijaydeep/Trivia-Game/internal/store"
)

const capitalJSON = `{"question":"What is the capital of Peru?","category":"Geography","difficulty":"easy","type":"multiple","correct_answer":"Lima","incorrect_answers":["Quito","Bogota","La Paz"]}`

func llmEvent(id int, model string, ok bool, response string) store.LLMEvent {
	ev := store.LLMEvent{ID: id, Timestamp: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	ev.Provider = "anthropic"
	ev.Model = model
	ev.Purpose = questiongen.Purpose
	ev.Success = ok
	ev.ResponseBody = response
	ev.RequestBody = "Write one trivia question."
	if !ok {
		ev.ErrorMessage = "rate limited"
	}
	return ev
}

func TestEventFilter(t *testing.T) {
	list := []store.LLMEvent{
		llmEvent(1, "claude-haiku-4-5", true, capitalJSON),
		llmEvent(2, "gpt-4o-mini", false, ""),
		llmEvent(3, "Claude-Sonnet-4-5", false, ""),
	}

	ids := func(evs []store.LLMEvent) []int {
		var out []int
		for _, ev := range evs {
			out = append(out, ev.ID)
		}
		return out
	}

	assert.Equal(t, []int{1, 2, 3}, ids(eventFilter{}.apply(list)))
	assert.Equal(t, []int{2, 3}, ids(eventFilter{failedOnly: true}.apply(list)))
	assert.Equal(t, []int{1, 3}, ids(eventFilter{model: "claude"}.apply(list)))
	assert.Equal(t, []int{3}, ids(eventFilter{failedOnly: true, model: "CLAUDE"}.apply(list)))
	assert.Empty(t, eventFilter{model: "gemini"}.apply(list))
}

func TestDecodeQuestion(t *testing.T) {
	q, ok := decodeQuestion(capitalJSON)
	assert.True(t, ok)
	assert.Equal(t, "Lima", q.CorrectAnswer)
	assert.Len(t, q.IncorrectAnswers, 3)

	for _, body := range []string{"", "not json", `{"category":"Geography"}`} {
		_, ok := decodeQuestion(body)
		assert.False(t, ok, "body %q", body)
	}
}

func TestPrintQuestionLog(t *testing.T) {
	var buf bytes.Buffer
	printQuestionLog(&buf, []store.LLMEvent{
		llmEvent(1, "claude-haiku-4-5", true, capitalJSON),
		llmEvent(2, "gpt-4o-mini", false, ""),
		llmEvent(3, "gpt-4o-mini", true, "garbage"),
	})
	out := buf.String()
	assert.Contains(t, out, "What is the capital of Peru?")
	assert.Contains(t, out, "error: rate limited")
	assert.Contains(t, out, "(unreadable response)")

	buf.Reset()
	printQuestionLog(&buf, nil)
	assert.Contains(t, buf.String(), "No generated questions found.")
}

func TestPrintEvent(t *testing.T) {
	ev := llmEvent(7, "claude-haiku-4-5", true, capitalJSON)

	var buf bytes.Buffer
	printEvent(&buf, &ev, false)
	out := buf.String()
	assert.Contains(t, out, "✓ Lima")
	assert.Contains(t, out, "✗ Quito")
	assert.Contains(t, out, "Geography · easy · multiple")
	assert.NotContains(t, out, "PROMPT")

	buf.Reset()
	printEvent(&buf, &ev, true)
	assert.Contains(t, buf.String(), "Write one trivia question.")

	bad := llmEvent(8, "gpt-4o-mini", true, "garbage")
	buf.Reset()
	printEvent(&buf, &bad, false)
	assert.Contains(t, buf.String(), "RESPONSE", "undecodable responses fall back to raw output")
	assert.Contains(t, buf.String(), "garbage")
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf,
		[]store.LLMPurposeUsage{{Purpose: questiongen.Purpose, Calls: 3, InputTokens: 900, OutputTokens: 300, AvgLatencyMs: 420}},
		[]store.LLMModelUsage{
			{Model: "claude-haiku-4-5", Calls: 2, InputTokens: 1_000_000, OutputTokens: 1_000_000},
			{Model: "homebrew-7b", Calls: 1, InputTokens: 10, OutputTokens: 10},
		},
	)
	out := buf.String()
	assert.Contains(t, out, "3 question requests, 1200 tokens, 420ms average")
	assert.Contains(t, out, "$6.00")
	assert.Contains(t, out, "$3.00", "cost per call")
	assert.Contains(t, out, "No pricing for: homebrew-7b")

	buf.Reset()
	printUsage(&buf, nil, nil)
	assert.Contains(t, buf.String(), "No LLM usage recorded yet.")
}
