package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write questions for a multiple-choice trivia quiz.

Rules:
- Generate exactly one question.
- Use plain text. No HTML entities, no Markdown.
- "multiple" questions have one correct answer and exactly 3 incorrect answers.
- "boolean" questions are statements; the correct answer is "True" or "False" and the single incorrect answer is the other.
- Every answer must be distinct. Wrong answers must be plausible but unambiguously wrong.
- Keep each answer short (a few words).
- Do not repeat or rephrase any question from the "already asked" list.`

// buildUserMessage describes the wanted question and lists prior ones.
func buildUserMessage(cfg Config, prior []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Category: %s\n", orAny(cfg.Category))
	fmt.Fprintf(&b, "Difficulty: %s\n", orAny(cfg.Difficulty))
	fmt.Fprintf(&b, "Type: %s\n", orAny(cfg.Type))

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(prior, cfg.MaxPriorQuestions))

	return b.String()
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

// buildDedup numbers the most recent max prior questions, or returns
// "None".
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
