package questiongen

import (
	"fmt"
	"strings"
)

// Validator checks a generated question.
type Validator interface {
	Name() string
	Validate(q *Output, cfg Config) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks required fields and requested filters.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Output, cfg Config) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	switch {
	case strings.TrimSpace(q.Question) == "":
		return fail("question is empty")
	case len(q.Question) > 300:
		return fail("question exceeds 300 characters")
	case q.Type != "multiple" && q.Type != "boolean":
		return fail(fmt.Sprintf("unknown type %q", q.Type))
	case cfg.Type != "" && q.Type != cfg.Type:
		return fail(fmt.Sprintf("type %q requested, got %q", cfg.Type, q.Type))
	case cfg.Difficulty != "" && q.Difficulty != cfg.Difficulty:
		return fail(fmt.Sprintf("difficulty %q requested, got %q", cfg.Difficulty, q.Difficulty))
	}
	return nil
}

// OptionsValidator checks the answer set: the right count for the type,
// no blanks or duplicates, and the correct answer not listed as wrong.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Output, _ Config) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	want := 3
	if q.Type == "boolean" {
		want = 1
	}
	if len(q.IncorrectAnswers) != want {
		return fail(fmt.Sprintf("%s question needs %d incorrect answers, got %d", q.Type, want, len(q.IncorrectAnswers)))
	}

	seen := make(map[string]bool, want+1)
	for _, a := range append([]string{q.CorrectAnswer}, q.IncorrectAnswers...) {
		key := strings.ToLower(strings.TrimSpace(a))
		if key == "" {
			return fail("blank answer")
		}
		if seen[key] {
			return fail(fmt.Sprintf("duplicate answer %q", a))
		}
		seen[key] = true
	}

	if q.Type == "boolean" {
		pair := strings.ToLower(q.CorrectAnswer) + "/" + strings.ToLower(q.IncorrectAnswers[0])
		if pair != "true/false" && pair != "false/true" {
			return fail("boolean answers must be True and False")
		}
	}
	return nil
}
