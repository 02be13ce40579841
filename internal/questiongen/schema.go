package questiongen

import "github.com/hijaydeep/Trivia-Game/internal/llm"

// QuestionSchema defines the JSON the model must return.
var QuestionSchema = llm.NewSchema(
	"trivia-question",
	"A single trivia question with one correct answer and plausible wrong answers",
	map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question shown to the player, plain text without HTML",
			},
			"category": map[string]any{
				"type":        "string",
				"description": "Short topic label, e.g. \"Science: Computers\"",
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"easy", "medium", "hard"},
			},
			"type": map[string]any{
				"type":        "string",
				"enum":        []any{"multiple", "boolean"},
				"description": "multiple: 3 incorrect answers. boolean: a True/False statement with 1 incorrect answer",
			},
			"correct_answer": map[string]any{
				"type": "string",
			},
			"incorrect_answers": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
				"maxItems": 3,
			},
		},
		"required":             []any{"question", "category", "difficulty", "type", "correct_answer", "incorrect_answers"},
		"additionalProperties": false,
	},
)
