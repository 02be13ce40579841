package questiongen

import (
	"strings"
	"testing"
)

func validOutput() Output {
	return Output{
		Question:         "Which element has the symbol O?",
		Category:         "Science",
		Difficulty:       "easy",
		Type:             "multiple",
		CorrectAnswer:    "Oxygen",
		IncorrectAnswers: []string{"Gold", "Osmium", "Iron"},
	}
}

func TestStructuralValidator(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Output)
		cfg     Config
		wantErr bool
	}{
		{"valid", func(o *Output) {}, Config{}, false},
		{"empty question", func(o *Output) { o.Question = "  " }, Config{}, true},
		{"long question", func(o *Output) { o.Question = strings.Repeat("x", 301) }, Config{}, true},
		{"unknown type", func(o *Output) { o.Type = "open" }, Config{}, true},
		{"type filter mismatch", func(o *Output) {}, Config{Type: "boolean"}, true},
		{"difficulty filter mismatch", func(o *Output) {}, Config{Difficulty: "hard"}, true},
		{"difficulty filter match", func(o *Output) {}, Config{Difficulty: "easy"}, false},
	}

	v := &StructuralValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOutput()
			tt.mutate(&o)
			err := v.Validate(&o, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsValidator(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *Output)
		wantErr bool
	}{
		{"valid multiple", func(o *Output) {}, false},
		{"too few incorrect", func(o *Output) { o.IncorrectAnswers = o.IncorrectAnswers[:2] }, true},
		{"duplicate incorrect", func(o *Output) { o.IncorrectAnswers[1] = "gold" }, true},
		{"correct among incorrect", func(o *Output) { o.IncorrectAnswers[2] = "Oxygen" }, true},
		{"blank answer", func(o *Output) { o.IncorrectAnswers[0] = "" }, true},
		{"valid boolean", func(o *Output) {
			o.Type = "boolean"
			o.CorrectAnswer = "True"
			o.IncorrectAnswers = []string{"False"}
		}, false},
		{"boolean with other words", func(o *Output) {
			o.Type = "boolean"
			o.CorrectAnswer = "Yes"
			o.IncorrectAnswers = []string{"No"}
		}, true},
	}

	v := &OptionsValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOutput()
			tt.mutate(&o)
			err := v.Validate(&o, Config{})
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !err.Retryable {
				t.Error("options errors should be retryable")
			}
		})
	}
}

func TestBuildDedup(t *testing.T) {
	if got := buildDedup(nil, 5); got != "None" {
		t.Errorf("buildDedup(nil) = %q", got)
	}
	got := buildDedup([]string{"a", "b", "c"}, 2)
	if got != "1. b\n2. c" {
		t.Errorf("buildDedup = %q", got)
	}
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(Config{Category: "History", Difficulty: "hard"}, []string{"Who?"})
	for _, want := range []string{"Category: History", "Difficulty: hard", "Type: any", "1. Who?"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}
