package questiongen

// Config controls the behavior of the Generator.
type Config struct {
	// Validators run in order on every generated question; the first
	// failure stops the pipeline.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxPriorQuestions caps how many earlier questions are listed in the
	// prompt so the model avoids repeats.
	MaxPriorQuestions int

	// MaxAttempts bounds regeneration after a retryable validation failure.
	MaxAttempts int

	// Category, Difficulty and Type narrow the questions requested. Empty
	// means any.
	Category   string
	Difficulty string
	Type       string
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&OptionsValidator{},
		},
		MaxTokens:         400,
		Temperature:       0.9,
		MaxPriorQuestions: 20,
		MaxAttempts:       2,
	}
}
