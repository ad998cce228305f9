package examgen

// Config controls exam question generation.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxContentChars truncates the study material included in the
	// prompt.
	MaxContentChars int

	// DefaultMarks is the mark value assigned to every generated
	// question.
	DefaultMarks int
}

// DefaultConfig returns sensible defaults for exam generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       4000,
		Temperature:     0.3,
		MaxContentChars: 7000,
		DefaultMarks:    1,
	}
}
