package cardgen

// Config controls flashcard generation.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxContentChars truncates the study material included in the
	// prompt.
	MaxContentChars int
}

// DefaultConfig returns sensible defaults for flashcard generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       3000,
		Temperature:     0.3,
		MaxContentChars: 7000,
	}
}
