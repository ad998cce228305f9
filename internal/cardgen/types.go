package cardgen

import "context"

// Input is the context for flashcard generation.
type Input struct {
	// Content is the raw study material the cards are drawn from.
	Content string

	// Count is the number of cards to generate.
	Count int
}

// Card is one generated flashcard before it gets an id and scheduling
// state.
type Card struct {
	Front string
	Back  string
	Topic string
}

// Generator produces flashcards from study material.
type Generator interface {
	Generate(ctx context.Context, input Input) ([]Card, error)
}
