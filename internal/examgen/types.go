package examgen

import (
	"context"
	"time"

	"github.com/abhisek/studiz/internal/exam"
)

// Mix requests a blend of question types instead of a single one.
const Mix = "mixed"

// Input is the context for exam question generation.
type Input struct {
	// Content is the raw study material the questions are drawn from.
	Content string

	// Type is one of exam.TypeMultipleChoice, exam.TypeShortAnswer,
	// exam.TypeTrueFalse, or Mix.
	Type string

	// Count is the number of questions to generate.
	Count int

	// Difficulty is "easy", "medium", or "hard".
	Difficulty string

	// WeakTopics, when set, focuses generation on topics the learner is
	// struggling with.
	WeakTopics []string
}

// Generator produces exam questions from study material.
type Generator interface {
	Generate(ctx context.Context, input Input) ([]exam.Question, error)
}

// DurationFor returns the exam length for a question count: two minutes
// per question with a fifteen-minute floor.
func DurationFor(count int) time.Duration {
	mins := 2 * count
	if mins < 15 {
		mins = 15
	}
	return time.Duration(mins) * time.Minute
}
