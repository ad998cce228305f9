package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/studiz/internal/exam"
	"github.com/abhisek/studiz/internal/llm"
)

// Config controls answer evaluation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for evaluation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   500,
		Temperature: 0.2,
	}
}

// Evaluator grades one answer at a time using the LLM provider.
type Evaluator struct {
	provider llm.Provider
	config   Config
}

// NewEvaluator creates an Evaluator with the given provider and config.
func NewEvaluator(provider llm.Provider, cfg Config) *Evaluator {
	return &Evaluator{provider: provider, config: cfg}
}

type evaluationOutput struct {
	Score             int      `json:"score"`
	Grade             string   `json:"grade"`
	IsCorrect         bool     `json:"is_correct"`
	Feedback          string   `json:"feedback"`
	KeyConceptsMissed []string `json:"key_concepts_missed"`
	ImprovementTip    string   `json:"improvement_tip"`
}

// Evaluate grades a single answer. Blank answers are graded locally
// without an LLM round trip.
func (e *Evaluator) Evaluate(ctx context.Context, q exam.Question, answer string) (*Evaluation, error) {
	if strings.TrimSpace(answer) == "" {
		ev := &Evaluation{
			QuestionID:     q.ID,
			Score:          0,
			Feedback:       "No answer was given.",
			ImprovementTip: fmt.Sprintf("Review the material on %s and attempt every question.", q.Topic),
		}
		ev.normalize()
		return ev, nil
	}

	ctx = llm.WithPurpose(ctx, "grading")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(q, answer)},
		},
		Schema:      EvaluationSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("evaluate question %d: %w", q.ID, err)
	}

	var out evaluationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse evaluation for question %d: %w", q.ID, err)
	}

	ev := &Evaluation{
		QuestionID:        q.ID,
		Score:             out.Score,
		Grade:             out.Grade,
		Feedback:          out.Feedback,
		KeyConceptsMissed: out.KeyConceptsMissed,
		ImprovementTip:    out.ImprovementTip,
	}
	ev.normalize()
	return ev, nil
}

// Result converts an evaluation into an exam result, scaling the
// question's marks by the score.
func Result(q exam.Question, ev *Evaluation) exam.Result {
	return exam.Result{
		QuestionID:   q.ID,
		Topic:        q.Topic,
		MarksAwarded: float64(q.Marks) * float64(ev.Score) / 100,
		MaxMarks:     float64(q.Marks),
		IsCorrect:    ev.IsCorrect,
		Feedback:     ev.Feedback,
	}
}
