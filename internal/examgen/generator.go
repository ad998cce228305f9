package examgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/studiz/internal/exam"
	"github.com/abhisek/studiz/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type questionOutput struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
}

type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

// Generate produces exam questions from the given study material.
// Question ids are assigned sequentially starting at 1.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) ([]exam.Question, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("study material is empty")
	}
	if input.Count <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", input.Count)
	}

	ctx = llm.WithPurpose(ctx, "exam-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation: %w", err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse question response: %w", err)
	}
	if len(out.Questions) == 0 {
		return nil, fmt.Errorf("no questions generated")
	}

	questions := make([]exam.Question, 0, len(out.Questions))
	for i, q := range out.Questions {
		parsed, err := toQuestion(i+1, q, g.config.DefaultMarks)
		if err != nil {
			return nil, err
		}
		questions = append(questions, parsed)
	}
	return questions, nil
}

func toQuestion(id int, q questionOutput, marks int) (exam.Question, error) {
	typ := exam.QuestionType(q.Type)
	switch typ {
	case exam.TypeMultipleChoice:
		if len(q.Options) != 4 {
			return exam.Question{}, fmt.Errorf("question %d: mcq needs 4 options, got %d", id, len(q.Options))
		}
	case exam.TypeShortAnswer, exam.TypeTrueFalse:
		q.Options = nil
	default:
		return exam.Question{}, fmt.Errorf("question %d: unknown type %q", id, q.Type)
	}

	if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.CorrectAnswer) == "" {
		return exam.Question{}, fmt.Errorf("question %d: empty prompt or answer", id)
	}

	return exam.Question{
		ID:            id,
		Type:          typ,
		Prompt:        q.Question,
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Topic:         q.Topic,
		Difficulty:    q.Difficulty,
		Marks:         marks,
	}, nil
}
