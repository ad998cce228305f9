package cardgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

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

type cardOutput struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Topic string `json:"topic"`
}

type batchOutput struct {
	Cards []cardOutput `json:"cards"`
}

// Generate produces flashcards from the given study material.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) ([]Card, error) {
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("study material is empty")
	}
	if input.Count <= 0 {
		return nil, fmt.Errorf("card count must be positive, got %d", input.Count)
	}

	ctx = llm.WithPurpose(ctx, "card-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      FlashcardSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("flashcard generation: %w", err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse flashcard response: %w", err)
	}

	cards := make([]Card, 0, len(out.Cards))
	for i, c := range out.Cards {
		if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
			return nil, fmt.Errorf("card %d has an empty side", i)
		}
		cards = append(cards, Card{Front: c.Front, Back: c.Back, Topic: c.Topic})
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("no cards generated")
	}
	return cards, nil
}
