package cardgen

import "github.com/abhisek/studiz/internal/llm"

// FlashcardSchema defines the JSON schema for flashcard generation.
var FlashcardSchema = &llm.Schema{
	Name:        "flashcards",
	Description: "A batch of flashcards extracted from study material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{
							"type":        "string",
							"description": "Concise question or term",
						},
						"back": map[string]any{
							"type":        "string",
							"description": "Clear complete answer",
						},
						"topic": map[string]any{
							"type":        "string",
							"description": "Topic tag (2-5 words)",
						},
					},
					"required":             []any{"front", "back", "topic"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"cards"},
		"additionalProperties": false,
	},
}
