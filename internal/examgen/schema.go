package examgen

import "github.com/abhisek/studiz/internal/llm"

// QuestionSchema defines the JSON schema for exam question generation.
var QuestionSchema = &llm.Schema{
	Name:        "exam-questions",
	Description: "A batch of exam-quality practice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type": "string",
							"enum": []any{"mcq", "short", "truefalse"},
						},
						"question": map[string]any{
							"type":        "string",
							"description": "Clear question text",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options labeled A-D for mcq, empty otherwise",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "Full correct answer text",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Clear explanation of why this is correct",
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"topic": map[string]any{
							"type":        "string",
							"description": "Specific concept being tested (2-5 words)",
						},
					},
					"required": []any{
						"type", "question", "options", "correct_answer",
						"explanation", "difficulty", "topic",
					},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
