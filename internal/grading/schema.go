package grading

import "github.com/abhisek/studiz/internal/llm"

// EvaluationSchema defines the JSON schema for answer evaluation.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Graded evaluation of a student's answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"description": "0-100 score for the answer",
			},
			"grade": map[string]any{
				"type": "string",
				"enum": []any{"Excellent", "Good", "Partial", "Incorrect"},
			},
			"is_correct": map[string]any{
				"type":        "boolean",
				"description": "True if score >= 70",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "2-3 sentences of specific, personalized feedback mentioning what they got right and wrong",
			},
			"key_concepts_missed": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Specific concepts the answer failed to cover",
			},
			"improvement_tip": map[string]any{
				"type":        "string",
				"description": "One specific, actionable thing to review or practice",
			},
		},
		"required": []any{
			"score", "grade", "is_correct", "feedback",
			"key_concepts_missed", "improvement_tip",
		},
		"additionalProperties": false,
	},
}
