package weakness

import "github.com/abhisek/studiz/internal/llm"

// AnalysisSchema defines the JSON schema for weak-topic analysis.
var AnalysisSchema = &llm.Schema{
	Name:        "weakness-analysis",
	Description: "Weak-topic analysis of a completed practice session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"weakTopics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic": map[string]any{
							"type":        "string",
							"description": "Topic name",
						},
						"why": map[string]any{
							"type":        "string",
							"description": "1 sentence explaining specifically what the student misunderstands",
						},
						"studyTip": map[string]any{
							"type":        "string",
							"description": "1 concrete, actionable tip to improve on this topic",
						},
					},
					"required":             []any{"topic", "why", "studyTip"},
					"additionalProperties": false,
				},
			},
			"strongTopics": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "2-3 sentence overall assessment of the student's performance and what to focus on next",
			},
			"priorityAction": map[string]any{
				"type":        "string",
				"description": "The single most important thing they should do before their next study session",
			},
		},
		"required":             []any{"weakTopics", "strongTopics", "summary", "priorityAction"},
		"additionalProperties": false,
	},
}
