package weakness

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/studiz/internal/llm"
)

// Config controls weakness analysis.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for analysis.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   800,
		Temperature: 0.2,
	}
}

// Analyzer identifies weak topics from a completed session's results.
type Analyzer struct {
	provider llm.Provider
	config   Config
}

// NewAnalyzer creates an Analyzer with the given provider and config.
func NewAnalyzer(provider llm.Provider, cfg Config) *Analyzer {
	return &Analyzer{provider: provider, config: cfg}
}

// Analyze builds the weak-topic breakdown. A session with no wrong
// answers short-circuits to a canned perfect-score analysis without an
// LLM round trip.
func (a *Analyzer) Analyze(ctx context.Context, results []ResultInput) (*Analysis, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to analyze")
	}

	allCorrect := true
	var strong []string
	for _, r := range results {
		if r.IsCorrect {
			strong = append(strong, r.Topic)
		} else {
			allCorrect = false
		}
	}
	if allCorrect {
		return &Analysis{
			StrongTopics: strong,
			Summary:      PerfectSummary,
		}, nil
	}

	ctx = llm.WithPurpose(ctx, "weakness-analysis")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(results)},
		},
		Schema:      AnalysisSchema,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("weakness analysis: %w", err)
	}

	var analysis Analysis
	if err := json.Unmarshal(resp.Content, &analysis); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	return &analysis, nil
}
