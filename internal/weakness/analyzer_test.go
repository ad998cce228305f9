package weakness

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/abhisek/studiz/internal/llm"
)

func TestAnalyzePerfectScoreShortCircuits(t *testing.T) {
	mock := llm.NewMockProvider()
	a := NewAnalyzer(mock, DefaultConfig())

	analysis, err := a.Analyze(context.Background(), []ResultInput{
		{Question: "q1", Topic: "channels", Score: 95, IsCorrect: true},
		{Question: "q2", Topic: "slices", Score: 80, IsCorrect: true},
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if analysis.Summary != PerfectSummary {
		t.Errorf("summary = %q, want canned perfect summary", analysis.Summary)
	}
	if len(analysis.WeakTopics) != 0 {
		t.Error("perfect session has no weak topics")
	}
	if len(analysis.StrongTopics) != 2 {
		t.Errorf("strong topics = %v, want both", analysis.StrongTopics)
	}
	if mock.CallCount() != 0 {
		t.Error("perfect score must not reach the provider")
	}
}

func TestAnalyze(t *testing.T) {
	canned, err := json.Marshal(Analysis{
		WeakTopics: []WeakTopic{
			{Topic: "pointers", Why: "Confuses pointer and value receivers.", StudyTip: "Write the same method both ways and compare."},
		},
		StrongTopics:   []string{"channels"},
		Summary:        "Strong on concurrency, shaky on pointers.",
		PriorityAction: "Re-read the pointers chapter.",
	})
	if err != nil {
		t.Fatalf("marshal canned analysis: %v", err)
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: canned})
	a := NewAnalyzer(mock, DefaultConfig())

	analysis, err := a.Analyze(context.Background(), []ResultInput{
		{Question: "What is a channel?", Topic: "channels", Score: 90, IsCorrect: true},
		{Question: "Pointer receivers?", Topic: "pointers", Score: 30, IsCorrect: false, KeyConceptsMissed: []string{"receiver semantics"}},
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(analysis.WeakTopics) != 1 || analysis.WeakTopics[0].Topic != "pointers" {
		t.Errorf("weak topics = %+v", analysis.WeakTopics)
	}
	if got := analysis.Topics(); len(got) != 1 || got[0] != "pointers" {
		t.Errorf("Topics() = %v, want [pointers]", got)
	}
}

func TestAnalyzeRejectsEmptyResults(t *testing.T) {
	a := NewAnalyzer(llm.NewMockProvider(), DefaultConfig())
	if _, err := a.Analyze(context.Background(), nil); err == nil {
		t.Error("expected error for empty results")
	}
}

func TestPromptSeparatesWrongAndCorrect(t *testing.T) {
	msg := buildUserMessage([]ResultInput{
		{Question: "good one", Topic: "slices", IsCorrect: true},
		{Question: "bad one", Topic: "maps", IsCorrect: false, KeyConceptsMissed: []string{"zero value"}},
	})

	if !strings.Contains(msg, `"maps"`) || !strings.Contains(msg, "zero value") {
		t.Error("prompt missing wrong-answer details")
	}
	if !strings.Contains(msg, "CORRECT ANSWERS (topics): slices") {
		t.Error("prompt missing correct topics")
	}
	if strings.Contains(msg, `Question: "good one"`) {
		t.Error("correct answers must not be listed as wrong")
	}
}
