package examgen

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/studiz/internal/exam"
	"github.com/abhisek/studiz/internal/llm"
)

func cannedQuestions(t *testing.T, qs []questionOutput) llm.MockResponse {
	t.Helper()
	content, err := json.Marshal(batchOutput{Questions: qs})
	if err != nil {
		t.Fatalf("marshal canned questions: %v", err)
	}
	return llm.MockResponse{Content: content}
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(cannedQuestions(t, []questionOutput{
		{
			Type:     "mcq",
			Question: "Which keyword starts a goroutine?",
			Options:  []string{"A. run", "B. go", "C. spawn", "D. fork"},
			CorrectAnswer: "B. go",
			Explanation:   "The go statement starts a new goroutine.",
			Difficulty:    "easy",
			Topic:         "concurrency",
		},
		{
			Type:          "truefalse",
			Question:      "Channels are safe for concurrent use.",
			CorrectAnswer: "True",
			Explanation:   "Channel operations are synchronized.",
			Difficulty:    "easy",
			Topic:         "channels",
		},
	}))
	gen := New(mock, DefaultConfig())

	qs, err := gen.Generate(context.Background(), Input{Content: "goroutines...", Type: Mix, Count: 2})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if qs[0].ID != 1 || qs[1].ID != 2 {
		t.Errorf("ids not sequential: %d, %d", qs[0].ID, qs[1].ID)
	}
	if qs[0].Type != exam.TypeMultipleChoice {
		t.Errorf("type = %q, want mcq", qs[0].Type)
	}
	if qs[0].Marks != 1 {
		t.Errorf("marks = %d, want 1", qs[0].Marks)
	}
	if len(qs[1].Options) != 0 {
		t.Error("truefalse question should have no options")
	}
}

func TestGenerateRejectsMalformedMCQ(t *testing.T) {
	mock := llm.NewMockProvider(cannedQuestions(t, []questionOutput{
		{
			Type:          "mcq",
			Question:      "Pick one",
			Options:       []string{"A. yes", "B. no"},
			CorrectAnswer: "A. yes",
		},
	}))
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), Input{Content: "stuff", Type: "mcq", Count: 1}); err == nil {
		t.Error("expected error for mcq with 2 options")
	}
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	mock := llm.NewMockProvider(cannedQuestions(t, []questionOutput{
		{Type: "essay", Question: "Discuss.", CorrectAnswer: "n/a"},
	}))
	gen := New(mock, DefaultConfig())

	if _, err := gen.Generate(context.Background(), Input{Content: "stuff", Type: Mix, Count: 1}); err == nil {
		t.Error("expected error for unknown question type")
	}
}

func TestPromptIncludesWeakTopics(t *testing.T) {
	msg := buildUserMessage(Input{
		Content:    "material",
		Type:       "short",
		Count:      3,
		WeakTopics: []string{"pointers", "interfaces"},
	}, DefaultConfig())

	if !strings.Contains(msg, "pointers, interfaces") {
		t.Error("prompt missing weak topic focus")
	}
	if !strings.Contains(msg, "DIFFICULTY: medium") {
		t.Error("empty difficulty should default to medium")
	}
}

func TestDurationFor(t *testing.T) {
	tests := []struct {
		count int
		want  time.Duration
	}{
		{1, 15 * time.Minute},
		{5, 15 * time.Minute},
		{7, 15 * time.Minute},
		{8, 16 * time.Minute},
		{20, 40 * time.Minute},
	}
	for _, tt := range tests {
		if got := DurationFor(tt.count); got != tt.want {
			t.Errorf("DurationFor(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}
