package grading

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abhisek/studiz/internal/exam"
	"github.com/abhisek/studiz/internal/llm"
)

func cannedEvaluation(t *testing.T, out evaluationOutput) llm.MockResponse {
	t.Helper()
	content, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal canned evaluation: %v", err)
	}
	return llm.MockResponse{Content: content}
}

func shortQuestion(id int) exam.Question {
	return exam.Question{
		ID:            id,
		Type:          exam.TypeShortAnswer,
		Prompt:        "Explain what a channel is.",
		CorrectAnswer: "A typed conduit for communication between goroutines.",
		Topic:         "channels",
		Marks:         2,
	}
}

func TestEvaluate(t *testing.T) {
	mock := llm.NewMockProvider(cannedEvaluation(t, evaluationOutput{
		Score:          85,
		Grade:          "Good",
		IsCorrect:      true,
		Feedback:       "Solid definition, missing the typed aspect.",
		ImprovementTip: "Mention that channels carry a specific element type.",
	}))
	e := NewEvaluator(mock, DefaultConfig())

	ev, err := e.Evaluate(context.Background(), shortQuestion(1), "A conduit goroutines use to communicate.")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if ev.Score != 85 || !ev.IsCorrect {
		t.Errorf("got score %d correct=%v, want 85/true", ev.Score, ev.IsCorrect)
	}
	if ev.QuestionID != 1 {
		t.Errorf("question id = %d, want 1", ev.QuestionID)
	}
}

func TestEvaluateDerivesCorrectnessFromScore(t *testing.T) {
	// Model claims correct but scores below the threshold; the score wins.
	mock := llm.NewMockProvider(cannedEvaluation(t, evaluationOutput{
		Score:     60,
		Grade:     "Partial",
		IsCorrect: true,
		Feedback:  "Partially right.",
	}))
	e := NewEvaluator(mock, DefaultConfig())

	ev, err := e.Evaluate(context.Background(), shortQuestion(1), "something")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if ev.IsCorrect {
		t.Error("score 60 must not count as correct")
	}
}

func TestEvaluateClampsScore(t *testing.T) {
	mock := llm.NewMockProvider(cannedEvaluation(t, evaluationOutput{Score: 130}))
	e := NewEvaluator(mock, DefaultConfig())

	ev, err := e.Evaluate(context.Background(), shortQuestion(1), "something")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if ev.Score != 100 {
		t.Errorf("score = %d, want clamped to 100", ev.Score)
	}
	if ev.Grade != "Excellent" {
		t.Errorf("grade = %q, want label derived from score", ev.Grade)
	}
}

func TestEvaluateBlankAnswerSkipsLLM(t *testing.T) {
	mock := llm.NewMockProvider()
	e := NewEvaluator(mock, DefaultConfig())

	ev, err := e.Evaluate(context.Background(), shortQuestion(1), "   ")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if ev.Score != 0 || ev.IsCorrect {
		t.Errorf("blank answer scored %d correct=%v", ev.Score, ev.IsCorrect)
	}
	if ev.Grade != "Incorrect" {
		t.Errorf("grade = %q, want Incorrect", ev.Grade)
	}
	if mock.CallCount() != 0 {
		t.Error("blank answer should not reach the provider")
	}
}

func TestResultScalesMarks(t *testing.T) {
	q := shortQuestion(3)
	ev := &Evaluation{QuestionID: 3, Score: 75, IsCorrect: true}

	r := Result(q, ev)
	if r.MarksAwarded != 1.5 {
		t.Errorf("marks awarded = %v, want 1.5", r.MarksAwarded)
	}
	if r.MaxMarks != 2 {
		t.Errorf("max marks = %v, want 2", r.MaxMarks)
	}
	if r.Topic != "channels" {
		t.Errorf("topic = %q, want channels", r.Topic)
	}
}

func TestGradeLabelBands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "Excellent"},
		{90, "Excellent"},
		{70, "Good"},
		{69, "Partial"},
		{40, "Partial"},
		{39, "Incorrect"},
		{0, "Incorrect"},
	}
	for _, tt := range tests {
		if got := gradeLabel(tt.score); got != tt.want {
			t.Errorf("gradeLabel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
