package exam

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/config"
	assess "github.com/abhisek/studiz/internal/exam"
	"github.com/abhisek/studiz/internal/examgen"
	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/llm"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/store"
)

// captureGen records the generation input it was called with.
type captureGen struct {
	in        examgen.Input
	questions []assess.Question
	err       error
}

func (g *captureGen) Generate(_ context.Context, in examgen.Input) ([]assess.Question, error) {
	g.in = in
	return g.questions, g.err
}

func shortQuestion(id int) assess.Question {
	return assess.Question{
		ID:     id,
		Type:   assess.TypeShortAnswer,
		Prompt: "Explain the zero value.",
		Topic:  "basics",
		Marks:  2,
	}
}

func submittedSession(t *testing.T, questions []assess.Question, answers map[int]string) *assess.Session {
	t.Helper()
	sess := assess.NewSession(assess.SystemClock{})
	if err := sess.Begin(questions, time.Hour); err != nil {
		t.Fatalf("begin: %v", err)
	}
	for id, a := range answers {
		if err := sess.RecordAnswer(id, a); err != nil {
			t.Fatalf("record answer %d: %v", id, err)
		}
	}
	if !sess.Submit() {
		t.Fatal("submit failed")
	}
	return sess
}

func okEvaluation(t *testing.T) llm.MockResponse {
	t.Helper()
	content, err := json.Marshal(map[string]any{
		"score": 90, "grade": "A", "is_correct": true,
		"feedback": "ok", "key_concepts_missed": []string{}, "improvement_tip": "",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return llm.MockResponse{Content: content}
}

func TestPracticeBiasesGeneration(t *testing.T) {
	gen := &captureGen{questions: []assess.Question{shortQuestion(1)}}
	topics := []string{"pointers", "slices"}

	s := NewPractice(store.Deck{Name: "go", Material: "notes"}, gen, nil, nil, nil,
		config.ExamConfig{QuestionCount: 3}, topics)

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a generation command")
	}
	if _, ok := cmd().(questionsReadyMsg); !ok {
		t.Fatal("expected questionsReadyMsg")
	}

	if len(gen.in.WeakTopics) != 2 || gen.in.WeakTopics[0] != "pointers" || gen.in.WeakTopics[1] != "slices" {
		t.Errorf("generation weak topics = %v, want %v", gen.in.WeakTopics, topics)
	}
	if gen.in.Count != 3 {
		t.Errorf("count = %d, want 3", gen.in.Count)
	}
}

func TestPlainExamGenerationHasNoBias(t *testing.T) {
	gen := &captureGen{questions: []assess.Question{shortQuestion(1)}}

	s := New(store.Deck{Material: "notes"}, gen, nil, nil, nil, config.ExamConfig{QuestionCount: 2})
	s.Init()()

	if len(gen.in.WeakTopics) != 0 {
		t.Errorf("weak topics = %v, want none", gen.in.WeakTopics)
	}
}

func TestGradingFailureRetriesOnEnter(t *testing.T) {
	sess := submittedSession(t, []assess.Question{shortQuestion(1)}, map[int]string{1: "an answer"})
	grader := grading.NewExamGrader(grading.NewEvaluator(
		llm.NewMockProvider(okEvaluation(t)), grading.DefaultConfig()))

	s := New(store.Deck{Name: "go"}, nil, grader, nil, nil, config.ExamConfig{})
	s.session = sess
	s.phase = phaseGrading
	s.errMsg = "collaborator unavailable"

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.errMsg != "" {
		t.Errorf("errMsg = %q, want cleared", s.errMsg)
	}
	if cmd == nil {
		t.Fatal("expected a regrade command")
	}

	msg, ok := cmd().(gradedMsg)
	if !ok {
		t.Fatal("expected gradedMsg")
	}
	if msg.Err != nil {
		t.Fatalf("regrade: %v", msg.Err)
	}
	if msg.Outcome == nil || len(msg.Outcome.Evaluations) != 1 {
		t.Fatal("expected a graded outcome")
	}
	if sess.Status() != assess.StatusCompleted {
		t.Errorf("status = %v, want completed", sess.Status())
	}
}

func TestGradingFailureEscGoesBack(t *testing.T) {
	sess := submittedSession(t, []assess.Question{shortQuestion(1)}, nil)

	s := New(store.Deck{Name: "go"}, nil, nil, nil, nil, config.ExamConfig{})
	s.session = sess
	s.phase = phaseGrading
	s.errMsg = "collaborator unavailable"

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestGenerationFailureRetriesOnEnter(t *testing.T) {
	gen := &captureGen{questions: []assess.Question{shortQuestion(1)}}

	s := New(store.Deck{Material: "notes"}, gen, nil, nil, nil, config.ExamConfig{QuestionCount: 1})
	s.errMsg = "collaborator unavailable"

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.errMsg != "" {
		t.Errorf("errMsg = %q, want cleared", s.errMsg)
	}
	if cmd == nil {
		t.Fatal("expected a regeneration command")
	}
	if _, ok := cmd().(questionsReadyMsg); !ok {
		t.Error("expected questionsReadyMsg")
	}
}
