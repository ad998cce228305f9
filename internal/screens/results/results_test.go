package results

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/weakness"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "" }
func (s *stubScreen) Title() string                           { return "" }

func analyzed(s *ResultsScreen, topics ...string) {
	wt := make([]weakness.WeakTopic, len(topics))
	for i, t := range topics {
		wt[i] = weakness.WeakTopic{Topic: t}
	}
	s.Update(analysisMsg{Analysis: &weakness.Analysis{WeakTopics: wt}})
}

func TestPracticeKeyBuildsDrillExam(t *testing.T) {
	var got []string
	s := New(Params{
		Outcome: &grading.Outcome{},
		Practice: func(topics []string) screen.Screen {
			got = topics
			return &stubScreen{}
		},
	})
	analyzed(s, "pointers", "maps")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'p'})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if len(got) != 2 || got[0] != "pointers" || got[1] != "maps" {
		t.Errorf("practice topics = %v, want [pointers maps]", got)
	}
}

func TestPracticeKeyIgnoredWithoutWeakTopics(t *testing.T) {
	called := false
	s := New(Params{
		Outcome: &grading.Outcome{},
		Practice: func([]string) screen.Screen {
			called = true
			return &stubScreen{}
		},
	})
	analyzed(s) // no weak topics found

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'p'})
	if cmd != nil || called {
		t.Error("practice must be unavailable without weak topics")
	}
}

func TestPracticeKeyIgnoredWithoutGenerator(t *testing.T) {
	s := New(Params{Outcome: &grading.Outcome{}})
	analyzed(s, "pointers")

	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'p'}); cmd != nil {
		t.Error("practice must be unavailable without a Practice builder")
	}
}
