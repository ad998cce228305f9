package tutor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/studiz/internal/llm"
)

func collect(t *testing.T, ch <-chan llm.Fragment) string {
	t.Helper()
	var b strings.Builder
	deadline := time.After(2 * time.Second)
	for {
		select {
		case frag, ok := <-ch:
			if !ok {
				t.Fatal("stream closed without done fragment")
			}
			if frag.Err != nil {
				t.Fatalf("stream error: %v", frag.Err)
			}
			if frag.Done {
				return b.String()
			}
			b.WriteString(frag.Text)
		case <-deadline:
			t.Fatal("timed out reading stream")
		}
	}
}

func TestExplainStreams(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: []byte("Channels synchronize goroutines by passing values."),
	})
	tut := New(mock, DefaultConfig())

	ch, err := tut.Explain(context.Background(), ExplainInput{
		Question:      "What do channels do?",
		CorrectAnswer: "They pass values between goroutines.",
		StudentAnswer: "They store data.",
		Topic:         "channels",
	})
	if err != nil {
		t.Fatalf("explain: %v", err)
	}

	got := collect(t, ch)
	if !strings.Contains(got, "synchronize goroutines") {
		t.Errorf("streamed text = %q", got)
	}
}

func TestExplainCancellation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: []byte(strings.Repeat("word ", 200)),
	})
	tut := New(mock, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := tut.Explain(ctx, ExplainInput{Question: "q", Topic: "t"})
	if err != nil {
		t.Fatalf("explain: %v", err)
	}

	<-ch // at least one fragment arrives
	cancel()

	// The stream must terminate after cancellation.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not stop after cancel")
		}
	}
}

func TestChatTrimsHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxHistory = 2

	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte("Sure.")})
	tut := New(mock, cfg)

	history := []llm.Message{
		{Role: llm.RoleUser, Content: "first"},
		{Role: llm.RoleAssistant, Content: "second"},
		{Role: llm.RoleUser, Content: "third"},
	}
	ch, err := tut.Chat(context.Background(), "notes", history)
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	collect(t, ch)

	if len(mock.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(mock.Calls))
	}
	sent := mock.Calls[0].Messages
	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want trailing 2", len(sent))
	}
	if sent[0].Content != "second" || sent[1].Content != "third" {
		t.Errorf("wrong messages kept: %+v", sent)
	}
	if !strings.Contains(mock.Calls[0].System, "notes") {
		t.Error("system prompt missing study material")
	}
}

func TestChatRejectsEmptyHistory(t *testing.T) {
	tut := New(llm.NewMockProvider(), DefaultConfig())
	if _, err := tut.Chat(context.Background(), "", nil); err == nil {
		t.Error("expected error for empty history")
	}
}
