package exam

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func testQuestions() []Question {
	return []Question{
		{ID: 1, Type: TypeMultipleChoice, Prompt: "Which organelle runs photosynthesis?", Options: []string{"A. Nucleus", "B. Chloroplast", "C. Ribosome", "D. Vacuole"}, CorrectAnswer: "B. Chloroplast", Topic: "photosynthesis", Marks: 1},
		{ID: 2, Type: TypeShortAnswer, Prompt: "Explain the role of ATP in a cell.", CorrectAnswer: "ATP stores and transfers chemical energy.", Topic: "cell energy", Marks: 3},
		{ID: 3, Type: TypeTrueFalse, Prompt: "Mitochondria are found in prokaryotes.", CorrectAnswer: "False", Topic: "cell structure", Marks: 1},
	}
}

func startedSession(t *testing.T, clock Clock, duration time.Duration) *Session {
	t.Helper()
	s := NewSession(clock)
	if err := s.Begin(testQuestions(), duration); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	return s
}

func TestSession_BeginTransitionsToInProgress(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := NewSession(clock)

	if s.Status() != StatusSetup {
		t.Fatalf("status = %v, want setup", s.Status())
	}
	if err := s.Begin(testQuestions(), 10*time.Minute); err != nil {
		t.Fatal(err)
	}
	if s.Status() != StatusInProgress {
		t.Errorf("status = %v, want in_progress", s.Status())
	}
	if !s.StartedAt.Equal(clock.Current) {
		t.Errorf("StartedAt = %v, want %v", s.StartedAt, clock.Current)
	}
	if err := s.Begin(testQuestions(), 10*time.Minute); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Begin error = %v, want ErrAlreadyStarted", err)
	}
}

func TestSession_RecordAnswerLastWriteWins(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := startedSession(t, clock, 10*time.Minute)

	if err := s.RecordAnswer(2, "ATP does stuff"); err != nil {
		t.Fatal(err)
	}
	if err := s.RecordAnswer(2, "ATP carries energy between reactions"); err != nil {
		t.Fatal(err)
	}

	got, ok := s.Answer(2)
	if !ok || got != "ATP carries energy between reactions" {
		t.Errorf("answer = %q, %v", got, ok)
	}

	if err := s.RecordAnswer(99, "x"); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("unknown question error = %v", err)
	}
}

func TestSession_RecordAnswerAfterExpiry(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := startedSession(t, clock, time.Minute)

	clock.Advance(time.Minute)
	if err := s.RecordAnswer(1, "B. Chloroplast"); !errors.Is(err, ErrTimeExpired) {
		t.Errorf("error = %v, want ErrTimeExpired", err)
	}
}

func TestSession_SubmitIdempotent(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := startedSession(t, clock, 10*time.Minute)

	if !s.Submit() {
		t.Fatal("first submit should transition")
	}
	if s.Status() != StatusGrading {
		t.Fatalf("status = %v, want grading", s.Status())
	}
	if s.Submit() {
		t.Error("second submit should be a no-op")
	}

	// Answers are frozen once grading begins.
	if err := s.RecordAnswer(1, "late"); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("post-submit answer error = %v", err)
	}
}

func TestSession_SubmitRaceProducesOneTransition(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := startedSession(t, clock, 10*time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	transitions := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Submit() {
				mu.Lock()
				transitions++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if transitions != 1 {
		t.Errorf("got %d transitions, want exactly 1", transitions)
	}
}

func TestSession_TickAutoSubmitsOnExpiry(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := startedSession(t, clock, time.Second)

	if err := s.RecordAnswer(1, "B. Chloroplast"); err != nil {
		t.Fatal(err)
	}

	// Before expiry the session keeps ticking.
	clock.Advance(500 * time.Millisecond)
	if !s.Tick(clock.Now()) {
		t.Fatal("tick before expiry should continue")
	}

	// At expiry the tick forces submission with the captured answers.
	clock.Advance(500 * time.Millisecond)
	if s.Tick(clock.Now()) {
		t.Error("tick at expiry should stop the loop")
	}
	if s.Status() != StatusGrading {
		t.Errorf("status = %v, want grading", s.Status())
	}
	if got, ok := s.Answer(1); !ok || got != "B. Chloroplast" {
		t.Errorf("captured answer lost: %q, %v", got, ok)
	}

	// Ticks after the transition stay no-ops.
	clock.Advance(time.Hour)
	if s.Tick(clock.Now()) {
		t.Error("tick after grading should be a no-op")
	}
}

func TestSession_AbandonStopsTicking(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := startedSession(t, clock, time.Minute)

	if !s.Abandon() {
		t.Fatal("abandon should transition")
	}
	if s.Status() != StatusAbandoned {
		t.Fatalf("status = %v, want abandoned", s.Status())
	}
	if s.Tick(clock.Now().Add(2 * time.Minute)) {
		t.Error("abandoned session must not tick")
	}
	// A stale expiry must not resurrect the session into grading.
	if s.Status() != StatusAbandoned {
		t.Errorf("status = %v after stale tick, want abandoned", s.Status())
	}
	if s.Abandon() {
		t.Error("second abandon should be a no-op")
	}
}

func TestSession_CompleteRunsAggregationOnce(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := startedSession(t, clock, time.Minute)

	results := []Result{
		{QuestionID: 1, Topic: "photosynthesis", MarksAwarded: 1, MaxMarks: 1, IsCorrect: true},
		{QuestionID: 2, Topic: "cell energy", MarksAwarded: 2, MaxMarks: 3, IsCorrect: false},
		{QuestionID: 3, Topic: "cell structure", MarksAwarded: 1, MaxMarks: 1, IsCorrect: true},
	}

	if _, err := s.Complete(results, DefaultGradeScale()); !errors.Is(err, ErrNotGrading) {
		t.Fatalf("Complete before submit error = %v, want ErrNotGrading", err)
	}

	s.Submit()
	score, err := s.Complete(results, DefaultGradeScale())
	if err != nil {
		t.Fatal(err)
	}
	if s.Status() != StatusCompleted {
		t.Fatalf("status = %v, want completed", s.Status())
	}
	if score.Percentage != 80 {
		t.Errorf("percentage = %d, want 80", score.Percentage)
	}

	// A second Complete returns the stored score, even with different input.
	again, err := s.Complete(nil, DefaultGradeScale())
	if err != nil {
		t.Fatal(err)
	}
	if again.Percentage != score.Percentage || again.MaxMarks != score.MaxMarks {
		t.Errorf("second Complete re-aggregated: %+v vs %+v", again, score)
	}
}

func TestSession_EvalStateAtMostOneInFlight(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := startedSession(t, clock, time.Minute)

	if s.MarkEvalPending(1) {
		t.Error("eval before grading should be refused")
	}

	s.Submit()

	if !s.MarkEvalPending(1) {
		t.Fatal("first pending mark should succeed")
	}
	if s.MarkEvalPending(1) {
		t.Error("second pending mark should be refused while in flight")
	}

	s.MarkEvalFailed(1)
	if s.EvalStateOf(1) != EvalFailed {
		t.Errorf("state = %v, want failed", s.EvalStateOf(1))
	}
	// Failed evaluations may be retried.
	if !s.MarkEvalPending(1) {
		t.Error("retry after failure should succeed")
	}

	s.MarkEvalDone(1)
	if s.MarkEvalPending(1) {
		t.Error("completed evaluation must not rerun")
	}
}

func TestSession_RetrySharesQuestionsFreshState(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := startedSession(t, clock, 10*time.Minute)
	if err := s.RecordAnswer(1, "B. Chloroplast"); err != nil {
		t.Fatal(err)
	}
	s.Submit()

	clock.Advance(5 * time.Minute)
	retry := s.Retry()

	if retry.ID == s.ID {
		t.Error("retry must be a new session")
	}
	if retry.Status() != StatusInProgress {
		t.Errorf("retry status = %v, want in_progress", retry.Status())
	}
	if len(retry.Questions) != len(s.Questions) {
		t.Errorf("retry has %d questions, want %d", len(retry.Questions), len(s.Questions))
	}
	if len(retry.Answers()) != 0 {
		t.Error("retry answers should start empty")
	}
	if !retry.StartedAt.Equal(clock.Current) {
		t.Errorf("retry timer not fresh: %v", retry.StartedAt)
	}
	// Original untouched.
	if s.Status() != StatusGrading {
		t.Errorf("original status = %v, want grading", s.Status())
	}
	if got, _ := s.Answer(1); got != "B. Chloroplast" {
		t.Error("original answers mutated by retry")
	}
}

func TestSession_RemainingNeverNegative(t *testing.T) {
	clock := NewFakeClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s := startedSession(t, clock, time.Minute)

	clock.Advance(2 * time.Minute)
	if got := s.Remaining(); got != 0 {
		t.Errorf("Remaining = %v, want 0", got)
	}
}
