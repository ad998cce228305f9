package exam

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an assessment session.
type Status int

const (
	StatusSetup Status = iota
	StatusInProgress
	StatusGrading
	StatusCompleted
	StatusAbandoned
)

func (s Status) String() string {
	switch s {
	case StatusSetup:
		return "setup"
	case StatusInProgress:
		return "in_progress"
	case StatusGrading:
		return "grading"
	case StatusCompleted:
		return "completed"
	case StatusAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Session is one timed assessment attempt. The state machine is
//
//	Setup -> InProgress -> Grading -> Completed
//	                 \-> Abandoned
//
// Answers are mutable only while InProgress and within the time limit;
// submission freezes them. Submission is idempotent: the race between a
// timer-expiry tick and a manual submit is expected, and the loser is a
// no-op rather than an error.
type Session struct {
	ID        string
	Questions []Question
	Duration  time.Duration
	StartedAt time.Time

	mu          sync.Mutex
	status      Status
	answers     map[int]string
	evalStates  map[int]EvalState
	submittedAt time.Time
	score       *Score
	clock       Clock
}

// NewSession creates a session in Setup. It holds no questions until
// generation succeeds and Begin is called; a generation failure simply
// leaves the session here.
func NewSession(clock Clock) *Session {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Session{
		ID:         uuid.New().String(),
		status:     StatusSetup,
		answers:    make(map[int]string),
		evalStates: make(map[int]EvalState),
		clock:      clock,
	}
}

// Begin receives the generated question set and starts the timer.
func (s *Session) Begin(questions []Question, duration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusSetup {
		return ErrAlreadyStarted
	}

	s.Questions = questions
	s.Duration = duration
	s.StartedAt = s.clock.Now()
	s.status = StatusInProgress
	return nil
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Elapsed returns time spent in the session. It freezes at submission.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

func (s *Session) elapsedLocked() time.Duration {
	switch s.status {
	case StatusSetup:
		return 0
	case StatusInProgress:
		return s.clock.Now().Sub(s.StartedAt)
	default:
		return s.submittedAt.Sub(s.StartedAt)
	}
}

// Remaining returns the time left before forced submission, never negative.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	left := s.Duration - s.elapsedLocked()
	if left < 0 {
		return 0
	}
	return left
}

// RecordAnswer captures an answer for a question. Last write wins; no
// history is kept. Content is not validated here — judging the answer is
// the grading collaborator's job.
func (s *Session) RecordAnswer(questionID int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusInProgress {
		return ErrNotInProgress
	}
	if s.clock.Now().Sub(s.StartedAt) >= s.Duration {
		return ErrTimeExpired
	}
	if !s.hasQuestion(questionID) {
		return ErrUnknownQuestion
	}

	s.answers[questionID] = value
	return nil
}

func (s *Session) hasQuestion(id int) bool {
	for _, q := range s.Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

// Answer returns the captured answer for a question, if any.
func (s *Session) Answer(questionID int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.answers[questionID]
	return v, ok
}

// Answers returns a copy of the captured answers keyed by question id.
func (s *Session) Answers() map[int]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Submit moves the session from InProgress to Grading, freezing the
// answers. It reports whether this call performed the transition; a
// submit on a session already in Grading or Completed is a no-op.
func (s *Session) Submit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked()
}

func (s *Session) submitLocked() bool {
	if s.status != StatusInProgress {
		return false
	}
	s.status = StatusGrading
	s.submittedAt = s.clock.Now()
	return true
}

// Tick advances the session's logical clock. On expiry it forces the
// same transition as a manual submit, keeping whatever answers were
// captured. It reports whether the session still wants ticks; once the
// status leaves InProgress the tick loop must stop.
func (s *Session) Tick(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusInProgress {
		return false
	}
	if now.Sub(s.StartedAt) >= s.Duration {
		s.submitLocked()
		return false
	}
	return true
}

// Abandon terminates an in-progress session without grading. Abandoned
// sessions are excluded from scoring and weakness analysis. It reports
// whether the transition happened.
func (s *Session) Abandon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusInProgress {
		return false
	}
	s.status = StatusAbandoned
	s.submittedAt = s.clock.Now()
	return true
}

// MarkEvalPending records that an evaluation is in flight for the
// question. It returns false if one is already pending or finished, so
// at most one evaluation runs per question id.
func (s *Session) MarkEvalPending(questionID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusGrading {
		return false
	}
	switch s.evalStates[questionID] {
	case EvalPending, EvalDone:
		return false
	}
	s.evalStates[questionID] = EvalPending
	return true
}

// MarkEvalDone records a finished evaluation for the question.
func (s *Session) MarkEvalDone(questionID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evalStates[questionID] = EvalDone
}

// MarkEvalFailed records a failed evaluation. A failed question may be
// retried with a new MarkEvalPending.
func (s *Session) MarkEvalFailed(questionID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evalStates[questionID] = EvalFailed
}

// EvalStateOf returns the evaluation state for a question.
func (s *Session) EvalStateOf(questionID int) EvalState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evalStates[questionID]
}

// Complete folds the per-question results into the final score and moves
// the session from Grading to Completed. Aggregation runs exactly once;
// calling Complete on an already completed session returns the stored
// score unchanged.
func (s *Session) Complete(results []Result, scale GradeScale) (Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusCompleted {
		return *s.score, nil
	}
	if s.status != StatusGrading {
		return Score{}, ErrNotGrading
	}

	score := Aggregate(results, scale)
	s.score = &score
	s.status = StatusCompleted
	return score, nil
}

// FinalScore returns the aggregated score once the session is completed.
func (s *Session) FinalScore() (Score, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.score == nil {
		return Score{}, false
	}
	return *s.score, true
}

// Retry creates a fresh session over the same question set: same
// questions and duration, empty answers, restarted timer. The original
// session is left untouched.
func (s *Session) Retry() *Session {
	s.mu.Lock()
	questions := s.Questions
	duration := s.Duration
	clock := s.clock
	s.mu.Unlock()

	ns := NewSession(clock)
	// Begin cannot fail on a fresh session.
	_ = ns.Begin(questions, duration)
	return ns
}
