package grading

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/studiz/internal/exam"
)

// ExamGrader grades a whole submitted session and aggregates the score.
// Per-question work runs through an AsyncGrader scoped to the session,
// so a pass that fails partway keeps its finished evaluations and a
// second Grade call only re-evaluates what is missing.
type ExamGrader struct {
	evaluator *Evaluator

	mu        sync.Mutex
	sessionID string
	async     *AsyncGrader
}

// NewExamGrader creates an ExamGrader over the given evaluator.
func NewExamGrader(e *Evaluator) *ExamGrader {
	return &ExamGrader{evaluator: e}
}

// asyncFor returns the AsyncGrader for the session, discarding any
// cached evaluations left over from a different session. Question ids
// restart from 1 every exam, so outcomes must never cross sessions.
func (g *ExamGrader) asyncFor(s *exam.Session) *AsyncGrader {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sessionID != s.ID || g.async == nil {
		g.sessionID = s.ID
		g.async = NewAsyncGrader(g.evaluator)
	}
	return g.async
}

// Outcome is the graded session: per-question evaluations and results
// plus the aggregated score.
type Outcome struct {
	Evaluations []*Evaluation
	Results     []exam.Result
	Score       exam.Score
}

// Grade evaluates every question of a submitted session in order and
// folds the results into a final score. The session must be in the
// grading phase. A failed pass is retryable: questions already
// evaluated are reused, only failed or unevaluated ones go back to the
// collaborator.
func (g *ExamGrader) Grade(ctx context.Context, s *exam.Session, scale exam.GradeScale) (*Outcome, error) {
	if s.Status() != exam.StatusGrading {
		return nil, exam.ErrNotGrading
	}

	async := g.asyncFor(s)
	questions := s.Questions
	out := &Outcome{
		Evaluations: make([]*Evaluation, 0, len(questions)),
		Results:     make([]exam.Result, 0, len(questions)),
	}

	for _, q := range questions {
		if s.EvalStateOf(q.ID) != exam.EvalDone {
			s.MarkEvalPending(q.ID)
		}
		answer, _ := s.Answer(q.ID)
		async.Request(ctx, q, answer) // refused when in flight or already finished

		ev, err := async.Await(ctx, q.ID)
		if err != nil {
			s.MarkEvalFailed(q.ID)
			return nil, err
		}
		s.MarkEvalDone(q.ID)

		out.Evaluations = append(out.Evaluations, ev)
		out.Results = append(out.Results, Result(q, ev))
	}

	score, err := s.Complete(out.Results, scale)
	if err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}
	out.Score = score
	return out, nil
}
