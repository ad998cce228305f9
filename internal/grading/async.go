package grading

import (
	"context"
	"sync"

	"github.com/abhisek/studiz/internal/exam"
)

type outcome struct {
	eval *Evaluation
	err  error
}

// AsyncGrader runs evaluations in the background, one per question.
// A question has at most one evaluation in flight; a finished success
// stays available until the session completes, so a grading pass that
// failed partway can pick up where it left off.
type AsyncGrader struct {
	evaluator *Evaluator

	mu      sync.Mutex
	cond    *sync.Cond
	pending map[int]bool
	done    map[int]outcome
}

// NewAsyncGrader creates an AsyncGrader over the given evaluator.
func NewAsyncGrader(e *Evaluator) *AsyncGrader {
	g := &AsyncGrader{
		evaluator: e,
		pending:   make(map[int]bool),
		done:      make(map[int]outcome),
	}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Request starts grading the question's answer. It returns false when
// an evaluation for this question is already in flight or waiting to be
// consumed.
func (g *AsyncGrader) Request(ctx context.Context, q exam.Question, answer string) bool {
	g.mu.Lock()
	if g.pending[q.ID] {
		g.mu.Unlock()
		return false
	}
	if _, ok := g.done[q.ID]; ok {
		g.mu.Unlock()
		return false
	}
	g.pending[q.ID] = true
	g.mu.Unlock()

	go func() {
		ev, err := g.evaluator.Evaluate(ctx, q, answer)
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.pending, q.ID)
		g.done[q.ID] = outcome{eval: ev, err: err}
		g.cond.Broadcast()
	}()
	return true
}

// Consume returns the finished evaluation for the question, if any.
// The third return is false while nothing is ready. A consumed failure
// clears the slot so the question can be requested again; a success
// stays cached for re-grades.
func (g *AsyncGrader) Consume(questionID int) (*Evaluation, error, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out, ok := g.done[questionID]
	if !ok {
		return nil, nil, false
	}
	if out.err != nil {
		delete(g.done, questionID)
	}
	return out.eval, out.err, true
}

// Await blocks until an outcome for the question is available or the
// context is cancelled. Failure outcomes clear the slot like Consume;
// successes stay cached.
func (g *AsyncGrader) Await(ctx context.Context, questionID int) (*Evaluation, error) {
	stop := context.AfterFunc(ctx, func() {
		g.mu.Lock()
		g.cond.Broadcast()
		g.mu.Unlock()
	})
	defer stop()

	g.mu.Lock()
	defer g.mu.Unlock()
	for {
		if out, ok := g.done[questionID]; ok {
			if out.err != nil {
				delete(g.done, questionID)
				return nil, out.err
			}
			return out.eval, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.cond.Wait()
	}
}

// InFlight reports whether the question currently has an evaluation
// running.
func (g *AsyncGrader) InFlight(questionID int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending[questionID]
}
