package grading

// CorrectThreshold is the score at or above which an answer counts as
// correct. Every consumer of correctness derives it from the score with
// this single threshold.
const CorrectThreshold = 70

// Evaluation is the graded outcome for one answered question.
type Evaluation struct {
	QuestionID int

	// Score is 0-100.
	Score int

	// Grade is a coarse label: Excellent, Good, Partial, or Incorrect.
	Grade string

	// IsCorrect is always Score >= CorrectThreshold.
	IsCorrect bool

	// Feedback is 2-3 sentences of specific feedback.
	Feedback string

	// KeyConceptsMissed lists the concepts the answer failed to cover.
	KeyConceptsMissed []string

	// ImprovementTip is one actionable thing to review.
	ImprovementTip string
}

// normalize clamps the score, recomputes correctness from it, and fills
// a missing grade label. The model's own is_correct and grade fields
// are advisory; the score is authoritative.
func (e *Evaluation) normalize() {
	if e.Score < 0 {
		e.Score = 0
	}
	if e.Score > 100 {
		e.Score = 100
	}
	e.IsCorrect = e.Score >= CorrectThreshold

	if e.Grade == "" {
		e.Grade = gradeLabel(e.Score)
	}
}

func gradeLabel(score int) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= CorrectThreshold:
		return "Good"
	case score >= 40:
		return "Partial"
	default:
		return "Incorrect"
	}
}
