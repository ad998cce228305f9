package exam

import (
	"fmt"
	"math"
)

// Result is the per-question evaluation outcome the aggregator folds.
// It is produced by the grading collaborator; the aggregator treats it
// as ground truth and only sums.
type Result struct {
	QuestionID   int
	Topic        string
	MarksAwarded float64
	MaxMarks     float64
	IsCorrect    bool
	Feedback     string
}

// TopicScore is the per-topic rollup used for weak-topic targeting.
// A topic counts as correct only if every result in it is correct.
type TopicScore struct {
	Topic   string
	Correct bool
	Marks   float64
}

// Score is the session-level aggregate.
type Score struct {
	TotalMarks float64
	MaxMarks   float64
	Percentage int
	Grade      string
	Topics     []TopicScore
}

// GradeBand maps a minimum percentage to a letter grade.
type GradeBand struct {
	Min   int    `koanf:"min"`
	Grade string `koanf:"grade"`
}

// GradeScale is an ordered set of grade bands, highest threshold first.
// The last band must have Min 0 so every percentage maps to a grade.
type GradeScale []GradeBand

// DefaultGradeScale mirrors the fixed thresholds of the original grader.
func DefaultGradeScale() GradeScale {
	return GradeScale{
		{Min: 90, Grade: "A"},
		{Min: 75, Grade: "B"},
		{Min: 60, Grade: "C"},
		{Min: 40, Grade: "D"},
		{Min: 0, Grade: "F"},
	}
}

// Validate checks that the scale is non-empty, strictly descending,
// within [0,100], and exhaustive (ends at 0).
func (g GradeScale) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("grade scale is empty")
	}
	prev := 101
	for i, band := range g {
		if band.Grade == "" {
			return fmt.Errorf("grade scale band %d has no grade", i)
		}
		if band.Min < 0 || band.Min > 100 {
			return fmt.Errorf("grade scale band %q min %d outside [0,100]", band.Grade, band.Min)
		}
		if band.Min >= prev {
			return fmt.Errorf("grade scale not strictly descending at %q", band.Grade)
		}
		prev = band.Min
	}
	if g[len(g)-1].Min != 0 {
		return fmt.Errorf("grade scale does not cover 0")
	}
	return nil
}

// GradeFor maps a percentage to its letter grade.
func (g GradeScale) GradeFor(percentage int) string {
	for _, band := range g {
		if percentage >= band.Min {
			return band.Grade
		}
	}
	// Unreachable for a validated scale.
	return g[len(g)-1].Grade
}

// Aggregate collapses per-question results into a session score. It is a
// pure fold: totals are order-independent, and the topic breakdown keeps
// first-seen topic order so repeated runs compare equal. An empty result
// set is the degenerate perfect exam: 100%, zero marks.
func Aggregate(results []Result, scale GradeScale) Score {
	if len(scale) == 0 {
		scale = DefaultGradeScale()
	}

	var total, max float64
	var topicOrder []string
	topics := make(map[string]*TopicScore)

	for _, r := range results {
		total += r.MarksAwarded
		max += r.MaxMarks

		ts, ok := topics[r.Topic]
		if !ok {
			ts = &TopicScore{Topic: r.Topic, Correct: true}
			topics[r.Topic] = ts
			topicOrder = append(topicOrder, r.Topic)
		}
		ts.Marks += r.MarksAwarded
		if !r.IsCorrect {
			ts.Correct = false
		}
	}

	percentage := 100
	if max > 0 {
		percentage = int(math.Round(100 * total / max))
	}

	breakdown := make([]TopicScore, 0, len(topicOrder))
	for _, topic := range topicOrder {
		breakdown = append(breakdown, *topics[topic])
	}

	return Score{
		TotalMarks: total,
		MaxMarks:   max,
		Percentage: percentage,
		Grade:      scale.GradeFor(percentage),
		Topics:     breakdown,
	}
}
