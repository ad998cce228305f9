package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	assess "github.com/abhisek/studiz/internal/exam"
	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/ui/layout"
	"github.com/abhisek/studiz/internal/ui/theme"
	"github.com/abhisek/studiz/internal/weakness"
)

// analysisMsg is sent when the weak-topic analysis finishes.
type analysisMsg struct {
	Analysis *weakness.Analysis
	Err      error
}

// Params carries everything the results screen needs from the exam that
// just finished.
type Params struct {
	Deck     store.Deck
	Session  *assess.Session
	Outcome  *grading.Outcome
	Analyzer *weakness.Analyzer

	// Retry builds a fresh exam screen over the same questions.
	Retry func() screen.Screen

	// Practice builds an exam screen whose generation drills the given
	// weak topics. Nil when the originating exam had no generator.
	Practice func(topics []string) screen.Screen
}

// ResultsScreen shows the final score, topic breakdown, per-question
// feedback, and the weak-topic analysis for one graded exam.
type ResultsScreen struct {
	params Params

	index       int // which question's feedback is shown
	analysis    *weakness.Analysis
	analyzing   bool
	analysisErr string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.EscHandler = (*ResultsScreen)(nil)

// HandlesEsc is always true: leaving the results also unwinds the
// finished exam screen beneath, which takes two pops.
func (s *ResultsScreen) HandlesEsc() bool { return true }

// New creates a results screen for a graded session.
func New(p Params) *ResultsScreen {
	return &ResultsScreen{params: p, analyzing: true}
}

func (s *ResultsScreen) Init() tea.Cmd {
	analyzer := s.params.Analyzer
	inputs := analysisInputs(s.params.Session, s.params.Outcome)
	return func() tea.Msg {
		a, err := analyzer.Analyze(context.Background(), inputs)
		return analysisMsg{Analysis: a, Err: err}
	}
}

// analysisInputs pairs each evaluation with its question's prompt and
// topic.
func analysisInputs(session *assess.Session, outcome *grading.Outcome) []weakness.ResultInput {
	byID := make(map[int]assess.Question, len(session.Questions))
	for _, q := range session.Questions {
		byID[q.ID] = q
	}

	inputs := make([]weakness.ResultInput, 0, len(outcome.Evaluations))
	for _, ev := range outcome.Evaluations {
		q := byID[ev.QuestionID]
		inputs = append(inputs, weakness.ResultInput{
			Question:          q.Prompt,
			Topic:             q.Topic,
			Score:             ev.Score,
			IsCorrect:         ev.IsCorrect,
			KeyConceptsMissed: ev.KeyConceptsMissed,
		})
	}
	return inputs
}

func (s *ResultsScreen) Title() string {
	return "Results · " + s.params.Deck.Name
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←/→", Description: "Feedback"},
		{Key: "R", Description: "Retry exam"},
	}
	if s.canPractice() {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Drill weak topics"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Done"})
}

// canPractice reports whether a weak-topic practice exam can be built:
// the analysis found weak topics and the exam came from a generator.
func (s *ResultsScreen) canPractice() bool {
	return s.params.Practice != nil && s.analysis != nil && len(s.analysis.WeakTopics) > 0
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisMsg:
		s.analyzing = false
		if msg.Err != nil {
			s.analysisErr = msg.Err.Error()
		} else {
			s.analysis = msg.Analysis
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ResultsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		// Pop this screen and the finished exam screen beneath it.
		return s, tea.Sequence(popCmd(), popCmd())

	case "r", "R":
		if s.params.Retry == nil {
			return s, nil
		}
		fresh := s.params.Retry()
		return s, tea.Sequence(popCmd(), popCmd(), func() tea.Msg {
			return router.PushScreenMsg{Screen: fresh}
		})

	case "p", "P":
		if !s.canPractice() {
			return s, nil
		}
		fresh := s.params.Practice(s.analysis.Topics())
		return s, tea.Sequence(popCmd(), popCmd(), func() tea.Msg {
			return router.PushScreenMsg{Screen: fresh}
		})

	case "left", "up", "k":
		if s.index > 0 {
			s.index--
		}
		return s, nil

	case "right", "down", "j":
		if s.index < len(s.params.Outcome.Evaluations)-1 {
			s.index++
		}
		return s, nil
	}
	return s, nil
}

func popCmd() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *ResultsScreen) View(width, height int) string {
	score := s.params.Outcome.Score

	gradeStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	if score.Percentage < grading.CorrectThreshold {
		gradeStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}

	header := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Exam complete"),
		"",
		gradeStyle.Render(fmt.Sprintf("%s · %d%%", score.Grade, score.Percentage)),
		theme.Subtitle.Render(fmt.Sprintf("%.1f of %.1f marks", score.TotalMarks, score.MaxMarks)),
	)

	sections := []string{
		header,
		"",
		s.renderTopics(score.Topics),
		"",
		s.renderFeedback(width),
		"",
		s.renderAnalysis(width),
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (s *ResultsScreen) renderTopics(topics []assess.TopicScore) string {
	if len(topics) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Topics"))
	b.WriteString("\n")
	for _, ts := range topics {
		mark := lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		if !ts.Correct {
			mark = lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", mark, theme.Body.Render(ts.Topic)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *ResultsScreen) renderFeedback(width int) string {
	evals := s.params.Outcome.Evaluations
	if len(evals) == 0 {
		return ""
	}
	if s.index >= len(evals) {
		s.index = len(evals) - 1
	}
	ev := evals[s.index]

	label := lipgloss.NewStyle().Foreground(theme.Success).Render(ev.Grade)
	if !ev.IsCorrect {
		label = lipgloss.NewStyle().Foreground(theme.Error).Render(ev.Grade)
	}

	lines := []string{
		theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.index+1, len(evals))),
		fmt.Sprintf("%s · %d/100", label, ev.Score),
		theme.Body.Render(ev.Feedback),
	}
	if ev.ImprovementTip != "" {
		lines = append(lines, theme.Hint.Render("Tip: "+ev.ImprovementTip))
	}

	return theme.Card.Width(cardWidth(width)).Render(strings.Join(lines, "\n"))
}

func (s *ResultsScreen) renderAnalysis(width int) string {
	switch {
	case s.analyzing:
		return theme.Hint.Render("Analyzing weak topics...")
	case s.analysisErr != "":
		return theme.Hint.Render("Weak-topic analysis unavailable: " + s.analysisErr)
	case s.analysis == nil:
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.Body.Render(s.analysis.Summary))
	b.WriteString("\n")
	for _, w := range s.analysis.WeakTopics {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(w.Topic))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render(w.Why))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Study tip: " + w.StudyTip))
		b.WriteString("\n")
	}
	if s.analysis.PriorityAction != "" {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("Next: " + s.analysis.PriorityAction))
	}
	if s.canPractice() {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press P for a practice exam on these topics"))
	}

	return theme.Card.Width(cardWidth(width)).Render(strings.TrimRight(b.String(), "\n"))
}

func cardWidth(width int) int {
	w := width - 8
	if w > 72 {
		w = 72
	}
	return w
}
