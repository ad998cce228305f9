package exam

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"

	assess "github.com/abhisek/studiz/internal/exam"
	"github.com/abhisek/studiz/internal/ui/theme"
)

func (s *ExamScreen) View(width, height int) string {
	center := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	switch {
	case s.errMsg != "":
		return center.Render(lipgloss.JoinVertical(lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+s.errMsg),
			"",
			theme.Hint.Render("Enter to try again · Esc to go back"),
		))
	case s.confirmQuit:
		return center.Render(lipgloss.JoinVertical(lipgloss.Center,
			theme.Title.Render("Abandon this exam?"),
			"",
			theme.Body.Render("Your answers will not be graded."),
			"",
			theme.Hint.Render("Y to abandon · N to keep going"),
		))
	case s.phase == phaseLoading:
		return center.Render(theme.Hint.Render("Generating questions..."))
	case s.phase == phaseGrading:
		return center.Render(theme.Hint.Render("Grading your answers..."))
	}

	return s.renderQuestion(width, height)
}

func (s *ExamScreen) renderQuestion(width, height int) string {
	q := s.currentQuestion()
	total := len(s.session.Questions)

	remaining := s.session.Remaining()
	timer := fmt.Sprintf("⏱ %02d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60)
	timerStyle := lipgloss.NewStyle().Foreground(theme.Secondary)
	if remaining < time.Minute {
		timerStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Subtitle.Render(fmt.Sprintf("Question %d of %d", s.index+1, total)),
		"   ",
		timerStyle.Render(timer),
		"   ",
		theme.Subtitle.Render(fmt.Sprintf("%d answered", len(s.session.Answers()))),
	)

	prompt := theme.Card.Width(boxWidth(width)).Render(theme.Body.Render(q.Prompt))

	var body string
	switch q.Type {
	case assess.TypeMultipleChoice:
		body = s.mc.View() + "\n" + theme.Hint.Render("Enter to lock in this choice")

	case assess.TypeTrueFalse:
		answer, _ := s.session.Answer(q.ID)
		body = theme.Body.Render("True or false?") + "\n\n" +
			renderTFOption("True", answer) + "\n" +
			renderTFOption("False", answer) + "\n\n" +
			theme.Hint.Render("T or F to answer")

	default:
		body = s.input.View() + "\n\n" + theme.Hint.Render("Enter to save and move on")
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, header, "", prompt, "", body))
}

func renderTFOption(label, answer string) string {
	if answer == label {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ " + label)
	}
	return theme.Body.Render("  " + label)
}

func boxWidth(width int) int {
	w := width - 8
	if w > 72 {
		w = 72
	}
	return w
}
