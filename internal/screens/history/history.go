package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/ui/layout"
	"github.com/abhisek/studiz/internal/ui/theme"
)

type historyLoadedMsg struct {
	Records   []store.ExamRecord
	DeckNames map[string]string
	Err       error
}

// HistoryScreen displays past exam sessions.
type HistoryScreen struct {
	exams store.ExamRepo
	decks store.DeckRepo

	records   []store.ExamRecord
	deckNames map[string]string
	selected  int
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(exams store.ExamRepo, decks store.DeckRepo) *HistoryScreen {
	return &HistoryScreen{exams: exams, decks: decks}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		records, err := s.exams.Recent(ctx, 50)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		names := make(map[string]string)
		if all, err := s.decks.List(ctx); err == nil {
			for _, d := range all {
				names[d.ID] = d.Name
			}
		}
		return historyLoadedMsg{Records: records, DeckNames: names}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
			s.deckNames = msg.DeckNames
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No exams yet. Take one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		dateStr := rec.StartedAt.Format("Jan 02, 2006")

		deckName := s.deckNames[rec.DeckID]
		if deckName == "" {
			deckName = "(deleted deck)"
		}

		var outcome string
		if rec.Status == "completed" {
			outcome = fmt.Sprintf("%d%%  grade %s", rec.Percentage, rec.Grade)
		} else {
			outcome = "abandoned"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d questions  %s",
			prefix, dateStr, deckName, rec.QuestionCount, outcome)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if rec.Status != "completed" {
			style = style.Foreground(theme.TextDim)
		}
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}
