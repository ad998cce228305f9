package review

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/deck"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/srs"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/ui/components"
	"github.com/abhisek/studiz/internal/ui/layout"
	"github.com/abhisek/studiz/internal/ui/theme"
)

// cardsLoadedMsg is sent when the due queue has been loaded.
type cardsLoadedMsg struct {
	Cards []srs.Card
	Err   error
}

// reviewedMsg is sent when a rating has been persisted.
type reviewedMsg struct {
	Card srs.Card
	Err  error
}

// ReviewScreen drives a flashcard review session over a deck's due
// cards.
type ReviewScreen struct {
	svc  *deck.Service
	deck store.Deck

	cards    []srs.Card
	index    int
	revealed bool
	reviewed int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a review screen for the given deck.
func New(svc *deck.Service, d store.Deck) *ReviewScreen {
	return &ReviewScreen{svc: svc, deck: d}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return func() tea.Msg {
		cards, err := s.svc.Due(context.Background(), s.deck.ID, time.Now())
		return cardsLoadedMsg{Cards: cards, Err: err}
	}
}

func (s *ReviewScreen) Title() string {
	return "Review · " + s.deck.Name
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	if !s.loaded || s.done() {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if !s.revealed {
		return []layout.KeyHint{
			{Key: "Space", Description: "Show answer"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "0-5", Description: "Rate recall"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReviewScreen) done() bool {
	return s.loaded && s.index >= len(s.cards)
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.cards = msg.Cards
		s.loaded = true
		return s, nil

	case reviewedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.reviewed++
		s.index++
		s.revealed = false
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ReviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" || s.done() {
		if key == "esc" || key == "enter" || key == " " {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}
	if !s.loaded {
		return s, nil
	}

	if !s.revealed {
		if key == " " || key == "enter" {
			s.revealed = true
		}
		return s, nil
	}

	// Revealed: digit keys rate the card.
	if len(key) == 1 && key[0] >= '0' && key[0] <= '5' {
		quality := int(key[0] - '0')
		card := s.cards[s.index]
		return s, func() tea.Msg {
			updated, err := s.svc.Review(context.Background(), card, quality, time.Now())
			return reviewedMsg{Card: updated, Err: err}
		}
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	center := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	switch {
	case s.errMsg != "":
		return center.Render(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + s.errMsg))
	case !s.loaded:
		return center.Render(theme.Hint.Render("Loading due cards..."))
	case len(s.cards) == 0:
		return center.Render(theme.Body.Render("Nothing due right now — come back later!"))
	case s.done():
		return center.Render(lipgloss.JoinVertical(lipgloss.Center,
			theme.Title.Render("Session complete"),
			"",
			theme.Body.Render(fmt.Sprintf("Reviewed %d cards", s.reviewed)),
			"",
			theme.Hint.Render("Press Esc to go back"),
		))
	}

	card := s.cards[s.index]
	progress := components.NewProgressBar(
		fmt.Sprintf("Card %d of %d", s.index+1, len(s.cards)),
		float64(s.index)/float64(len(s.cards)),
		false,
		min(width-8, 48),
	).View()

	front := theme.Card.Width(min(width-8, 72)).Render(theme.Body.Render(card.Front))

	parts := []string{progress, "", front}
	if s.revealed {
		back := theme.Card.Width(min(width-8, 72)).Render(
			lipgloss.NewStyle().Foreground(theme.Secondary).Render(card.Back))
		parts = append(parts, "", back, "",
			theme.Hint.Render("How well did you recall this?"),
			theme.Subtitle.Render("0 blank · 1 wrong · 2 almost · 3 hard · 4 hesitant · 5 perfect"),
		)
	} else {
		parts = append(parts, "", theme.Hint.Render("Press Space to reveal the answer"))
	}

	return center.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}
