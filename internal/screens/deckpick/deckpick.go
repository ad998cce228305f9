package deckpick

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/ui/layout"
	"github.com/abhisek/studiz/internal/ui/theme"
)

// decksLoadedMsg is sent when the deck list (with due counts) is ready.
type decksLoadedMsg struct {
	Decks []entry
	Err   error
}

type entry struct {
	Deck store.Deck
	Due  int
}

// DeckPickScreen lists the user's decks and hands the chosen one to a
// target screen builder (review, exam, ...).
type DeckPickScreen struct {
	title string
	decks store.DeckRepo
	cards store.CardRepo

	// pick builds the screen to push for the chosen deck.
	pick func(store.Deck) screen.Screen

	entries  []entry
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*DeckPickScreen)(nil)
var _ screen.KeyHintProvider = (*DeckPickScreen)(nil)

// New creates a deck picker titled title; pick builds the screen pushed
// when a deck is chosen.
func New(title string, decks store.DeckRepo, cards store.CardRepo, pick func(store.Deck) screen.Screen) *DeckPickScreen {
	return &DeckPickScreen{title: title, decks: decks, cards: cards, pick: pick}
}

func (s *DeckPickScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		decks, err := s.decks.List(ctx)
		if err != nil {
			return decksLoadedMsg{Err: err}
		}

		now := time.Now()
		entries := make([]entry, 0, len(decks))
		for _, d := range decks {
			due, err := s.cards.CountDueByDeck(ctx, d.ID, now)
			if err != nil {
				return decksLoadedMsg{Err: err}
			}
			entries = append(entries, entry{Deck: d, Due: due})
		}
		return decksLoadedMsg{Decks: entries}
	}
}

func (s *DeckPickScreen) Title() string {
	return s.title
}

func (s *DeckPickScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Choose deck"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DeckPickScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Decks
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
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.entries) == 0 {
				return s, nil
			}
			chosen := s.entries[s.selected].Deck
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: s.pick(chosen)}
			}
		}
	}
	return s, nil
}

func (s *DeckPickScreen) View(width, height int) string {
	center := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	switch {
	case s.errMsg != "":
		return center.Render(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + s.errMsg))
	case !s.loaded:
		return center.Render(theme.Hint.Render("Loading decks..."))
	case len(s.entries) == 0:
		return center.Render(lipgloss.JoinVertical(lipgloss.Center,
			theme.Body.Render("No decks yet."),
			"",
			theme.Hint.Render("Create one with: studiz decks add"),
		))
	}

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(s.title))
	b.WriteString("\n\n")

	for i, e := range s.entries {
		label := fmt.Sprintf("%s  ·  %d due", e.Deck.Name, e.Due)
		if i == s.selected {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ " + label))
		} else {
			b.WriteString(theme.Body.Render("  " + label))
		}
		b.WriteString("\n")
	}

	return center.Render(strings.TrimRight(b.String(), "\n"))
}
