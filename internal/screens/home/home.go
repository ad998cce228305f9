package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/config"
	"github.com/abhisek/studiz/internal/deck"
	"github.com/abhisek/studiz/internal/examgen"
	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/screens/chat"
	"github.com/abhisek/studiz/internal/screens/deckpick"
	examscreen "github.com/abhisek/studiz/internal/screens/exam"
	"github.com/abhisek/studiz/internal/screens/history"
	"github.com/abhisek/studiz/internal/screens/placeholder"
	"github.com/abhisek/studiz/internal/screens/review"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/tutor"
	"github.com/abhisek/studiz/internal/ui/components"
	"github.com/abhisek/studiz/internal/weakness"
)

// Deps carries everything the home screen's children need.
type Deps struct {
	Decks    store.DeckRepo
	Cards    store.CardRepo
	Exams    store.ExamRepo
	Service  *deck.Service
	ExamGen  examgen.Generator
	Grader   *grading.ExamGrader
	Analyzer *weakness.Analyzer
	Tutor    *tutor.Tutor
	ExamCfg  config.ExamConfig

	// LLMReady is false when no provider API key is configured; LLM-backed
	// entries are disabled and a hint banner is shown.
	LLMReady bool
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	deckCount  int
	dueCount   int
	examCount  int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	ctx := context.Background()

	var deckCount, dueCount, examCount int
	if deps.Decks != nil {
		if decks, err := deps.Decks.List(ctx); err == nil {
			deckCount = len(decks)
		}
	}
	if deps.Cards != nil {
		dueCount, _ = deps.Cards.CountDue(ctx, time.Now())
	}
	if deps.Exams != nil {
		if recent, err := deps.Exams.Recent(ctx, 50); err == nil {
			examCount = len(recent)
		}
	}

	menuLabels := []string{"REVIEW CARDS", "TAKE EXAM", "TUTOR CHAT", "HISTORY", "EXIT"}
	disabled := map[int]bool{1: !deps.LLMReady, 2: !deps.LLMReady}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			if deps.Service == nil {
				return pushCmd(placeholder.New("Review Cards"))
			}
			return pushCmd(deckpick.New("Pick a deck to review", deps.Decks, deps.Cards,
				func(d store.Deck) screen.Screen {
					return review.New(deps.Service, d)
				}))
		}},
		{Label: menuLabels[1], Disabled: !deps.LLMReady, Action: func() tea.Cmd {
			if deps.Grader == nil {
				return pushCmd(placeholder.New("Take Exam"))
			}
			return pushCmd(deckpick.New("Pick a deck for the exam", deps.Decks, deps.Cards,
				func(d store.Deck) screen.Screen {
					return examscreen.New(d, deps.ExamGen, deps.Grader, deps.Analyzer, deps.Exams, deps.ExamCfg)
				}))
		}},
		{Label: menuLabels[2], Disabled: !deps.LLMReady, Action: func() tea.Cmd {
			if deps.Tutor == nil {
				return pushCmd(placeholder.New("Tutor Chat"))
			}
			return pushCmd(deckpick.New("Pick a deck to chat about", deps.Decks, deps.Cards,
				func(d store.Deck) screen.Screen {
					return chat.New(deps.Tutor, d)
				}))
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			if deps.Exams == nil {
				return pushCmd(placeholder.New("History"))
			}
			return pushCmd(history.New(deps.Exams, deps.Decks))
		}},
		{Label: menuLabels[4], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		disabled:   disabled,
		deckCount:  deckCount,
		dueCount:   dueCount,
		examCount:  examCount,
	}
}

func pushCmd(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	sections = append(sections, renderStatsBar(
		h.deckCount, h.dueCount, h.examCount, cw, compact))

	if compact {
		sections = append(sections, renderMenuCompact(
			h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderMenu(
			h.menuLabels, h.menu.Selected, cw, h.disabled))
	}

	if !h.deps.LLMReady {
		sections = append(sections, renderLLMBanner(cw))
	}

	content := strings.Join(sections, "\n\n")

	return components.PanelFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
