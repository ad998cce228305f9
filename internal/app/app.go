package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/cardgen"
	"github.com/abhisek/studiz/internal/config"
	"github.com/abhisek/studiz/internal/deck"
	"github.com/abhisek/studiz/internal/examgen"
	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/llm"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/screens/home"
	"github.com/abhisek/studiz/internal/screens/welcome"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/tutor"
	"github.com/abhisek/studiz/internal/ui/layout"
	"github.com/abhisek/studiz/internal/weakness"
)

// Options carries the wired dependencies for the TUI.
type Options struct {
	Store  *store.Store
	Config config.Config

	// Provider is nil when no LLM API key is configured; LLM-backed
	// features are disabled in that case.
	Provider llm.Provider
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	cards  store.CardRepo
	width  int
	height int
	due    int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	deps := home.Deps{
		Decks:    opts.Store.Decks(),
		Cards:    opts.Store.Cards(),
		Exams:    opts.Store.Exams(),
		ExamCfg:  opts.Config.Exam,
		LLMReady: opts.Provider != nil,
	}

	if opts.Provider != nil {
		gen := cardgen.New(opts.Provider, cardgen.DefaultConfig())
		deps.Service = deck.NewService(deps.Decks, deps.Cards, gen)
		deps.ExamGen = examgen.New(opts.Provider, examgen.DefaultConfig())
		deps.Grader = grading.NewExamGrader(grading.NewEvaluator(opts.Provider, grading.DefaultConfig()))
		deps.Analyzer = weakness.NewAnalyzer(opts.Provider, weakness.DefaultConfig())
		deps.Tutor = tutor.New(opts.Provider, tutor.DefaultConfig())
	} else {
		// Review still works without a provider; card creation does not.
		deps.Service = deck.NewService(deps.Decks, deps.Cards, nil)
	}

	due, _ := deps.Cards.CountDue(context.Background(), time.Now())

	splash := welcome.New(func() screen.Screen { return home.New(deps) })

	return AppModel{
		router: router.New(splash),
		cards:  deps.Cards,
		due:    due,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.PopScreenMsg:
		// Returning to an underlying screen; refresh the header badge.
		m.due, _ = m.cards.CountDue(context.Background(), time.Now())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break // screen confirms or cleans up itself
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	// The splash renders without the header/footer chrome.
	if title == "" && m.router.Depth() == 1 {
		v.SetContent(m.router.View(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(title, m.due, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
