package chat

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studiz/internal/llm"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/tutor"
	"github.com/abhisek/studiz/internal/ui/components"
	"github.com/abhisek/studiz/internal/ui/layout"
	"github.com/abhisek/studiz/internal/ui/theme"
)

// streamStartedMsg is sent once the tutor reply stream is open.
type streamStartedMsg struct {
	ch     <-chan llm.Fragment
	cancel context.CancelFunc
	err    error
}

// fragmentMsg is one streamed fragment of the tutor's reply.
type fragmentMsg llm.Fragment

// ChatScreen is a free-form tutoring conversation over a deck's study
// material. Replies render incrementally as the model streams them.
type ChatScreen struct {
	tutor *tutor.Tutor
	deck  store.Deck

	history []llm.Message
	input   components.TextInput

	streaming bool
	partial   strings.Builder
	stream    <-chan llm.Fragment
	cancel    context.CancelFunc
	errMsg    string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.EscHandler = (*ChatScreen)(nil)

// New creates a chat screen over the given deck's material.
func New(t *tutor.Tutor, d store.Deck) *ChatScreen {
	return &ChatScreen{
		tutor: t,
		deck:  d,
		input: components.NewTextInput("Ask the tutor anything...", false, 0),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Tutor · " + s.deck.Name
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	if s.streaming {
		return []layout.KeyHint{{Key: "Esc", Description: "Stop reply"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

// HandlesEsc keeps Esc here while a reply is streaming so it cancels
// the stream instead of leaving the conversation.
func (s *ChatScreen) HandlesEsc() bool {
	return s.streaming
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case streamStartedMsg:
		if msg.err != nil {
			s.streaming = false
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.stream = msg.ch
		s.cancel = msg.cancel
		return s, s.waitFragment()

	case fragmentMsg:
		return s.handleFragment(llm.Fragment(msg))

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if !s.streaming {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ChatScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.streaming {
		if key == "esc" {
			s.stopStream()
		}
		return s, nil
	}

	if key == "enter" {
		text := strings.TrimSpace(s.input.Value())
		if text == "" {
			return s, nil
		}
		s.errMsg = ""
		s.history = append(s.history, llm.Message{Role: llm.RoleUser, Content: text})
		s.input = components.NewTextInput("Ask the tutor anything...", false, 0)
		s.streaming = true
		s.partial.Reset()
		return s, tea.Batch(s.input.Init(), s.startStream())
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) startStream() tea.Cmd {
	t := s.tutor
	material := s.deck.Material
	history := append([]llm.Message(nil), s.history...)
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		ch, err := t.Chat(ctx, material, history)
		if err != nil {
			cancel()
			return streamStartedMsg{err: err}
		}
		return streamStartedMsg{ch: ch, cancel: cancel}
	}
}

func (s *ChatScreen) waitFragment() tea.Cmd {
	ch := s.stream
	return func() tea.Msg {
		frag, ok := <-ch
		if !ok {
			return fragmentMsg(llm.Fragment{Done: true})
		}
		return fragmentMsg(frag)
	}
}

func (s *ChatScreen) handleFragment(frag llm.Fragment) (screen.Screen, tea.Cmd) {
	if !s.streaming {
		return s, nil
	}
	if frag.Err != nil {
		s.stopStream()
		s.errMsg = frag.Err.Error()
		return s, nil
	}
	if frag.Done {
		s.finishReply()
		return s, nil
	}
	s.partial.WriteString(frag.Text)
	return s, s.waitFragment()
}

// stopStream cancels an in-flight reply, keeping whatever arrived.
func (s *ChatScreen) stopStream() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.finishReply()
}

func (s *ChatScreen) finishReply() {
	s.streaming = false
	s.stream = nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if text := strings.TrimSpace(s.partial.String()); text != "" {
		s.history = append(s.history, llm.Message{Role: llm.RoleAssistant, Content: text})
	}
	s.partial.Reset()
}

func (s *ChatScreen) View(width, height int) string {
	cw := width - 8
	if cw > 76 {
		cw = 76
	}

	userStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	tutorStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(cw)

	var b strings.Builder
	for _, m := range s.history {
		if m.Role == llm.RoleUser {
			b.WriteString(userStyle.Render("You"))
		} else {
			b.WriteString(tutorStyle.Render("Tutor"))
		}
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render(m.Content))
		b.WriteString("\n\n")
	}
	if s.streaming {
		b.WriteString(tutorStyle.Render("Tutor"))
		b.WriteString("\n")
		if s.partial.Len() == 0 {
			b.WriteString(theme.Hint.Render("Thinking..."))
		} else {
			b.WriteString(bodyStyle.Render(s.partial.String()))
		}
		b.WriteString("\n\n")
	}
	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + s.errMsg))
		b.WriteString("\n\n")
	}
	if len(s.history) == 0 && !s.streaming && s.errMsg == "" {
		b.WriteString(theme.Hint.Render("Ask about anything in this deck's study material."))
		b.WriteString("\n\n")
	}

	transcript := strings.TrimRight(b.String(), "\n")

	// Keep only the lines that fit above the input.
	inputHeight := 3
	avail := height - inputHeight - 2
	if avail < 1 {
		avail = 1
	}
	lines := strings.Split(transcript, "\n")
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	transcript = strings.Join(lines, "\n")

	content := lipgloss.JoinVertical(lipgloss.Left,
		transcript,
		"",
		s.input.View(),
	)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Bottom).
		Render(content)
}
