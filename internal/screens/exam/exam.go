package exam

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studiz/internal/config"
	assess "github.com/abhisek/studiz/internal/exam"
	"github.com/abhisek/studiz/internal/examgen"
	"github.com/abhisek/studiz/internal/grading"
	"github.com/abhisek/studiz/internal/router"
	"github.com/abhisek/studiz/internal/screen"
	"github.com/abhisek/studiz/internal/screens/results"
	"github.com/abhisek/studiz/internal/store"
	"github.com/abhisek/studiz/internal/ui/components"
	"github.com/abhisek/studiz/internal/ui/layout"
	"github.com/abhisek/studiz/internal/weakness"
)

type phase int

const (
	phaseLoading phase = iota
	phaseActive
	phaseGrading
)

// ExamScreen runs one timed assessment over a deck: generation, timed
// answering, grading, then hands off to the results screen.
type ExamScreen struct {
	deck     store.Deck
	gen      examgen.Generator
	grader   *grading.ExamGrader
	analyzer *weakness.Analyzer
	exams    store.ExamRepo
	cfg      config.ExamConfig

	// retryFrom, when set, is an already running session from a retry;
	// generation is skipped.
	retryFrom *assess.Session

	// weakTopics biases question generation toward areas a previous
	// analysis flagged.
	weakTopics []string

	phase       phase
	session     *assess.Session
	index       int
	input       components.TextInput
	mc          components.MultiChoice
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.EscHandler = (*ExamScreen)(nil)

// New creates an exam screen for the given deck.
func New(d store.Deck, gen examgen.Generator, grader *grading.ExamGrader, analyzer *weakness.Analyzer, exams store.ExamRepo, cfg config.ExamConfig) *ExamScreen {
	return &ExamScreen{
		deck:     d,
		gen:      gen,
		grader:   grader,
		analyzer: analyzer,
		exams:    exams,
		cfg:      cfg,
		input:    components.NewTextInput("Type your answer...", false, 0),
	}
}

// NewPractice creates an exam screen whose generation drills the given
// weak topics.
func NewPractice(d store.Deck, gen examgen.Generator, grader *grading.ExamGrader, analyzer *weakness.Analyzer, exams store.ExamRepo, cfg config.ExamConfig, topics []string) *ExamScreen {
	s := New(d, gen, grader, analyzer, exams, cfg)
	s.weakTopics = topics
	return s
}

// NewRetry creates an exam screen over a fresh retry of a finished
// session: same questions, reset answers and timer.
func NewRetry(d store.Deck, prior *assess.Session, gen examgen.Generator, grader *grading.ExamGrader, analyzer *weakness.Analyzer, exams store.ExamRepo, cfg config.ExamConfig) *ExamScreen {
	return &ExamScreen{
		deck:      d,
		gen:       gen,
		grader:    grader,
		analyzer:  analyzer,
		exams:     exams,
		cfg:       cfg,
		retryFrom: prior.Retry(),
		input:     components.NewTextInput("Type your answer...", false, 0),
	}
}

func (s *ExamScreen) Init() tea.Cmd {
	if s.retryFrom != nil {
		s.session = s.retryFrom
		s.phase = phaseActive
		s.loadAnswerIntoInput()
		return tea.Batch(s.input.Init(), tickCmd())
	}
	return s.generateQuestions()
}

func (s *ExamScreen) Title() string {
	return "Exam · " + s.deck.Name
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{
			{Key: "Enter", Description: "Try again"},
			{Key: "Esc", Description: "Back"},
		}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon exam"},
			{Key: "N", Description: "Keep going"},
		}
	case s.phase == phaseActive:
		return []layout.KeyHint{
			{Key: "←/→", Description: "Question"},
			{Key: "Ctrl+S", Description: "Submit exam"},
			{Key: "Esc", Description: "Abandon"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
}

// HandlesEsc keeps Esc on this screen while an exam is running so the
// abandon confirmation can intervene.
func (s *ExamScreen) HandlesEsc() bool {
	return s.errMsg == "" && (s.phase == phaseActive || s.confirmQuit)
}

func (s *ExamScreen) duration(count int) time.Duration {
	if s.cfg.DurationMins > 0 {
		return time.Duration(s.cfg.DurationMins) * time.Minute
	}
	return examgen.DurationFor(count)
}

func (s *ExamScreen) generateQuestions() tea.Cmd {
	count := s.cfg.QuestionCount
	material := s.deck.Material
	gen := s.gen
	topics := s.weakTopics
	return func() tea.Msg {
		qs, err := gen.Generate(context.Background(), examgen.Input{
			Content:    material,
			Type:       examgen.Mix,
			Count:      count,
			WeakTopics: topics,
		})
		return questionsReadyMsg{Questions: qs, Err: err}
	}
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsReadyMsg:
		return s.handleQuestionsReady(msg)

	case timerTickMsg:
		return s.handleTick(time.Time(msg))

	case gradedMsg:
		return s.handleGraded(msg)

	case recordSavedMsg:
		// Persistence failures do not block the flow.
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseActive && !s.confirmQuit && s.currentQuestion().Type == assess.TypeShortAnswer {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ExamScreen) handleQuestionsReady(msg questionsReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.session = assess.NewSession(assess.SystemClock{})
	if err := s.session.Begin(msg.Questions, s.duration(len(msg.Questions))); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.phase = phaseActive
	s.loadAnswerIntoInput()
	return s, tea.Batch(s.input.Init(), tickCmd())
}

func (s *ExamScreen) handleTick(now time.Time) (screen.Screen, tea.Cmd) {
	if s.session == nil || s.phase != phaseActive {
		return s, nil
	}
	if s.session.Tick(now) {
		return s, tickCmd()
	}
	// The timer expired and forced a submit, or the session left
	// InProgress some other way. Grade if it reached Grading.
	if s.session.Status() == assess.StatusGrading {
		return s.startGrading()
	}
	return s, nil
}

func (s *ExamScreen) startGrading() (screen.Screen, tea.Cmd) {
	s.phase = phaseGrading
	session := s.session
	grader := s.grader
	scale := s.scale()
	return s, func() tea.Msg {
		outcome, err := grader.Grade(context.Background(), session, scale)
		return gradedMsg{Outcome: outcome, Err: err}
	}
}

func (s *ExamScreen) scale() assess.GradeScale {
	if len(s.cfg.GradeScale) > 0 {
		return s.cfg.GradeScale
	}
	return assess.DefaultGradeScale()
}

func (s *ExamScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	params := results.Params{
		Deck:     s.deck,
		Session:  s.session,
		Outcome:  msg.Outcome,
		Analyzer: s.analyzer,
		Retry: func() screen.Screen {
			return NewRetry(s.deck, s.session, s.gen, s.grader, s.analyzer, s.exams, s.cfg)
		},
	}
	if s.gen != nil {
		params.Practice = func(topics []string) screen.Screen {
			return NewPractice(s.deck, s.gen, s.grader, s.analyzer, s.exams, s.cfg, topics)
		}
	}

	saveCmd := s.saveRecord("completed")
	pushCmd := func() tea.Msg {
		return router.PushScreenMsg{Screen: results.New(params)}
	}
	return s, tea.Batch(saveCmd, pushCmd)
}

func (s *ExamScreen) saveRecord(status string) tea.Cmd {
	session := s.session
	exams := s.exams
	deckID := s.deck.ID
	return func() tea.Msg {
		rec := store.ExamRecord{
			ID:            session.ID,
			DeckID:        deckID,
			Status:        status,
			QuestionCount: len(session.Questions),
			DurationSecs:  int(session.Duration.Seconds()),
			StartedAt:     session.StartedAt,
		}
		if status == "completed" {
			rec.SubmittedAt = session.StartedAt.Add(session.Elapsed())
			if score, ok := session.FinalScore(); ok {
				rec.TotalMarks = score.TotalMarks
				rec.MaxMarks = score.MaxMarks
				rec.Percentage = score.Percentage
				rec.Grade = score.Grade
			}
		}
		return recordSavedMsg{Err: exams.Save(context.Background(), rec)}
	}
}

func (s *ExamScreen) currentQuestion() assess.Question {
	if s.session == nil || len(s.session.Questions) == 0 {
		return assess.Question{}
	}
	return s.session.Questions[s.index]
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		switch key {
		case "enter", "r":
			// Generation and grading failures are both retryable.
			s.errMsg = ""
			if s.phase == phaseGrading && s.session != nil && s.session.Status() == assess.StatusGrading {
				return s.startGrading()
			}
			if s.phase == phaseLoading {
				return s, s.generateQuestions()
			}
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			if s.session != nil && s.session.Abandon() {
				return s, tea.Batch(
					s.saveRecord("abandoned"),
					func() tea.Msg { return router.PopScreenMsg{} },
				)
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.phase != phaseActive {
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "ctrl+s":
		if s.session.Submit() {
			return s.startGrading()
		}
		return s, nil
	case "left", "shift+tab":
		s.storeCurrentAnswer()
		if s.index > 0 {
			s.index--
			s.loadAnswerIntoInput()
		}
		return s, nil
	case "right", "tab":
		s.storeCurrentAnswer()
		if s.index < len(s.session.Questions)-1 {
			s.index++
			s.loadAnswerIntoInput()
		}
		return s, nil
	}

	q := s.currentQuestion()
	switch q.Type {
	case assess.TypeMultipleChoice:
		switch key {
		case "up", "k", "down", "j":
			s.mc, _ = s.mc.Update(msg)
		case "1", "2", "3", "4":
			idx := int(key[0] - '1')
			if idx < len(q.Options) {
				s.mc.Selected = idx
			}
		case "enter":
			s.recordAnswer(q.ID, q.Options[s.mc.Selected])
			return s.advance()
		}
		return s, nil

	case assess.TypeTrueFalse:
		switch key {
		case "t", "T":
			s.recordAnswer(q.ID, "True")
			return s.advance()
		case "f", "F":
			s.recordAnswer(q.ID, "False")
			return s.advance()
		}
		return s, nil

	default: // short answer
		if key == "enter" {
			s.storeCurrentAnswer()
			return s.advance()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
}

func (s *ExamScreen) recordAnswer(id int, value string) {
	// Expiry races surface via the next tick; a rejected write here is
	// dropped silently.
	_ = s.session.RecordAnswer(id, value)
}

func (s *ExamScreen) storeCurrentAnswer() {
	q := s.currentQuestion()
	if q.Type == assess.TypeShortAnswer {
		if v := strings.TrimSpace(s.input.Value()); v != "" {
			s.recordAnswer(q.ID, v)
		}
	}
}

// advance moves to the next question, or stays on the last one.
func (s *ExamScreen) advance() (screen.Screen, tea.Cmd) {
	if s.index < len(s.session.Questions)-1 {
		s.index++
		s.loadAnswerIntoInput()
	}
	return s, nil
}

// loadAnswerIntoInput seeds the input and selection state from any
// previously captured answer for the now current question.
func (s *ExamScreen) loadAnswerIntoInput() {
	q := s.currentQuestion()
	answer, _ := s.session.Answer(q.ID)

	s.input = components.NewTextInput("Type your answer...", false, 0)

	switch q.Type {
	case assess.TypeMultipleChoice:
		s.mc = components.NewMultiChoice("", q.Options, correctIndex(q))
		for i, opt := range q.Options {
			if opt == answer {
				s.mc.Selected = i
				break
			}
		}
	case assess.TypeShortAnswer:
		s.input.Model.SetValue(answer)
	}
}

// correctIndex finds the option matching the generated answer key, or
// -1 when none matches.
func correctIndex(q assess.Question) int {
	for i, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
