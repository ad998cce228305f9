package exam

import (
	"time"

	assess "github.com/abhisek/studiz/internal/exam"
	"github.com/abhisek/studiz/internal/grading"
)

// questionsReadyMsg is sent when question generation finishes.
type questionsReadyMsg struct {
	Questions []assess.Question
	Err       error
}

// timerTickMsg is sent every second to drive the countdown and expiry.
type timerTickMsg time.Time

// gradedMsg is sent when the whole session has been graded.
type gradedMsg struct {
	Outcome *grading.Outcome
	Err     error
}

// recordSavedMsg is sent when the session record has been persisted.
type recordSavedMsg struct {
	Err error
}
