package srs

import "time"

// Card is one memorized item in a deck together with its scheduling state.
// Cards are created when a deck is populated and mutated only through
// Review; everything else treats them as read-only.
type Card struct {
	ID     string
	DeckID string
	Front  string
	Back   string
	Topic  string
	State  State
}

// State is the SM-2 scheduling state for a card. NextReview is always
// derivable from {EaseFactor, IntervalDays, Repetitions} plus the time of
// the last rating; there is no hidden state.
type State struct {
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
	NextReview   time.Time
	LastReviewed time.Time // zero until the first review
}

// NewState returns the scheduling state for a freshly created card:
// due immediately, default ease, one-day interval.
func NewState(now time.Time) State {
	return State{
		EaseFactor:   DefaultEase,
		IntervalDays: 1,
		Repetitions:  0,
		NextReview:   now,
	}
}

// Due reports whether the card is due for review at the given time.
func (s State) Due(now time.Time) bool {
	return !s.NextReview.After(now)
}
