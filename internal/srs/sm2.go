package srs

import (
	"fmt"
	"math"
	"time"
)

const (
	// MinQuality and MaxQuality bound the recall rating scale.
	MinQuality = 0
	MaxQuality = 5

	// SuccessThreshold is the lowest quality that counts as a
	// successful recall.
	SuccessThreshold = 3

	// MinEase is the floor for the ease factor. Without it a long run
	// of failures would shrink every future interval toward zero.
	MinEase = 1.3

	// DefaultEase is the ease factor assigned to new cards.
	DefaultEase = 2.5
)

// InvalidRatingError reports a quality rating outside [MinQuality, MaxQuality].
// Out-of-range ratings are rejected rather than clamped: clamping would feed
// a fabricated quality into the ease formula.
type InvalidRatingError struct {
	Quality int
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("quality rating %d outside [%d,%d]", e.Quality, MinQuality, MaxQuality)
}

// Review applies one quality rating to a scheduling state and returns the
// next state. It is a pure function: same inputs, same output, no clock
// reads. The SM-2 rules:
//
//   - success (quality >= 3): repetitions increments; interval follows the
//     1 / 6 / round(interval*ease) ladder by the new repetition count
//   - failure (quality < 3): repetitions resets to 0, interval to 1 day
//   - the ease factor update applies on both paths, floored at MinEase
func Review(s State, quality int, now time.Time) (State, error) {
	if quality < MinQuality || quality > MaxQuality {
		return State{}, &InvalidRatingError{Quality: quality}
	}

	next := s

	if quality >= SuccessThreshold {
		next.Repetitions = s.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(s.IntervalDays) * s.EaseFactor))
		}
	} else {
		next.Repetitions = 0
		next.IntervalDays = 1
	}

	miss := float64(MaxQuality - quality)
	ease := s.EaseFactor + 0.1 - miss*(0.08+miss*0.02)
	if ease < MinEase {
		ease = MinEase
	}
	next.EaseFactor = ease

	next.NextReview = now.AddDate(0, 0, next.IntervalDays)
	next.LastReviewed = now

	return next, nil
}
