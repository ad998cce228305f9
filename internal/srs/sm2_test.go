package srs

import (
	"errors"
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestReview_FailureResetsRepetitionsAndInterval(t *testing.T) {
	start := State{EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2}

	for quality := 0; quality <= 2; quality++ {
		next, err := Review(start, quality, testNow)
		if err != nil {
			t.Fatalf("quality %d: unexpected error: %v", quality, err)
		}
		if next.Repetitions != 0 {
			t.Errorf("quality %d: Repetitions = %d, want 0", quality, next.Repetitions)
		}
		if next.IntervalDays != 1 {
			t.Errorf("quality %d: IntervalDays = %d, want 1", quality, next.IntervalDays)
		}
		if next.EaseFactor >= start.EaseFactor {
			t.Errorf("quality %d: ease did not decrease (%v)", quality, next.EaseFactor)
		}
	}
}

func TestReview_SuccessLadder(t *testing.T) {
	// First successful review of a new card: repetitions 0 -> 1, interval 1.
	s := State{EaseFactor: 2.5, IntervalDays: 1, Repetitions: 0}
	s, err := Review(s, 4, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if s.Repetitions != 1 || s.IntervalDays != 1 {
		t.Fatalf("after first review: reps=%d interval=%d, want 1/1", s.Repetitions, s.IntervalDays)
	}
	// quality 4: ease + 0.1 - 1*(0.08+0.02) = unchanged 2.5
	if math.Abs(s.EaseFactor-2.5) > 1e-9 {
		t.Errorf("ease = %v, want 2.5", s.EaseFactor)
	}
	wantNext := testNow.AddDate(0, 0, 1)
	if !s.NextReview.Equal(wantNext) {
		t.Errorf("NextReview = %v, want %v", s.NextReview, wantNext)
	}

	// Second success: repetitions 2, interval 6.
	s, err = Review(s, 4, testNow.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if s.Repetitions != 2 || s.IntervalDays != 6 {
		t.Fatalf("after second review: reps=%d interval=%d, want 2/6", s.Repetitions, s.IntervalDays)
	}

	// Third success: interval = round(6 * 2.5) = 15.
	s, err = Review(s, 4, testNow.AddDate(0, 0, 7))
	if err != nil {
		t.Fatal(err)
	}
	if s.Repetitions != 3 || s.IntervalDays != 15 {
		t.Fatalf("after third review: reps=%d interval=%d, want 3/15", s.Repetitions, s.IntervalDays)
	}
}

func TestReview_FailureAfterStreak(t *testing.T) {
	s := State{EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2}
	next, err := Review(s, 2, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if next.Repetitions != 0 {
		t.Errorf("Repetitions = %d, want 0", next.Repetitions)
	}
	if next.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", next.IntervalDays)
	}
	// quality 2: ease + 0.1 - 3*(0.08+3*0.02) = 2.5 - 0.32 = 2.18
	if math.Abs(next.EaseFactor-2.18) > 1e-9 {
		t.Errorf("ease = %v, want 2.18", next.EaseFactor)
	}
}

func TestReview_EaseNeverBelowFloor(t *testing.T) {
	s := State{EaseFactor: 2.5, IntervalDays: 1, Repetitions: 0}
	for i := 0; i < 20; i++ {
		var err error
		s, err = Review(s, 0, testNow.AddDate(0, 0, i))
		if err != nil {
			t.Fatal(err)
		}
		if s.EaseFactor < MinEase {
			t.Fatalf("iteration %d: ease %v dropped below %v", i, s.EaseFactor, MinEase)
		}
	}
	if s.EaseFactor != MinEase {
		t.Errorf("ease = %v, want floor %v after repeated failures", s.EaseFactor, MinEase)
	}
}

func TestReview_EaseUpdateAppliesOnBothPaths(t *testing.T) {
	fail, err := Review(State{EaseFactor: 2.0, IntervalDays: 3, Repetitions: 1}, 0, testNow)
	if err != nil {
		t.Fatal(err)
	}
	// quality 0: 2.0 + 0.1 - 5*(0.08+5*0.02) = 2.1 - 0.9 = 1.3 (floor not hit)
	if math.Abs(fail.EaseFactor-1.3) > 1e-9 {
		t.Errorf("failure path ease = %v, want 1.3", fail.EaseFactor)
	}

	success, err := Review(State{EaseFactor: 2.0, IntervalDays: 3, Repetitions: 1}, 5, testNow)
	if err != nil {
		t.Fatal(err)
	}
	// quality 5: 2.0 + 0.1 = 2.1
	if math.Abs(success.EaseFactor-2.1) > 1e-9 {
		t.Errorf("success path ease = %v, want 2.1", success.EaseFactor)
	}
}

func TestReview_RejectsOutOfRangeQuality(t *testing.T) {
	s := State{EaseFactor: 2.5, IntervalDays: 1, Repetitions: 0}

	for _, quality := range []int{-1, 6, 100} {
		_, err := Review(s, quality, testNow)
		if err == nil {
			t.Fatalf("quality %d: expected error", quality)
		}
		var ire *InvalidRatingError
		if !errors.As(err, &ire) {
			t.Fatalf("quality %d: error type %T, want *InvalidRatingError", quality, err)
		}
		if ire.Quality != quality {
			t.Errorf("error quality = %d, want %d", ire.Quality, quality)
		}
	}
}

func TestReview_DeterministicAndTotal(t *testing.T) {
	s := State{EaseFactor: 1.7, IntervalDays: 4, Repetitions: 3}
	for quality := MinQuality; quality <= MaxQuality; quality++ {
		a, err := Review(s, quality, testNow)
		if err != nil {
			t.Fatalf("quality %d: %v", quality, err)
		}
		b, err := Review(s, quality, testNow)
		if err != nil {
			t.Fatalf("quality %d: %v", quality, err)
		}
		if a != b {
			t.Errorf("quality %d: Review not deterministic: %+v vs %+v", quality, a, b)
		}
		if a.IntervalDays < 1 {
			t.Errorf("quality %d: interval %d < 1", quality, a.IntervalDays)
		}
	}
}

func TestNewState_DueImmediately(t *testing.T) {
	s := NewState(testNow)
	if !s.Due(testNow) {
		t.Error("new card should be due immediately")
	}
	if s.EaseFactor != DefaultEase {
		t.Errorf("ease = %v, want %v", s.EaseFactor, DefaultEase)
	}
	if s.IntervalDays != 1 || s.Repetitions != 0 {
		t.Errorf("interval/reps = %d/%d, want 1/0", s.IntervalDays, s.Repetitions)
	}
	if !s.LastReviewed.IsZero() {
		t.Error("LastReviewed should be zero for a new card")
	}
}
