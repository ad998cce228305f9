package srs

import (
	"sort"
	"time"
)

// DueCards filters cards down to those due at the given time and orders
// them earliest-overdue first. Ties on NextReview keep the input order,
// so bulk-created cards come back in insertion order.
func DueCards(cards []Card, now time.Time) []Card {
	var due []Card
	for _, c := range cards {
		if c.State.Due(now) {
			due = append(due, c)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].State.NextReview.Before(due[j].State.NextReview)
	})

	return due
}

// CountDue returns the number of due cards without building the queue.
func CountDue(cards []Card, now time.Time) int {
	n := 0
	for _, c := range cards {
		if c.State.Due(now) {
			n++
		}
	}
	return n
}
