package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhisek/studiz/internal/srs"
)

// CardRepo manages flashcards and their scheduling state.
type CardRepo interface {
	// Insert stores a single card.
	Insert(ctx context.Context, c srs.Card) error

	// BulkInsert stores a batch of cards in one transaction.
	BulkInsert(ctx context.Context, cards []srs.Card) error

	// ByDeck returns the deck's cards in insertion order.
	ByDeck(ctx context.Context, deckID string) ([]srs.Card, error)

	// UpdateSchedule writes a card's scheduling state. The full state is
	// replaced in a single statement so a review is atomic.
	UpdateSchedule(ctx context.Context, cardID string, st srs.State) error

	// CountDue returns the number of cards due at the given time, across
	// all decks.
	CountDue(ctx context.Context, now time.Time) (int, error)

	// CountDueByDeck returns the number of due cards in one deck.
	CountDueByDeck(ctx context.Context, deckID string, now time.Time) (int, error)
}

type cardRepo struct {
	db *sql.DB
}

const insertCardSQL = `INSERT INTO cards
	(id, deck_id, front, back, topic,
	 ease_factor, interval_days, repetitions, next_review, last_reviewed)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (r *cardRepo) Insert(ctx context.Context, c srs.Card) error {
	_, err := r.db.ExecContext(ctx, insertCardSQL, insertCardArgs(c)...)
	if err != nil {
		return fmt.Errorf("insert card %s: %w", c.ID, err)
	}
	return nil
}

func (r *cardRepo) BulkInsert(ctx context.Context, cards []srs.Card) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk insert tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertCardSQL)
	if err != nil {
		return fmt.Errorf("prepare card insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cards {
		if _, err := stmt.ExecContext(ctx, insertCardArgs(c)...); err != nil {
			return fmt.Errorf("insert card %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}

func (r *cardRepo) ByDeck(ctx context.Context, deckID string) ([]srs.Card, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, deck_id, front, back, topic,
		        ease_factor, interval_days, repetitions, next_review, last_reviewed
		 FROM cards WHERE deck_id = ? ORDER BY rowid`, deckID,
	)
	if err != nil {
		return nil, fmt.Errorf("cards for deck %s: %w", deckID, err)
	}
	defer rows.Close()

	var cards []srs.Card
	for rows.Next() {
		var c srs.Card
		var lastReviewed sql.NullTime
		err := rows.Scan(
			&c.ID, &c.DeckID, &c.Front, &c.Back, &c.Topic,
			&c.State.EaseFactor, &c.State.IntervalDays, &c.State.Repetitions,
			&c.State.NextReview, &lastReviewed,
		)
		if err != nil {
			return nil, fmt.Errorf("scan card row: %w", err)
		}
		if lastReviewed.Valid {
			c.State.LastReviewed = lastReviewed.Time
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *cardRepo) UpdateSchedule(ctx context.Context, cardID string, st srs.State) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cards
		 SET ease_factor = ?, interval_days = ?, repetitions = ?,
		     next_review = ?, last_reviewed = ?
		 WHERE id = ?`,
		st.EaseFactor, st.IntervalDays, st.Repetitions,
		st.NextReview, nullableTime(st.LastReviewed), cardID,
	)
	if err != nil {
		return fmt.Errorf("update schedule for card %s: %w", cardID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update schedule: card %s not found", cardID)
	}
	return nil
}

func (r *cardRepo) CountDue(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE next_review <= ?`, now,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count due cards: %w", err)
	}
	return n, nil
}

func (r *cardRepo) CountDueByDeck(ctx context.Context, deckID string, now time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cards WHERE deck_id = ? AND next_review <= ?`, deckID, now,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count due cards for deck %s: %w", deckID, err)
	}
	return n, nil
}

func insertCardArgs(c srs.Card) []any {
	return []any{
		c.ID, c.DeckID, c.Front, c.Back, c.Topic,
		c.State.EaseFactor, c.State.IntervalDays, c.State.Repetitions,
		c.State.NextReview, nullableTime(c.State.LastReviewed),
	}
}

func nullableTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
