package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/studiz/internal/srs"
)

// Deck is a named collection of flashcards on a topic. Material is the
// raw study content the deck was generated from; exams and tutoring
// reuse it as context.
type Deck struct {
	ID        string
	Name      string
	Topic     string
	Material  string
	CreatedAt time.Time
}

// DeckRepo manages decks and deck-level operations.
type DeckRepo interface {
	// Create stores a new deck.
	Create(ctx context.Context, d *Deck) error

	// Get returns the deck with the given id, or nil if it doesn't exist.
	Get(ctx context.Context, id string) (*Deck, error)

	// List returns all decks ordered by creation time.
	List(ctx context.Context) ([]Deck, error)

	// Delete removes a deck and, via the foreign key cascade, its cards.
	Delete(ctx context.Context, id string) error

	// Clone copies the deck's cards into a new deck with scheduling
	// state reset to fresh (due now, default ease).
	Clone(ctx context.Context, sourceID string, clone *Deck, now time.Time) error
}

type deckRepo struct {
	db *sql.DB
}

func (r *deckRepo) Create(ctx context.Context, d *Deck) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO decks (id, name, topic, material, created_at) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Topic, d.Material, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deck %s: %w", d.ID, err)
	}
	return nil
}

func (r *deckRepo) Get(ctx context.Context, id string) (*Deck, error) {
	var d Deck
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, topic, material, created_at FROM decks WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &d.Topic, &d.Material, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get deck %s: %w", id, err)
	}
	return &d, nil
}

func (r *deckRepo) List(ctx context.Context) ([]Deck, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, topic, material, created_at FROM decks ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	var decks []Deck
	for rows.Next() {
		var d Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.Topic, &d.Material, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deck row: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

func (r *deckRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete deck %s: %w", id, err)
	}
	return nil
}

func (r *deckRepo) Clone(ctx context.Context, sourceID string, clone *Deck, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clone tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO decks (id, name, topic, material, created_at) VALUES (?, ?, ?, ?, ?)`,
		clone.ID, clone.Name, clone.Topic, clone.Material, clone.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert clone deck: %w", err)
	}

	// Copy the cards with fresh scheduling: due now, default ease,
	// one-day interval, zero repetitions, never reviewed. Clone card
	// ids are derived from the new deck id to stay unique.
	fresh := srs.NewState(now)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO cards (id, deck_id, front, back, topic,
		                    ease_factor, interval_days, repetitions, next_review, last_reviewed)
		 SELECT ? || ':' || id, ?, front, back, topic, ?, ?, ?, ?, NULL
		 FROM cards WHERE deck_id = ? ORDER BY rowid`,
		clone.ID, clone.ID,
		fresh.EaseFactor, fresh.IntervalDays, fresh.Repetitions, fresh.NextReview,
		sourceID,
	)
	if err != nil {
		return fmt.Errorf("copy cards: %w", err)
	}

	return tx.Commit()
}
