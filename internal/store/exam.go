package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ExamRecord is the persisted summary of one assessment session.
// Abandoned sessions are recorded too, without a submitted_at or score.
type ExamRecord struct {
	ID            string
	DeckID        string
	Status        string
	QuestionCount int
	DurationSecs  int
	StartedAt     time.Time
	SubmittedAt   time.Time // zero when the session was abandoned
	TotalMarks    float64
	MaxMarks      float64
	Percentage    int
	Grade         string
}

// ExamRepo manages assessment session records.
type ExamRepo interface {
	// Save stores a finished session record. Saving the same id again
	// replaces the earlier record, so a session persisted on abandon can
	// be upgraded when it is later completed through a retry chain.
	Save(ctx context.Context, rec ExamRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]ExamRecord, error)

	// ByDeck returns the deck's records, newest first.
	ByDeck(ctx context.Context, deckID string) ([]ExamRecord, error)
}

type examRepo struct {
	db *sql.DB
}

func (r *examRepo) Save(ctx context.Context, rec ExamRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO exam_sessions
		 (id, deck_id, status, question_count, duration_secs,
		  started_at, submitted_at, total_marks, max_marks, percentage, grade)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.DeckID, rec.Status, rec.QuestionCount, rec.DurationSecs,
		rec.StartedAt, nullableTime(rec.SubmittedAt),
		rec.TotalMarks, rec.MaxMarks, rec.Percentage, rec.Grade,
	)
	if err != nil {
		return fmt.Errorf("save exam session %s: %w", rec.ID, err)
	}
	return nil
}

func (r *examRepo) Recent(ctx context.Context, limit int) ([]ExamRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, deck_id, status, question_count, duration_secs,
		        started_at, submitted_at, total_marks, max_marks, percentage, grade
		 FROM exam_sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent exam sessions: %w", err)
	}
	defer rows.Close()
	return scanExamRecords(rows)
}

func (r *examRepo) ByDeck(ctx context.Context, deckID string) ([]ExamRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, deck_id, status, question_count, duration_secs,
		        started_at, submitted_at, total_marks, max_marks, percentage, grade
		 FROM exam_sessions WHERE deck_id = ? ORDER BY started_at DESC`, deckID,
	)
	if err != nil {
		return nil, fmt.Errorf("exam sessions for deck %s: %w", deckID, err)
	}
	defer rows.Close()
	return scanExamRecords(rows)
}

func scanExamRecords(rows *sql.Rows) ([]ExamRecord, error) {
	var recs []ExamRecord
	for rows.Next() {
		var rec ExamRecord
		var submitted sql.NullTime
		err := rows.Scan(
			&rec.ID, &rec.DeckID, &rec.Status, &rec.QuestionCount, &rec.DurationSecs,
			&rec.StartedAt, &submitted,
			&rec.TotalMarks, &rec.MaxMarks, &rec.Percentage, &rec.Grade,
		)
		if err != nil {
			return nil, fmt.Errorf("scan exam session row: %w", err)
		}
		if submitted.Valid {
			rec.SubmittedAt = submitted.Time
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
