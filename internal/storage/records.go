package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/todoplus/internal/models"
)

// GetRecordValue returns the current best for one user/exercise/type
// triple, or nil when no record exists yet.
func (db *DB) GetRecordValue(ctx context.Context, userID, exerciseID uuid.UUID, prType string) (*float64, error) {
	var v float64
	err := db.Pool.QueryRow(ctx,
		`SELECT value FROM personal_records
		 WHERE user_id = $1 AND exercise_id = $2 AND pr_type = $3`,
		userID, exerciseID, prType).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying record: %w", err)
	}
	return &v, nil
}

// UpsertRecord stores a new best for the triple, preserving the previous
// value on overwrite.
func (db *DB) UpsertRecord(ctx context.Context, rec *models.PersonalRecord) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO personal_records (id, user_id, exercise_id, pr_type, value, reps, session_id, achieved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id, exercise_id, pr_type) DO UPDATE SET
			previous_value = personal_records.value,
			value = EXCLUDED.value,
			reps = EXCLUDED.reps,
			session_id = EXCLUDED.session_id,
			achieved_at = EXCLUDED.achieved_at`,
		rec.ID, rec.UserID, rec.ExerciseID, rec.PRType, rec.Value, rec.Reps,
		rec.SessionID, rec.AchievedAt)
	if err != nil {
		return fmt.Errorf("upserting record: %w", err)
	}
	return nil
}

// ListRecords retrieves the user's personal records, optionally filtered by
// exercise, most recent first.
func (db *DB) ListRecords(ctx context.Context, userID uuid.UUID, exerciseID *uuid.UUID) ([]models.PersonalRecord, error) {
	q := `SELECT pr.id, pr.user_id, pr.exercise_id, e.name, pr.pr_type, pr.value,
		 pr.reps, pr.session_id, pr.previous_value, pr.achieved_at
		 FROM personal_records pr
		 JOIN exercises e ON e.id = pr.exercise_id
		 WHERE pr.user_id = $1`
	args := []any{userID}
	if exerciseID != nil {
		q += ` AND pr.exercise_id = $2`
		args = append(args, *exerciseID)
	}
	q += ` ORDER BY pr.achieved_at DESC`

	rows, err := db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	records := []models.PersonalRecord{}
	for rows.Next() {
		var r models.PersonalRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.ExerciseID, &r.ExerciseName,
			&r.PRType, &r.Value, &r.Reps, &r.SessionID, &r.PreviousValue,
			&r.AchievedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountRecords returns the user's total number of personal records.
func (db *DB) CountRecords(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM personal_records WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// CountRecordsSince counts records achieved at or after the given instant.
func (db *DB) CountRecordsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var n int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM personal_records WHERE user_id = $1 AND achieved_at >= $2`,
		userID, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// ExerciseSetHistory returns the user's logged sets for one exercise,
// newest first, for the progress history view.
func (db *DB) ExerciseSetHistory(ctx context.Context, userID, exerciseID uuid.UUID, limit int) ([]models.SetHistoryEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT es.id, s.id, es.set_number, es.reps_completed, es.weight_kg,
		 es.rpe, es.is_pr, es.completed_at
		 FROM exercise_sets es
		 JOIN session_exercises se ON se.id = es.session_exercise_id
		 JOIN workout_sessions s ON s.id = se.session_id
		 WHERE s.user_id = $1 AND se.exercise_id = $2 AND NOT es.is_warmup
		 ORDER BY es.completed_at DESC
		 LIMIT $3`, userID, exerciseID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying set history: %w", err)
	}
	defer rows.Close()

	entries := []models.SetHistoryEntry{}
	for rows.Next() {
		var e models.SetHistoryEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.SetNumber, &e.RepsCompleted,
			&e.WeightKg, &e.RPE, &e.IsPR, &e.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning set history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
