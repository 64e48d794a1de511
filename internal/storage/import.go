package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/todoplus/internal/fitness"
)

// HistorySession is one workout reconstructed from an export file, ready
// to be inserted as a completed session.
type HistorySession struct {
	Name            string
	Date            time.Time
	DurationMinutes *int
	Exercises       []HistoryExercise
}

// HistoryExercise groups the sets of one movement within a history session.
type HistoryExercise struct {
	Name string
	Sets []HistorySet
}

// HistorySet is one logged set from an export.
type HistorySet struct {
	SetNumber int
	Reps      int
	WeightKg  float64
	RPE       *float64
}

// ImportSession inserts one historical workout as a completed session.
// Exercises are matched to the library by exact name; unmatched names are
// returned so the caller can report them. Returns the imported work-set
// volume in kg.
func (db *DB) ImportSession(ctx context.Context, userID uuid.UUID, hs HistorySession) (float64, []string, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback(ctx)

	sessionID := uuid.New()
	var notes *string
	if hs.Name != "" {
		n := "Imported: " + hs.Name
		notes = &n
	}

	var volume float64
	var totalSets, totalReps int
	var unmatched []string

	type pending struct {
		exerciseID uuid.UUID
		sets       []HistorySet
	}
	var matched []pending

	for _, ex := range hs.Exercises {
		var exerciseID uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM exercises WHERE name = $1`, ex.Name).Scan(&exerciseID)
		if errors.Is(err, pgx.ErrNoRows) {
			unmatched = append(unmatched, ex.Name)
			continue
		}
		if err != nil {
			return 0, nil, fmt.Errorf("matching exercise %q: %w", ex.Name, err)
		}
		matched = append(matched, pending{exerciseID: exerciseID, sets: ex.Sets})
		for _, set := range ex.Sets {
			volume += fitness.SetVolume(set.WeightKg, set.Reps)
			totalSets++
			totalReps += set.Reps
		}
	}
	if len(matched) == 0 {
		return 0, unmatched, nil
	}

	end := hs.Date
	if hs.DurationMinutes != nil {
		end = hs.Date.Add(time.Duration(*hs.DurationMinutes) * time.Minute)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO workout_sessions (id, user_id, session_date, start_time, end_time,
		 duration_minutes, total_volume_kg, total_sets, total_reps, is_completed, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, $10)`,
		sessionID, userID, hs.Date, hs.Date, end, hs.DurationMinutes,
		volume, totalSets, totalReps, notes)
	if err != nil {
		return 0, nil, fmt.Errorf("inserting imported session: %w", err)
	}

	for i, p := range matched {
		seID := uuid.New()
		_, err = tx.Exec(ctx,
			`INSERT INTO session_exercises (id, session_id, exercise_id, exercise_order)
			 VALUES ($1, $2, $3, $4)`,
			seID, sessionID, p.exerciseID, i+1)
		if err != nil {
			return 0, nil, fmt.Errorf("inserting imported exercise: %w", err)
		}
		for _, set := range p.sets {
			_, err = tx.Exec(ctx,
				`INSERT INTO exercise_sets (id, session_exercise_id, set_number,
				 reps_completed, weight_kg, rpe, completed_at)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				uuid.New(), seID, set.SetNumber, set.Reps, set.WeightKg, set.RPE, hs.Date)
			if err != nil {
				return 0, nil, fmt.Errorf("inserting imported set: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, nil, fmt.Errorf("committing import: %w", err)
	}
	return volume, unmatched, nil
}
