package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/todoplus/internal/fitness"
	"github.com/meltforce/todoplus/internal/models"
)

// CreateSession starts a workout session. If routineID is set it must
// reference one of the user's routines.
func (db *DB) CreateSession(ctx context.Context, userID uuid.UUID, in models.SessionCreate) (*models.WorkoutSession, error) {
	var routineName *string
	if in.RoutineID != nil {
		r, err := db.GetRoutine(ctx, userID, *in.RoutineID)
		if err != nil {
			return nil, err
		}
		routineName = &r.Name
	}

	now := time.Now().UTC()
	s := &models.WorkoutSession{
		ID:          uuid.New(),
		UserID:      userID,
		RoutineID:   in.RoutineID,
		RoutineName: routineName,
		SessionDate: now.Truncate(24 * time.Hour),
		StartTime:   now,
		Notes:       in.Notes,
		Exercises:   []models.SessionExercise{},
	}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_sessions (id, user_id, routine_id, session_date, start_time, notes)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, userID, in.RoutineID, s.SessionDate, s.StartTime, in.Notes)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return s, nil
}

const sessionColumns = `s.id, s.user_id, s.routine_id, r.name, s.session_date,
	s.start_time, s.end_time, s.duration_minutes, s.total_volume_kg,
	s.total_sets, s.total_reps, s.is_completed, s.notes`

func scanSession(row pgx.Row) (*models.WorkoutSession, error) {
	var s models.WorkoutSession
	err := row.Scan(&s.ID, &s.UserID, &s.RoutineID, &s.RoutineName, &s.SessionDate,
		&s.StartTime, &s.EndTime, &s.DurationMinutes, &s.TotalVolumeKg,
		&s.TotalSets, &s.TotalReps, &s.IsCompleted, &s.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	s.Exercises = []models.SessionExercise{}
	return &s, nil
}

// GetSession retrieves one of the user's sessions with its exercises and sets.
func (db *DB) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*models.WorkoutSession, error) {
	s, err := scanSession(db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+`
		 FROM workout_sessions s
		 LEFT JOIN routines r ON r.id = s.routine_id
		 WHERE s.id = $1 AND s.user_id = $2`,
		sessionID, userID))
	if err != nil {
		return nil, err
	}
	if err := db.loadSessionExercises(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (db *DB) loadSessionExercises(ctx context.Context, s *models.WorkoutSession) error {
	rows, err := db.Pool.Query(ctx,
		`SELECT se.id, se.exercise_id, e.name, se.exercise_order, se.completed_at
		 FROM session_exercises se
		 JOIN exercises e ON e.id = se.exercise_id
		 WHERE se.session_id = $1
		 ORDER BY se.exercise_order`, s.ID)
	if err != nil {
		return fmt.Errorf("querying session exercises: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		var se models.SessionExercise
		if err := rows.Scan(&se.ID, &se.ExerciseID, &se.ExerciseName,
			&se.ExerciseOrder, &se.CompletedAt); err != nil {
			return fmt.Errorf("scanning session exercise: %w", err)
		}
		se.Sets = []models.ExerciseSet{}
		byID[se.ID] = len(s.Exercises)
		s.Exercises = append(s.Exercises, se)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(s.Exercises) == 0 {
		return nil
	}

	setRows, err := db.Pool.Query(ctx,
		`SELECT session_exercise_id, id, set_number, reps_completed, weight_kg,
		 rpe, is_warmup, is_failure, is_pr, completed_at, notes
		 FROM exercise_sets
		 WHERE session_exercise_id = ANY($1)
		 ORDER BY set_number`, keysOf(byID))
	if err != nil {
		return fmt.Errorf("querying sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var seID uuid.UUID
		var set models.ExerciseSet
		if err := setRows.Scan(&seID, &set.ID, &set.SetNumber, &set.RepsCompleted,
			&set.WeightKg, &set.RPE, &set.IsWarmup, &set.IsFailure, &set.IsPR,
			&set.CompletedAt, &set.Notes); err != nil {
			return fmt.Errorf("scanning set: %w", err)
		}
		i := byID[seID]
		s.Exercises[i].Sets = append(s.Exercises[i].Sets, set)
	}
	return setRows.Err()
}

func keysOf(m map[uuid.UUID]int) []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// ListSessions retrieves the user's sessions newest first, without the
// per-set detail.
func (db *DB) ListSessions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.WorkoutSession, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sessionColumns+`
		 FROM workout_sessions s
		 LEFT JOIN routines r ON r.id = s.routine_id
		 WHERE s.user_id = $1
		 ORDER BY s.start_time DESC
		 LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.WorkoutSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// GetActiveSession returns the user's in-progress session, or ErrNotFound
// when none is open.
func (db *DB) GetActiveSession(ctx context.Context, userID uuid.UUID) (*models.WorkoutSession, error) {
	s, err := scanSession(db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+`
		 FROM workout_sessions s
		 LEFT JOIN routines r ON r.id = s.routine_id
		 WHERE s.user_id = $1 AND NOT s.is_completed
		 ORDER BY s.start_time DESC
		 LIMIT 1`, userID))
	if err != nil {
		return nil, err
	}
	if err := db.loadSessionExercises(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// DeleteSession removes a session and, via cascade, its exercises and sets.
// Completed sessions keep their contribution to lifetime totals.
func (db *DB) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workout_sessions WHERE id = $1 AND user_id = $2`,
		sessionID, userID)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// sessionState loads the completed flag and routine of a session owned by
// the user without the nested detail.
func (db *DB) sessionState(ctx context.Context, userID, sessionID uuid.UUID) (completed bool, routineID *uuid.UUID, err error) {
	err = db.Pool.QueryRow(ctx,
		`SELECT is_completed, routine_id FROM workout_sessions WHERE id = $1 AND user_id = $2`,
		sessionID, userID).Scan(&completed, &routineID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil, ErrNotFound
	}
	if err != nil {
		return false, nil, fmt.Errorf("querying session state: %w", err)
	}
	return completed, routineID, nil
}

// ErrSessionCompleted is returned when logging into or re-completing a
// session that has already ended.
var ErrSessionCompleted = errors.New("session already completed")

// SessionOpen verifies the session exists, belongs to the user, and has not
// been completed. Callers use it to reject writes before any side effects.
func (db *DB) SessionOpen(ctx context.Context, userID, sessionID uuid.UUID) error {
	completed, _, err := db.sessionState(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if completed {
		return ErrSessionCompleted
	}
	return nil
}

// AddSet logs one set into a session, creating the session_exercises row
// for that exercise on first use. Volume counters only move for work sets.
func (db *DB) AddSet(ctx context.Context, userID, sessionID uuid.UUID, in models.SetCreate, isPR bool) (*models.ExerciseSet, error) {
	completed, _, err := db.sessionState(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if completed {
		return nil, ErrSessionCompleted
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var seID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM session_exercises WHERE session_id = $1 AND exercise_id = $2`,
		sessionID, in.ExerciseID).Scan(&seID)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM exercises WHERE id = $1)`, in.ExerciseID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("checking exercise: %w", err)
		}
		if !exists {
			return nil, ErrNotFound
		}
		seID = uuid.New()
		_, err = tx.Exec(ctx,
			`INSERT INTO session_exercises (id, session_id, exercise_id, exercise_order)
			 SELECT $1, $2, $3, COALESCE(MAX(exercise_order), 0) + 1
			 FROM session_exercises WHERE session_id = $2`,
			seID, sessionID, in.ExerciseID)
		if err != nil {
			return nil, fmt.Errorf("inserting session exercise: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("querying session exercise: %w", err)
	}

	set := &models.ExerciseSet{
		ID:            uuid.New(),
		SetNumber:     in.SetNumber,
		RepsCompleted: in.RepsCompleted,
		WeightKg:      in.WeightKg,
		RPE:           in.RPE,
		IsWarmup:      in.IsWarmup,
		IsFailure:     in.IsFailure,
		IsPR:          isPR,
		CompletedAt:   time.Now().UTC(),
		Notes:         in.Notes,
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO exercise_sets (id, session_exercise_id, set_number, reps_completed,
		 weight_kg, rpe, is_warmup, is_failure, is_pr, completed_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		set.ID, seID, set.SetNumber, set.RepsCompleted, set.WeightKg, set.RPE,
		set.IsWarmup, set.IsFailure, set.IsPR, set.CompletedAt, set.Notes)
	if err != nil {
		return nil, fmt.Errorf("inserting set: %w", err)
	}

	if !set.IsWarmup {
		_, err = tx.Exec(ctx,
			`UPDATE workout_sessions SET
				total_volume_kg = total_volume_kg + $2,
				total_sets = total_sets + 1,
				total_reps = total_reps + $3
			 WHERE id = $1`,
			sessionID, fitness.SetVolume(set.WeightKg, set.RepsCompleted), set.RepsCompleted)
		if err != nil {
			return nil, fmt.Errorf("updating session totals: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing set: %w", err)
	}
	return set, nil
}

// CompleteSession closes an open session, stamping end time and duration,
// and returns the updated session. The caller applies the downstream
// effects (user totals, streak, achievements).
func (db *DB) CompleteSession(ctx context.Context, userID, sessionID uuid.UUID) (*models.WorkoutSession, error) {
	completed, routineID, err := db.sessionState(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if completed {
		return nil, ErrSessionCompleted
	}

	end := time.Now().UTC()
	_, err = db.Pool.Exec(ctx,
		`UPDATE workout_sessions SET
			is_completed = TRUE,
			end_time = $2,
			duration_minutes = GREATEST(1, CEIL(EXTRACT(EPOCH FROM ($2 - start_time)) / 60))::int
		 WHERE id = $1`,
		sessionID, end)
	if err != nil {
		return nil, fmt.Errorf("completing session: %w", err)
	}

	if routineID != nil {
		if err := db.IncrementTimesCompleted(ctx, *routineID); err != nil {
			return nil, err
		}
	}
	return db.GetSession(ctx, userID, sessionID)
}

// LastCompletedSessionDate returns the session_date of the user's most
// recently completed session other than the given one, or nil when none
// exists. Used for streak arithmetic when a session completes.
func (db *DB) LastCompletedSessionDate(ctx context.Context, userID, excludeSessionID uuid.UUID) (*time.Time, error) {
	var d *time.Time
	err := db.Pool.QueryRow(ctx,
		`SELECT MAX(session_date) FROM workout_sessions
		 WHERE user_id = $1 AND is_completed AND id <> $2`,
		userID, excludeSessionID).Scan(&d)
	if err != nil {
		return nil, fmt.Errorf("querying last session date: %w", err)
	}
	return d, nil
}

// CountCompletedSessionsSince counts completed sessions starting at or
// after the given instant.
func (db *DB) CountCompletedSessionsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var n int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_sessions
		 WHERE user_id = $1 AND is_completed AND start_time >= $2`,
		userID, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return n, nil
}
