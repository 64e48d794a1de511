package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/todoplus/internal/models"
)

// CreateRoutine inserts a routine and its exercise templates in one
// transaction. Templates referencing unknown exercises fail the whole create.
func (db *DB) CreateRoutine(ctx context.Context, userID uuid.UUID, in models.RoutineCreate) (*models.Routine, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback(ctx)

	r := &models.Routine{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            in.Name,
		Description:     in.Description,
		RoutineType:     in.RoutineType,
		DifficultyLevel: in.DifficultyLevel,
		Exercises:       []models.RoutineExercise{},
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO routines (id, user_id, name, description, routine_type, difficulty_level)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		r.ID, userID, in.Name, in.Description, in.RoutineType, in.DifficultyLevel,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting routine: %w", err)
	}

	for _, ex := range in.Exercises {
		re, err := insertRoutineExercise(ctx, tx, r.ID, ex)
		if err != nil {
			return nil, err
		}
		r.Exercises = append(r.Exercises, *re)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing routine: %w", err)
	}
	return r, nil
}

func insertRoutineExercise(ctx context.Context, tx pgx.Tx, routineID uuid.UUID, in models.RoutineExerciseCreate) (*models.RoutineExercise, error) {
	var name string
	err := tx.QueryRow(ctx, `SELECT name FROM exercises WHERE id = $1`, in.ExerciseID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up exercise: %w", err)
	}

	restSeconds := in.RestSeconds
	if restSeconds == 0 {
		restSeconds = 90
	}
	setsPlanned := in.SetsPlanned
	if setsPlanned == 0 {
		setsPlanned = 3
	}

	re := &models.RoutineExercise{
		ID:             uuid.New(),
		ExerciseID:     in.ExerciseID,
		ExerciseName:   name,
		ExerciseOrder:  in.ExerciseOrder,
		SetsPlanned:    setsPlanned,
		RepsPlanned:    in.RepsPlanned,
		RepsMin:        in.RepsMin,
		RepsMax:        in.RepsMax,
		TargetWeightKg: in.TargetWeightKg,
		RestSeconds:    restSeconds,
		Notes:          in.Notes,
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO routine_exercises (id, routine_id, exercise_id, exercise_order,
		 sets_planned, reps_planned, reps_min, reps_max, target_weight_kg, rest_seconds, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		re.ID, routineID, re.ExerciseID, re.ExerciseOrder, re.SetsPlanned,
		re.RepsPlanned, re.RepsMin, re.RepsMax, re.TargetWeightKg, re.RestSeconds, re.Notes)
	if err != nil {
		return nil, fmt.Errorf("inserting routine exercise: %w", err)
	}
	return re, nil
}

// ListRoutines retrieves the user's non-archived routines with their
// exercise templates, newest first.
func (db *DB) ListRoutines(ctx context.Context, userID uuid.UUID) ([]models.Routine, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, name, description, routine_type, difficulty_level,
		 times_completed, created_at, updated_at
		 FROM routines
		 WHERE user_id = $1 AND NOT is_archived
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying routines: %w", err)
	}
	defer rows.Close()

	var routines []models.Routine
	var ids []uuid.UUID
	for rows.Next() {
		var r models.Routine
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Description, &r.RoutineType,
			&r.DifficultyLevel, &r.TimesCompleted, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning routine: %w", err)
		}
		r.Exercises = []models.RoutineExercise{}
		routines = append(routines, r)
		ids = append(ids, r.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(routines) == 0 {
		return routines, nil
	}

	byID := make(map[uuid.UUID]*models.Routine, len(routines))
	for i := range routines {
		byID[routines[i].ID] = &routines[i]
	}

	exRows, err := db.Pool.Query(ctx,
		`SELECT re.id, re.routine_id, re.exercise_id, e.name, re.exercise_order,
		 re.sets_planned, re.reps_planned, re.reps_min, re.reps_max,
		 re.target_weight_kg, re.rest_seconds, re.notes
		 FROM routine_exercises re
		 JOIN exercises e ON e.id = re.exercise_id
		 WHERE re.routine_id = ANY($1)
		 ORDER BY re.exercise_order`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying routine exercises: %w", err)
	}
	defer exRows.Close()

	for exRows.Next() {
		var re models.RoutineExercise
		var routineID uuid.UUID
		if err := exRows.Scan(&re.ID, &routineID, &re.ExerciseID, &re.ExerciseName,
			&re.ExerciseOrder, &re.SetsPlanned, &re.RepsPlanned, &re.RepsMin, &re.RepsMax,
			&re.TargetWeightKg, &re.RestSeconds, &re.Notes); err != nil {
			return nil, fmt.Errorf("scanning routine exercise: %w", err)
		}
		if r, ok := byID[routineID]; ok {
			r.Exercises = append(r.Exercises, re)
		}
	}
	return routines, exRows.Err()
}

// GetRoutine retrieves one of the user's routines with its templates.
func (db *DB) GetRoutine(ctx context.Context, userID, routineID uuid.UUID) (*models.Routine, error) {
	var r models.Routine
	err := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, name, description, routine_type, difficulty_level,
		 times_completed, created_at, updated_at
		 FROM routines
		 WHERE id = $1 AND user_id = $2 AND NOT is_archived`,
		routineID, userID,
	).Scan(&r.ID, &r.UserID, &r.Name, &r.Description, &r.RoutineType,
		&r.DifficultyLevel, &r.TimesCompleted, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying routine: %w", err)
	}
	r.Exercises = []models.RoutineExercise{}

	rows, err := db.Pool.Query(ctx,
		`SELECT re.id, re.exercise_id, e.name, re.exercise_order, re.sets_planned,
		 re.reps_planned, re.reps_min, re.reps_max, re.target_weight_kg, re.rest_seconds, re.notes
		 FROM routine_exercises re
		 JOIN exercises e ON e.id = re.exercise_id
		 WHERE re.routine_id = $1
		 ORDER BY re.exercise_order`, routineID)
	if err != nil {
		return nil, fmt.Errorf("querying routine exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var re models.RoutineExercise
		if err := rows.Scan(&re.ID, &re.ExerciseID, &re.ExerciseName, &re.ExerciseOrder,
			&re.SetsPlanned, &re.RepsPlanned, &re.RepsMin, &re.RepsMax,
			&re.TargetWeightKg, &re.RestSeconds, &re.Notes); err != nil {
			return nil, fmt.Errorf("scanning routine exercise: %w", err)
		}
		r.Exercises = append(r.Exercises, re)
	}
	return &r, rows.Err()
}

// UpdateRoutine applies non-nil fields and bumps updated_at.
func (db *DB) UpdateRoutine(ctx context.Context, userID, routineID uuid.UUID, in models.RoutineUpdate) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE routines SET
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			routine_type = COALESCE($5, routine_type),
			difficulty_level = COALESCE($6, difficulty_level),
			updated_at = NOW()
		 WHERE id = $1 AND user_id = $2 AND NOT is_archived`,
		routineID, userID, in.Name, in.Description, in.RoutineType, in.DifficultyLevel)
	if err != nil {
		return fmt.Errorf("updating routine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ArchiveRoutine soft-deletes a routine, preserving session history that
// references it.
func (db *DB) ArchiveRoutine(ctx context.Context, userID, routineID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE routines SET is_archived = TRUE, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2 AND NOT is_archived`,
		routineID, userID)
	if err != nil {
		return fmt.Errorf("archiving routine: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddRoutineExercise appends a template entry to an existing routine.
func (db *DB) AddRoutineExercise(ctx context.Context, userID, routineID uuid.UUID, in models.RoutineExerciseCreate) (*models.RoutineExercise, error) {
	if _, err := db.GetRoutine(ctx, userID, routineID); err != nil {
		return nil, err
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback(ctx)

	re, err := insertRoutineExercise(ctx, tx, routineID, in)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing routine exercise: %w", err)
	}
	return re, nil
}

// RemoveRoutineExercise deletes a template entry from one of the user's
// routines.
func (db *DB) RemoveRoutineExercise(ctx context.Context, userID, routineID, routineExerciseID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM routine_exercises re
		 USING routines r
		 WHERE re.id = $1 AND re.routine_id = $2
		   AND r.id = re.routine_id AND r.user_id = $3`,
		routineExerciseID, routineID, userID)
	if err != nil {
		return fmt.Errorf("removing routine exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementTimesCompleted bumps the completion counter after a session
// started from this routine finishes.
func (db *DB) IncrementTimesCompleted(ctx context.Context, routineID uuid.UUID) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE routines SET times_completed = times_completed + 1 WHERE id = $1`, routineID)
	if err != nil {
		return fmt.Errorf("incrementing times_completed: %w", err)
	}
	return nil
}
