package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/todoplus/internal/models"
)

const exerciseColumns = `id, name, muscle, exercise_type, pattern, equipment, subtype, notes`

// ListExercises retrieves exercises matching the filter, ordered by muscle
// then name. Muscle/equipment/pattern match case-insensitively as substrings;
// search matches name, muscle, or equipment.
func (db *DB) ListExercises(ctx context.Context, f models.ExerciseFilter) ([]models.Exercise, error) {
	var conds []string
	var args []any

	if f.Muscle != "" {
		args = append(args, f.Muscle)
		conds = append(conds, fmt.Sprintf(`muscle ILIKE '%%' || $%d || '%%'`, len(args)))
	}
	if f.Equipment != "" {
		args = append(args, f.Equipment)
		conds = append(conds, fmt.Sprintf(`equipment ILIKE '%%' || $%d || '%%'`, len(args)))
	}
	if f.Pattern != "" {
		args = append(args, f.Pattern)
		conds = append(conds, fmt.Sprintf(`pattern ILIKE '%%' || $%d || '%%'`, len(args)))
	}
	if f.Search != "" {
		args = append(args, f.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(name ILIKE '%%' || $%d || '%%' OR muscle ILIKE '%%' || $%d || '%%' OR equipment ILIKE '%%' || $%d || '%%')`,
			n, n, n))
	}

	query := `SELECT ` + exerciseColumns + ` FROM exercises`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY muscle, name`

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Muscle, &e.ExerciseType, &e.Pattern,
			&e.Equipment, &e.Subtype, &e.Notes); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetExercise retrieves a single exercise by ID.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (*models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id,
	).Scan(&e.ID, &e.Name, &e.Muscle, &e.ExerciseType, &e.Pattern, &e.Equipment, &e.Subtype, &e.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying exercise: %w", err)
	}
	return &e, nil
}

// ListMuscles returns the distinct muscle groups in the library.
func (db *DB) ListMuscles(ctx context.Context) ([]string, error) {
	return db.listDistinct(ctx, `SELECT DISTINCT muscle FROM exercises ORDER BY muscle`)
}

// ListEquipment returns the distinct equipment values in the library.
func (db *DB) ListEquipment(ctx context.Context) ([]string, error) {
	return db.listDistinct(ctx, `SELECT DISTINCT equipment FROM exercises ORDER BY equipment`)
}

func (db *DB) listDistinct(ctx context.Context, query string) ([]string, error) {
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying distinct values: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning value: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// SeedExercises inserts encyclopedia entries, skipping names already present.
// Returns the number inserted.
func (db *DB) SeedExercises(ctx context.Context, exercises []models.Exercise) (int64, error) {
	var inserted int64
	for _, e := range exercises {
		id := e.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		tag, err := db.Pool.Exec(ctx,
			`INSERT INTO exercises (id, name, muscle, exercise_type, pattern, equipment, subtype, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (name) DO NOTHING`,
			id, e.Name, e.Muscle, e.ExerciseType, e.Pattern, e.Equipment, e.Subtype, e.Notes)
		if err != nil {
			return inserted, fmt.Errorf("seeding exercise %q: %w", e.Name, err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}

// CountExercises returns the size of the exercise library.
func (db *DB) CountExercises(ctx context.Context) (int64, error) {
	var n int64
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting exercises: %w", err)
	}
	return n, nil
}
