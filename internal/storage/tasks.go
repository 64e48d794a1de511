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

const taskColumns = `id, user_id, parent_id, title, description, priority, due_date,
	completed, completed_at, link_type, link_target_volume_kg,
	link_workouts_per_week, link_achievement_code, created_at, updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	var linkType *string
	var targetVolume *float64
	var perWeek *int
	var achievementCode *string
	err := row.Scan(&t.ID, &t.UserID, &t.ParentID, &t.Title, &t.Description,
		&t.Priority, &t.DueDate, &t.Completed, &t.CompletedAt,
		&linkType, &targetVolume, &perWeek, &achievementCode,
		&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	if linkType != nil {
		t.FitnessLink = &models.FitnessLink{
			Type:            *linkType,
			TargetVolumeKg:  targetVolume,
			WorkoutsPerWeek: perWeek,
			AchievementCode: achievementCode,
		}
	}
	return &t, nil
}

func linkFields(link *models.FitnessLink) (linkType *string, targetVolume *float64, perWeek *int, code *string) {
	if link == nil {
		return nil, nil, nil, nil
	}
	return &link.Type, link.TargetVolumeKg, link.WorkoutsPerWeek, link.AchievementCode
}

// CreateTask inserts a task. parentID is non-nil for subtasks; the parent
// must belong to the same user and be a top-level task.
func (db *DB) CreateTask(ctx context.Context, userID uuid.UUID, parentID *uuid.UUID, in models.TaskCreate) (*models.Task, error) {
	if parentID != nil {
		var parentOfParent *uuid.UUID
		err := db.Pool.QueryRow(ctx,
			`SELECT parent_id FROM tasks WHERE id = $1 AND user_id = $2`,
			*parentID, userID).Scan(&parentOfParent)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("querying parent task: %w", err)
		}
		if parentOfParent != nil {
			return nil, ErrSubtaskNesting
		}
	}

	linkType, targetVolume, perWeek, code := linkFields(in.FitnessLink)
	id := uuid.New()
	t, err := scanTask(db.Pool.QueryRow(ctx,
		`INSERT INTO tasks (id, user_id, parent_id, title, description, priority, due_date,
		 link_type, link_target_volume_kg, link_workouts_per_week, link_achievement_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+taskColumns,
		id, userID, parentID, in.Title, in.Description, in.Priority, in.DueDate,
		linkType, targetVolume, perWeek, code))
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}
	return t, nil
}

// ErrSubtaskNesting is returned when creating a subtask under a task that
// is itself a subtask. Nesting is one level deep.
var ErrSubtaskNesting = errors.New("subtasks cannot have subtasks")

// GetTask retrieves one of the user's tasks with its subtasks.
func (db *DB) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	t, err := scanTask(db.Pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		taskID, userID))
	if err != nil {
		return nil, err
	}
	if t.ParentID == nil {
		subs, err := db.listSubtasks(ctx, taskID)
		if err != nil {
			return nil, err
		}
		t.Subtasks = subs
	}
	return t, nil
}

func (db *DB) listSubtasks(ctx context.Context, parentID uuid.UUID) ([]models.Task, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE parent_id = $1 ORDER BY created_at`,
		parentID)
	if err != nil {
		return nil, fmt.Errorf("querying subtasks: %w", err)
	}
	defer rows.Close()

	subs := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *t)
	}
	return subs, rows.Err()
}

// TaskFilter narrows ListTasks. Nil fields mean no constraint.
type TaskFilter struct {
	Completed     *bool
	Priority      *int
	FitnessLinked *bool
}

// ListTasks retrieves the user's top-level tasks with subtasks attached,
// newest first.
func (db *DB) ListTasks(ctx context.Context, userID uuid.UUID, f TaskFilter) ([]models.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 AND parent_id IS NULL`
	args := []any{userID}
	if f.Completed != nil {
		args = append(args, *f.Completed)
		q += fmt.Sprintf(` AND completed = $%d`, len(args))
	}
	if f.Priority != nil {
		args = append(args, *f.Priority)
		q += fmt.Sprintf(` AND priority = $%d`, len(args))
	}
	if f.FitnessLinked != nil {
		if *f.FitnessLinked {
			q += ` AND link_type IS NOT NULL`
		} else {
			q += ` AND link_type IS NULL`
		}
	}
	q += ` ORDER BY created_at DESC`

	rows, err := db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		subs, err := db.listSubtasks(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Subtasks = subs
	}
	return tasks, nil
}

// UpdateTask applies non-nil fields and bumps updated_at. A present
// FitnessLink replaces the existing link wholesale.
func (db *DB) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, in models.TaskUpdate) (*models.Task, error) {
	if in.FitnessLink != nil {
		linkType, targetVolume, perWeek, code := linkFields(in.FitnessLink)
		_, err := db.Pool.Exec(ctx,
			`UPDATE tasks SET link_type = $3, link_target_volume_kg = $4,
			 link_workouts_per_week = $5, link_achievement_code = $6
			 WHERE id = $1 AND user_id = $2`,
			taskID, userID, linkType, targetVolume, perWeek, code)
		if err != nil {
			return nil, fmt.Errorf("updating task link: %w", err)
		}
	}
	tag, err := db.Pool.Exec(ctx,
		`UPDATE tasks SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			priority = COALESCE($5, priority),
			due_date = COALESCE($6, due_date),
			updated_at = NOW()
		 WHERE id = $1 AND user_id = $2`,
		taskID, userID, in.Title, in.Description, in.Priority, in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return db.GetTask(ctx, userID, taskID)
}

// DeleteTask removes a task and, via cascade, its subtasks.
func (db *DB) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleTask flips completion state, stamping or clearing completed_at.
func (db *DB) ToggleTask(ctx context.Context, userID, taskID uuid.UUID) (*models.Task, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE tasks SET
			completed = NOT completed,
			completed_at = CASE WHEN completed THEN NULL ELSE NOW() END,
			updated_at = NOW()
		 WHERE id = $1 AND user_id = $2`,
		taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("toggling task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return db.GetTask(ctx, userID, taskID)
}

// SetTaskCompleted marks a task done, used when a fitness link condition
// is met. Already-completed tasks are left untouched.
func (db *DB) SetTaskCompleted(ctx context.Context, taskID uuid.UUID, at time.Time) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE tasks SET completed = TRUE, completed_at = $2, updated_at = NOW()
		 WHERE id = $1 AND NOT completed`, taskID, at)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	return nil
}

// SetTaskReopened clears completion on a task whose fitness link condition
// no longer holds. Open tasks are left untouched.
func (db *DB) SetTaskReopened(ctx context.Context, taskID uuid.UUID) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE tasks SET completed = FALSE, completed_at = NULL, updated_at = NOW()
		 WHERE id = $1 AND completed`, taskID)
	if err != nil {
		return fmt.Errorf("reopening task: %w", err)
	}
	return nil
}

// ListFitnessLinkedTasks retrieves every task of the user that carries a
// fitness link, completed ones included: the condition check recomputes
// all of them and may flip a task in either direction.
func (db *DB) ListFitnessLinkedTasks(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = $1 AND link_type IS NOT NULL
		 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying linked tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// TaskStats computes aggregate counts over the user's tasks, subtasks
// included.
func (db *DB) TaskStats(ctx context.Context, userID uuid.UUID) (*models.TaskStats, error) {
	var s models.TaskStats
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*),
			COUNT(*) FILTER (WHERE completed),
			COUNT(*) FILTER (WHERE NOT completed),
			COUNT(*) FILTER (WHERE link_type IS NOT NULL),
			COUNT(*) FILTER (WHERE NOT completed AND due_date IS NOT NULL AND due_date < NOW())
		 FROM tasks WHERE user_id = $1`, userID,
	).Scan(&s.Total, &s.Completed, &s.Open, &s.FitnessLinked, &s.OverdueOpen)
	if err != nil {
		return nil, fmt.Errorf("querying task stats: %w", err)
	}
	return &s, nil
}
