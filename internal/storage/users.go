package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/todoplus/internal/models"
)

const userColumns = `id, email, username, password_hash, full_name, account_level,
	total_volume_kg, current_streak_days, longest_streak_days, is_active,
	created_at, updated_at, last_login_at`

// CreateUser inserts a new user. Duplicate email or username report
// ErrEmailTaken / ErrUsernameTaken so handlers can return distinct messages.
func (db *DB) CreateUser(ctx context.Context, email, username, passwordHash string, fullName *string) (*models.User, error) {
	var exists bool
	if err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}
	if err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	row := db.Pool.QueryRow(ctx,
		`INSERT INTO users (id, email, username, password_hash, full_name, last_login_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 RETURNING `+userColumns,
		uuid.New(), email, username, passwordHash, fullName)
	return scanUser(row)
}

// GetUserByEmail retrieves an active user by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND is_active`, email)
	return scanUser(row)
}

// GetUser retrieves an active user by ID.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND is_active`, id)
	return scanUser(row)
}

// TouchLastLogin records a successful login.
func (db *DB) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("touching last login: %w", err)
	}
	return nil
}

// ApplyCompletedWorkout folds a completed session into the user's cumulative
// stats: adds volume, sets the streak counters and the derived account level.
func (db *DB) ApplyCompletedWorkout(ctx context.Context, id uuid.UUID, addVolumeKg float64, streak, longest int, level string) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE users SET
			total_volume_kg = total_volume_kg + $2,
			current_streak_days = $3,
			longest_streak_days = $4,
			account_level = $5,
			updated_at = NOW()
		 WHERE id = $1`,
		id, addVolumeKg, streak, longest, level)
	if err != nil {
		return fmt.Errorf("applying completed workout: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FullName,
		&u.AccountLevel, &u.TotalVolumeKg, &u.CurrentStreakDays, &u.LongestStreakDays,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}
