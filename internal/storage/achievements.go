package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/todoplus/internal/models"
)

// ListAchievements retrieves all achievement definitions ordered by
// category and threshold.
func (db *DB) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, code, name, description, category, criterion_type, threshold
		 FROM achievements
		 ORDER BY category, threshold`)
	if err != nil {
		return nil, fmt.Errorf("querying achievements: %w", err)
	}
	defer rows.Close()

	achievements := []models.Achievement{}
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Description,
			&a.Category, &a.CriterionType, &a.Threshold); err != nil {
			return nil, fmt.Errorf("scanning achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// ListUserAchievements retrieves the user's unlocks with their
// definitions, most recent first.
func (db *DB) ListUserAchievements(ctx context.Context, userID uuid.UUID) ([]models.UserAchievement, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT ua.id, a.id, a.code, a.name, a.description, a.category,
		 a.criterion_type, a.threshold, ua.unlocked_at
		 FROM user_achievements ua
		 JOIN achievements a ON a.id = ua.achievement_id
		 WHERE ua.user_id = $1
		 ORDER BY ua.unlocked_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user achievements: %w", err)
	}
	defer rows.Close()

	unlocks := []models.UserAchievement{}
	for rows.Next() {
		var ua models.UserAchievement
		if err := rows.Scan(&ua.ID, &ua.Achievement.ID, &ua.Code, &ua.Name,
			&ua.Description, &ua.Category, &ua.CriterionType, &ua.Threshold,
			&ua.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scanning user achievement: %w", err)
		}
		unlocks = append(unlocks, ua)
	}
	return unlocks, rows.Err()
}

// UnlockedCodes returns the set of achievement codes the user has unlocked.
func (db *DB) UnlockedCodes(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT a.code FROM user_achievements ua
		 JOIN achievements a ON a.id = ua.achievement_id
		 WHERE ua.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying unlocked codes: %w", err)
	}
	defer rows.Close()

	codes := make(map[string]bool)
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scanning code: %w", err)
		}
		codes[code] = true
	}
	return codes, rows.Err()
}

// InsertUnlocks records new unlocks for the user. Re-inserting an existing
// unlock is a no-op, so concurrent checks cannot double-award.
func (db *DB) InsertUnlocks(ctx context.Context, userID uuid.UUID, achievements []models.Achievement, at time.Time) error {
	for _, a := range achievements {
		_, err := db.Pool.Exec(ctx,
			`INSERT INTO user_achievements (id, user_id, achievement_id, unlocked_at)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (user_id, achievement_id) DO NOTHING`,
			uuid.New(), userID, a.ID, at)
		if err != nil {
			return fmt.Errorf("inserting unlock: %w", err)
		}
	}
	return nil
}
