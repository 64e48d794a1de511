package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/todoplus/internal/fitness"
	"github.com/meltforce/todoplus/internal/models"
)

// Aggregates collects the per-user numbers that achievements and
// fitness-linked tasks are evaluated against.
func (db *DB) Aggregates(ctx context.Context, userID uuid.UUID, now time.Time) (*fitness.UserAggregates, error) {
	u, err := db.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var totalWorkouts int
	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_sessions WHERE user_id = $1 AND is_completed`,
		userID).Scan(&totalWorkouts)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	totalPRs, err := db.CountRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	thisWeek, err := db.CountCompletedSessionsSince(ctx, userID, fitness.WeekStart(now))
	if err != nil {
		return nil, err
	}

	return &fitness.UserAggregates{
		TotalWorkouts:     totalWorkouts,
		TotalVolumeKg:     u.TotalVolumeKg,
		CurrentStreakDays: u.CurrentStreakDays,
		LongestStreakDays: u.LongestStreakDays,
		TotalPRs:          totalPRs,
		WorkoutsThisWeek:  thisWeek,
	}, nil
}

// Dashboard assembles the progress overview for one user.
func (db *DB) Dashboard(ctx context.Context, userID uuid.UUID, now time.Time) (*models.DashboardStats, error) {
	u, err := db.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	workoutsThisMonth, err := db.CountCompletedSessionsSince(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}
	prsThisMonth, err := db.CountRecordsSince(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}
	recent, err := db.ListSessions(ctx, userID, 5, 0)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		CurrentStreakDays: u.CurrentStreakDays,
		LongestStreakDays: u.LongestStreakDays,
		TotalVolumeKg:     u.TotalVolumeKg,
		WorkoutsThisMonth: workoutsThisMonth,
		PRsThisMonth:      prsThisMonth,
		AccountLevel:      u.AccountLevel,
		RecentSessions:    recent,
	}, nil
}
