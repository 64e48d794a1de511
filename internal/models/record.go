package models

import (
	"time"

	"github.com/google/uuid"
)

// Personal record types. MAX_WEIGHT tracks the heaviest working set;
// ONE_REP_MAX tracks the Epley-estimated single-rep maximum.
const (
	PRMaxWeight = "MAX_WEIGHT"
	PROneRepMax = "ONE_REP_MAX"
)

// PersonalRecord is a derived best-performance fact for one
// user/exercise/type triple. It is upserted on improvement and never revoked.
type PersonalRecord struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	ExerciseID    uuid.UUID  `json:"exercise_id"`
	ExerciseName  string     `json:"exercise_name"`
	PRType        string     `json:"pr_type"`
	Value         float64    `json:"value"`
	Reps          *int       `json:"reps,omitempty"`
	SessionID     *uuid.UUID `json:"session_id,omitempty"`
	PreviousValue *float64   `json:"previous_value,omitempty"`
	AchievedAt    time.Time  `json:"achieved_at"`
}

// DashboardStats is the aggregate view behind GET /progress/dashboard.
type DashboardStats struct {
	CurrentStreakDays int              `json:"current_streak_days"`
	LongestStreakDays int              `json:"longest_streak_days"`
	TotalVolumeKg     float64          `json:"total_volume_kg"`
	WorkoutsThisMonth int              `json:"workouts_this_month"`
	PRsThisMonth      int              `json:"prs_this_month"`
	AccountLevel      string           `json:"account_level"`
	RecentSessions    []WorkoutSession `json:"recent_sessions"`
}

// SetHistoryEntry is one row of GET /progress/exercise/{id}/history.
type SetHistoryEntry struct {
	ID            uuid.UUID `json:"id"`
	SessionID     uuid.UUID `json:"session_id"`
	SetNumber     int       `json:"set_number"`
	RepsCompleted int       `json:"reps_completed"`
	WeightKg      float64   `json:"weight_kg"`
	RPE           *float64  `json:"rpe,omitempty"`
	IsPR          bool      `json:"is_pr"`
	CompletedAt   time.Time `json:"completed_at"`
}
