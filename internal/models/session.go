package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutSession is one workout, in progress until EndTime is set.
type WorkoutSession struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	RoutineID       *uuid.UUID        `json:"routine_id,omitempty"`
	RoutineName     *string           `json:"routine_name,omitempty"`
	SessionDate     time.Time         `json:"session_date"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         *time.Time        `json:"end_time,omitempty"`
	DurationMinutes *int              `json:"duration_minutes,omitempty"`
	TotalVolumeKg   float64           `json:"total_volume_kg"`
	TotalSets       int               `json:"total_sets"`
	TotalReps       int               `json:"total_reps"`
	IsCompleted     bool              `json:"is_completed"`
	Notes           *string           `json:"notes,omitempty"`
	Exercises       []SessionExercise `json:"exercises"`
}

// SessionExercise groups the sets logged for one exercise within a session.
type SessionExercise struct {
	ID            uuid.UUID     `json:"id"`
	ExerciseID    uuid.UUID     `json:"exercise_id"`
	ExerciseName  string        `json:"exercise_name"`
	ExerciseOrder int           `json:"exercise_order"`
	Sets          []ExerciseSet `json:"sets"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

// ExerciseSet is one completed set.
type ExerciseSet struct {
	ID            uuid.UUID `json:"id"`
	SetNumber     int       `json:"set_number"`
	RepsCompleted int       `json:"reps_completed"`
	WeightKg      float64   `json:"weight_kg"`
	RPE           *float64  `json:"rpe,omitempty"`
	IsWarmup      bool      `json:"is_warmup"`
	IsFailure     bool      `json:"is_failure"`
	IsPR          bool      `json:"is_pr"`
	CompletedAt   time.Time `json:"completed_at"`
	Notes         *string   `json:"notes,omitempty"`
}

// SessionCreate is the payload for POST /sessions.
type SessionCreate struct {
	RoutineID *uuid.UUID `json:"routine_id"`
	Notes     *string    `json:"notes"`
}

// SetCreate is the payload for POST /sessions/{id}/sets.
type SetCreate struct {
	ExerciseID    uuid.UUID `json:"exercise_id"`
	SetNumber     int       `json:"set_number"`
	RepsCompleted int       `json:"reps_completed"`
	WeightKg      float64   `json:"weight_kg"`
	RPE           *float64  `json:"rpe"`
	IsWarmup      bool      `json:"is_warmup"`
	IsFailure     bool      `json:"is_failure"`
	Notes         *string   `json:"notes"`
}
