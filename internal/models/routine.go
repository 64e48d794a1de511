package models

import (
	"time"

	"github.com/google/uuid"
)

// Routine is a named, ordered list of exercise templates.
type Routine struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	Name            string            `json:"name"`
	Description     *string           `json:"description,omitempty"`
	RoutineType     string            `json:"routine_type"`
	DifficultyLevel string            `json:"difficulty_level"`
	TimesCompleted  int               `json:"times_completed"`
	Exercises       []RoutineExercise `json:"exercises"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// RoutineExercise is one template entry inside a routine, joined with the
// exercise name for responses.
type RoutineExercise struct {
	ID             uuid.UUID `json:"id"`
	ExerciseID     uuid.UUID `json:"exercise_id"`
	ExerciseName   string    `json:"exercise_name"`
	ExerciseOrder  int       `json:"exercise_order"`
	SetsPlanned    int       `json:"sets_planned"`
	RepsPlanned    *int      `json:"reps_planned,omitempty"`
	RepsMin        *int      `json:"reps_min,omitempty"`
	RepsMax        *int      `json:"reps_max,omitempty"`
	TargetWeightKg *float64  `json:"target_weight_kg,omitempty"`
	RestSeconds    int       `json:"rest_seconds"`
	Notes          *string   `json:"notes,omitempty"`
}

// RoutineExerciseCreate is the payload for adding an exercise to a routine.
type RoutineExerciseCreate struct {
	ExerciseID     uuid.UUID `json:"exercise_id"`
	ExerciseOrder  int       `json:"exercise_order"`
	SetsPlanned    int       `json:"sets_planned"`
	RepsPlanned    *int      `json:"reps_planned"`
	RepsMin        *int      `json:"reps_min"`
	RepsMax        *int      `json:"reps_max"`
	TargetWeightKg *float64  `json:"target_weight_kg"`
	RestSeconds    int       `json:"rest_seconds"`
	Notes          *string   `json:"notes"`
}

// RoutineCreate is the payload for POST /routines.
type RoutineCreate struct {
	Name            string                  `json:"name"`
	Description     *string                 `json:"description"`
	RoutineType     string                  `json:"routine_type"`
	DifficultyLevel string                  `json:"difficulty_level"`
	Exercises       []RoutineExerciseCreate `json:"exercises"`
}

// RoutineUpdate is the payload for PUT /routines/{id}. Nil fields are
// left unchanged.
type RoutineUpdate struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	RoutineType     *string `json:"routine_type"`
	DifficultyLevel *string `json:"difficulty_level"`
}
