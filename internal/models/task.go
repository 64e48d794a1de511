package models

import (
	"time"

	"github.com/google/uuid"
)

// Fitness-link types. A linked task completes when its condition is met,
// rather than by manual toggle.
const (
	LinkTargetVolume    = "TARGET_VOLUME"
	LinkWorkoutsPerWeek = "WORKOUTS_PER_WEEK"
	LinkAchievement     = "ACHIEVEMENT"
)

// Task is a user-owned to-do item. ParentID is set on subtasks.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	ParentID    *uuid.UUID   `json:"parent_id,omitempty"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Priority    int          `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Completed   bool         `json:"completed"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	FitnessLink *FitnessLink `json:"fitness_link,omitempty"`
	Subtasks    []Task       `json:"subtasks,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// FitnessLink ties a task's completion to workout data. Exactly one target
// field is meaningful per link type.
type FitnessLink struct {
	Type            string   `json:"type"`
	TargetVolumeKg  *float64 `json:"target_volume_kg,omitempty"`
	WorkoutsPerWeek *int     `json:"workouts_per_week,omitempty"`
	AchievementCode *string  `json:"achievement_code,omitempty"`
}

// TaskCreate is the payload for POST /tasks and POST /tasks/{id}/subtasks.
type TaskCreate struct {
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Priority    int          `json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	FitnessLink *FitnessLink `json:"fitness_link"`
}

// TaskUpdate is the payload for PUT /tasks/{id}. Nil fields are left
// unchanged.
type TaskUpdate struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Priority    *int         `json:"priority"`
	DueDate     *time.Time   `json:"due_date"`
	FitnessLink *FitnessLink `json:"fitness_link"`
}

// TaskStats is the aggregate view behind GET /tasks/stats.
type TaskStats struct {
	Total         int `json:"total"`
	Completed     int `json:"completed"`
	Open          int `json:"open"`
	FitnessLinked int `json:"fitness_linked"`
	OverdueOpen   int `json:"overdue_open"`
}
