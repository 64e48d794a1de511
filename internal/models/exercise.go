package models

import "github.com/google/uuid"

// Exercise is static reference data describing one movement from the
// exercise encyclopedia.
type Exercise struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Muscle       string    `json:"muscle"`
	ExerciseType string    `json:"exercise_type"`
	Pattern      string    `json:"pattern"`
	Equipment    string    `json:"equipment"`
	Subtype      *string   `json:"subtype,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

// ExerciseFilter narrows an exercise library query. Zero values mean
// "no filter"; Search matches name, muscle, or equipment.
type ExerciseFilter struct {
	Muscle    string
	Equipment string
	Pattern   string
	Search    string
	Limit     int
	Offset    int
}
