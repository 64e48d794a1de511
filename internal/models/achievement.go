package models

import (
	"time"

	"github.com/google/uuid"
)

// Achievement criterion types, evaluated against a user's aggregate stats.
const (
	CriterionTotalWorkouts = "TOTAL_WORKOUTS"
	CriterionTotalVolumeKg = "TOTAL_VOLUME_KG"
	CriterionStreakDays    = "STREAK_DAYS"
	CriterionTotalPRs      = "TOTAL_PRS"
)

// Achievement is a static criterion definition seeded at migration time.
type Achievement struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	CriterionType string    `json:"criterion_type"`
	Threshold     float64   `json:"threshold"`
}

// UserAchievement is a per-user unlock record, joined with the definition
// for responses.
type UserAchievement struct {
	ID          uuid.UUID `json:"id"`
	Achievement `json:"achievement"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}
