package models

import (
	"time"

	"github.com/google/uuid"
)

// Account levels, derived by thresholding cumulative training volume.
const (
	LevelNovice       = "Novice"
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelElite        = "Elite"
)

// User is a row in the users table.
type User struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	Username          string     `json:"username"`
	PasswordHash      string     `json:"-"`
	FullName          *string    `json:"full_name,omitempty"`
	AccountLevel      string     `json:"account_level"`
	TotalVolumeKg     float64    `json:"total_volume_kg"`
	CurrentStreakDays int        `json:"current_streak_days"`
	LongestStreakDays int        `json:"longest_streak_days"`
	IsActive          bool       `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"-"`
	LastLoginAt       *time.Time `json:"-"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}
