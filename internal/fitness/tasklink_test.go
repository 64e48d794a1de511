package fitness

import (
	"testing"
	"time"

	"github.com/meltforce/todoplus/internal/models"
)

// TestWeekStart verifies the Monday-00:00-UTC week window boundary.
func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"wednesday maps to its monday",
			time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC),
			time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday maps to itself at midnight",
			time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday belongs to the previous monday's week",
			time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestLinkSatisfied verifies each fitness-link type, including the
// weekly-workout-count property from the task check endpoint: a
// workouts_per_week=3 link holds only once three sessions fall in the
// current week window.
func TestLinkSatisfied(t *testing.T) {
	volume := 5_000.0
	three := 3
	code := "STREAK_7"

	tests := []struct {
		name     string
		link     models.FitnessLink
		agg      UserAggregates
		unlocked map[string]bool
		want     bool
	}{
		{
			"target volume reached",
			models.FitnessLink{Type: models.LinkTargetVolume, TargetVolumeKg: &volume},
			UserAggregates{TotalVolumeKg: 5_000},
			nil,
			true,
		},
		{
			"target volume short",
			models.FitnessLink{Type: models.LinkTargetVolume, TargetVolumeKg: &volume},
			UserAggregates{TotalVolumeKg: 4_999},
			nil,
			false,
		},
		{
			"two of three weekly workouts",
			models.FitnessLink{Type: models.LinkWorkoutsPerWeek, WorkoutsPerWeek: &three},
			UserAggregates{WorkoutsThisWeek: 2},
			nil,
			false,
		},
		{
			"third weekly workout flips it",
			models.FitnessLink{Type: models.LinkWorkoutsPerWeek, WorkoutsPerWeek: &three},
			UserAggregates{WorkoutsThisWeek: 3},
			nil,
			true,
		},
		{
			"achievement unlocked",
			models.FitnessLink{Type: models.LinkAchievement, AchievementCode: &code},
			UserAggregates{},
			map[string]bool{"STREAK_7": true},
			true,
		},
		{
			"achievement locked",
			models.FitnessLink{Type: models.LinkAchievement, AchievementCode: &code},
			UserAggregates{},
			map[string]bool{},
			false,
		},
		{
			"unknown type never satisfied",
			models.FitnessLink{Type: "STEPS"},
			UserAggregates{},
			nil,
			false,
		},
		{
			"missing target never satisfied",
			models.FitnessLink{Type: models.LinkTargetVolume},
			UserAggregates{TotalVolumeKg: 99_999},
			nil,
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinkSatisfied(tt.link, tt.agg, tt.unlocked); got != tt.want {
				t.Errorf("LinkSatisfied(%+v) = %v, want %v", tt.link, got, tt.want)
			}
		})
	}
}
