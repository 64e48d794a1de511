package fitness

import (
	"testing"

	"github.com/meltforce/todoplus/internal/models"
)

func achievement(code, criterion string, threshold float64) models.Achievement {
	return models.Achievement{Code: code, CriterionType: criterion, Threshold: threshold}
}

// TestCriterionMet verifies each criterion type against aggregate stats.
func TestCriterionMet(t *testing.T) {
	agg := UserAggregates{
		TotalWorkouts:     12,
		TotalVolumeKg:     25_000,
		CurrentStreakDays: 2,
		LongestStreakDays: 9,
		TotalPRs:          4,
	}

	tests := []struct {
		name string
		a    models.Achievement
		want bool
	}{
		{"workout count met", achievement("TEN_WORKOUTS", models.CriterionTotalWorkouts, 10), true},
		{"workout count not met", achievement("FIFTY_WORKOUTS", models.CriterionTotalWorkouts, 50), false},
		{"volume met exactly", achievement("VOLUME_25K", models.CriterionTotalVolumeKg, 25_000), true},
		{"volume not met", achievement("VOLUME_100K", models.CriterionTotalVolumeKg, 100_000), false},
		{"streak uses longest, not current", achievement("STREAK_7", models.CriterionStreakDays, 7), true},
		{"streak not met", achievement("STREAK_30", models.CriterionStreakDays, 30), false},
		{"pr count met", achievement("PR_3", models.CriterionTotalPRs, 3), true},
		{"unknown criterion never matches", achievement("X", "TOTAL_NAPS", 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CriterionMet(tt.a, agg); got != tt.want {
				t.Errorf("CriterionMet(%s) = %v, want %v", tt.a.Code, got, tt.want)
			}
		})
	}
}

// TestNewlyMet verifies that already-unlocked achievements are excluded and
// only satisfied criteria are returned.
func TestNewlyMet(t *testing.T) {
	all := []models.Achievement{
		achievement("FIRST_WORKOUT", models.CriterionTotalWorkouts, 1),
		achievement("TEN_WORKOUTS", models.CriterionTotalWorkouts, 10),
		achievement("VOLUME_100K", models.CriterionTotalVolumeKg, 100_000),
	}
	unlocked := map[string]bool{"FIRST_WORKOUT": true}
	agg := UserAggregates{TotalWorkouts: 11, TotalVolumeKg: 40_000}

	met := NewlyMet(all, unlocked, agg)
	if len(met) != 1 {
		t.Fatalf("NewlyMet returned %d achievements, want 1", len(met))
	}
	if met[0].Code != "TEN_WORKOUTS" {
		t.Errorf("NewlyMet[0].Code = %q, want TEN_WORKOUTS", met[0].Code)
	}
}

// TestNewlyMetIdempotent verifies that a second evaluation with the unlock
// recorded returns nothing new.
func TestNewlyMetIdempotent(t *testing.T) {
	all := []models.Achievement{achievement("TEN_WORKOUTS", models.CriterionTotalWorkouts, 10)}
	agg := UserAggregates{TotalWorkouts: 11}

	first := NewlyMet(all, map[string]bool{}, agg)
	if len(first) != 1 {
		t.Fatalf("first evaluation returned %d, want 1", len(first))
	}
	second := NewlyMet(all, map[string]bool{"TEN_WORKOUTS": true}, agg)
	if len(second) != 0 {
		t.Errorf("second evaluation returned %d, want 0", len(second))
	}
}
