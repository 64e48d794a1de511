package server

import (
	"testing"

	"github.com/meltforce/todoplus/internal/models"
)

// TestValidateLink covers the per-type payload requirements for fitness
// links.
func TestValidateLink(t *testing.T) {
	volume := 5000.0
	zero := 0.0
	three := 3
	code := "FIRST_PR"
	empty := ""

	tests := []struct {
		name    string
		link    *models.FitnessLink
		wantErr bool
	}{
		{"nil link", nil, false},
		{"target volume ok", &models.FitnessLink{Type: models.LinkTargetVolume, TargetVolumeKg: &volume}, false},
		{"target volume missing", &models.FitnessLink{Type: models.LinkTargetVolume}, true},
		{"target volume zero", &models.FitnessLink{Type: models.LinkTargetVolume, TargetVolumeKg: &zero}, true},
		{"workouts per week ok", &models.FitnessLink{Type: models.LinkWorkoutsPerWeek, WorkoutsPerWeek: &three}, false},
		{"workouts per week missing", &models.FitnessLink{Type: models.LinkWorkoutsPerWeek}, true},
		{"achievement ok", &models.FitnessLink{Type: models.LinkAchievement, AchievementCode: &code}, false},
		{"achievement empty code", &models.FitnessLink{Type: models.LinkAchievement, AchievementCode: &empty}, true},
		{"unknown type", &models.FitnessLink{Type: "STEPS_PER_DAY"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateLink(tt.link)
			if gotErr := msg != ""; gotErr != tt.wantErr {
				t.Errorf("validateLink = %q, wantErr %v", msg, tt.wantErr)
			}
		})
	}
}
