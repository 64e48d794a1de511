package fitness

import "github.com/meltforce/todoplus/internal/models"

// UserAggregates are the counters achievement criteria and fitness links
// are evaluated against.
type UserAggregates struct {
	TotalWorkouts     int
	TotalVolumeKg     float64
	CurrentStreakDays int
	LongestStreakDays int
	TotalPRs          int
	WorkoutsThisWeek  int
}

// CriterionMet reports whether an achievement's criterion is satisfied by
// the given aggregates. Unknown criterion types never match.
func CriterionMet(a models.Achievement, agg UserAggregates) bool {
	switch a.CriterionType {
	case models.CriterionTotalWorkouts:
		return float64(agg.TotalWorkouts) >= a.Threshold
	case models.CriterionTotalVolumeKg:
		return agg.TotalVolumeKg >= a.Threshold
	case models.CriterionStreakDays:
		// Longest streak counts: an achievement once earned is never revoked.
		return float64(agg.LongestStreakDays) >= a.Threshold
	case models.CriterionTotalPRs:
		return float64(agg.TotalPRs) >= a.Threshold
	default:
		return false
	}
}

// NewlyMet returns the achievements whose criteria the aggregates satisfy,
// excluding codes already unlocked.
func NewlyMet(all []models.Achievement, unlocked map[string]bool, agg UserAggregates) []models.Achievement {
	var met []models.Achievement
	for _, a := range all {
		if unlocked[a.Code] {
			continue
		}
		if CriterionMet(a, agg) {
			met = append(met, a)
		}
	}
	return met
}
