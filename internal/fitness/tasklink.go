package fitness

import (
	"time"

	"github.com/meltforce/todoplus/internal/models"
)

// WeekStart returns Monday 00:00 UTC of the week containing t. This is the
// window WORKOUTS_PER_WEEK links are counted against.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -(weekday - 1))
}

// LinkSatisfied reports whether a fitness link's condition currently holds.
// unlockedCodes holds the user's unlocked achievement codes. The check is a
// pure recomputation: it can flip a task in either direction.
func LinkSatisfied(link models.FitnessLink, agg UserAggregates, unlockedCodes map[string]bool) bool {
	switch link.Type {
	case models.LinkTargetVolume:
		return link.TargetVolumeKg != nil && agg.TotalVolumeKg >= *link.TargetVolumeKg
	case models.LinkWorkoutsPerWeek:
		return link.WorkoutsPerWeek != nil && agg.WorkoutsThisWeek >= *link.WorkoutsPerWeek
	case models.LinkAchievement:
		return link.AchievementCode != nil && unlockedCodes[*link.AchievementCode]
	default:
		return false
	}
}
