// Package fitness holds the pure training-progress logic: one-rep-max
// estimation, PR comparison, streak counting, and account levels. It has no
// storage or transport dependencies so every rule is directly testable.
package fitness

import "time"

// Account level thresholds on cumulative volume in kg.
const (
	beginnerVolumeKg     = 10_000
	intermediateVolumeKg = 50_000
	advancedVolumeKg     = 150_000
	eliteVolumeKg        = 500_000
)

// OneRepMax returns the Epley estimate w*(1+reps/30). A single rep returns
// the weight itself.
func OneRepMax(weightKg float64, reps int) float64 {
	if reps <= 1 {
		return weightKg
	}
	return weightKg * (1 + float64(reps)/30)
}

// SetVolume returns the training volume of one set in kg.
func SetVolume(weightKg float64, reps int) float64 {
	return weightKg * float64(reps)
}

// IsRecord reports whether value beats the previous best. A nil previous
// means no record exists yet, so any positive value qualifies.
func IsRecord(value float64, previous *float64) bool {
	if value <= 0 {
		return false
	}
	return previous == nil || value > *previous
}

// AccountLevel derives the label for a cumulative volume.
func AccountLevel(totalVolumeKg float64) string {
	switch {
	case totalVolumeKg >= eliteVolumeKg:
		return "Elite"
	case totalVolumeKg >= advancedVolumeKg:
		return "Advanced"
	case totalVolumeKg >= intermediateVolumeKg:
		return "Intermediate"
	case totalVolumeKg >= beginnerVolumeKg:
		return "Beginner"
	default:
		return "Novice"
	}
}

// NextStreak computes the streak after completing a workout at now, given
// the date of the previous completed session (nil when this is the first).
// Consecutive calendar days extend the streak, a gap resets it to 1, and a
// second workout on the same day leaves it unchanged.
func NextStreak(current int, lastSession *time.Time, now time.Time) int {
	if lastSession == nil {
		return 1
	}
	last := lastSession.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)
	switch days := int(today.Sub(last).Hours() / 24); {
	case days == 0:
		if current < 1 {
			return 1
		}
		return current
	case days == 1:
		return current + 1
	default:
		return 1
	}
}
