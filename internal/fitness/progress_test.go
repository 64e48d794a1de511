package fitness

import (
	"math"
	"testing"
	"time"
)

// TestOneRepMax verifies the Epley estimate and the single-rep shortcut.
func TestOneRepMax(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		reps   int
		want   float64
	}{
		{"single rep is the weight itself", 100, 1, 100},
		{"zero reps", 100, 0, 100},
		{"100kg x 5", 100, 5, 100 * (1 + 5.0/30)},
		{"80kg x 10", 80, 10, 80 * (1 + 10.0/30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OneRepMax(tt.weight, tt.reps)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("OneRepMax(%v, %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
			}
		})
	}
}

// TestIsRecord verifies that only strictly greater values beat a previous
// best, and that any positive value counts when no record exists.
func TestIsRecord(t *testing.T) {
	prev := 100.0
	tests := []struct {
		name     string
		value    float64
		previous *float64
		want     bool
	}{
		{"no previous record", 60, nil, true},
		{"beats previous", 102.5, &prev, true},
		{"equals previous", 100, &prev, false},
		{"below previous", 97.5, &prev, false},
		{"zero never records", 0, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRecord(tt.value, tt.previous); got != tt.want {
				t.Errorf("IsRecord(%v, %v) = %v, want %v", tt.value, tt.previous, got, tt.want)
			}
		})
	}
}

// TestAccountLevel verifies the volume thresholds for each level label.
func TestAccountLevel(t *testing.T) {
	tests := []struct {
		volume float64
		want   string
	}{
		{0, "Novice"},
		{9_999, "Novice"},
		{10_000, "Beginner"},
		{49_999, "Beginner"},
		{50_000, "Intermediate"},
		{150_000, "Advanced"},
		{499_999, "Advanced"},
		{500_000, "Elite"},
		{2_000_000, "Elite"},
	}
	for _, tt := range tests {
		if got := AccountLevel(tt.volume); got != tt.want {
			t.Errorf("AccountLevel(%v) = %q, want %q", tt.volume, got, tt.want)
		}
	}
}

// TestNextStreak verifies streak progression: first workout starts at 1,
// consecutive days extend, gaps reset, same-day repeats don't change it.
func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	day := func(offset int) *time.Time {
		d := now.AddDate(0, 0, offset)
		return &d
	}

	tests := []struct {
		name    string
		current int
		last    *time.Time
		want    int
	}{
		{"first completed workout", 0, nil, 1},
		{"yesterday extends", 3, day(-1), 4},
		{"same day unchanged", 3, day(0), 3},
		{"same day with zero streak", 0, day(0), 1},
		{"two-day gap resets", 9, day(-2), 1},
		{"week gap resets", 30, day(-7), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStreak(tt.current, tt.last, now); got != tt.want {
				t.Errorf("NextStreak(%d, %v, now) = %d, want %d", tt.current, tt.last, got, tt.want)
			}
		})
	}
}

// TestNextStreakCrossesMidnight verifies that a late-night workout followed
// by an early-morning one still counts as consecutive calendar days.
func TestNextStreakCrossesMidnight(t *testing.T) {
	last := time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 6, 15, 0, 0, time.UTC)
	if got := NextStreak(5, &last, now); got != 6 {
		t.Errorf("NextStreak across midnight = %d, want 6", got)
	}
}
