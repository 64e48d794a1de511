package importer

import (
	"strings"
	"testing"
)

const sampleCSV = `Date,Workout Name,Duration,Exercise Name,Set Order,Weight,Reps,RPE
2026-03-01 18:05:00,Push Day,62m,Bench press (flat),1,80,8,7.5
2026-03-01 18:05:00,Push Day,62m,Bench press (flat),2,80,7,8
2026-03-01 18:05:00,Push Day,62m,Bench press (flat),3,82.5,5,9
2026-03-01 18:05:00,Push Day,62m,Triceps pushdown (cable),1,35,12,
2026-03-01 18:05:00,Push Day,62m,Triceps pushdown (cable),2,35,11,
2026-03-03 07:40:00,Legs,55m,Back squat,1,100,5,8
2026-03-03 07:40:00,Legs,55m,Back squat,2,100,5,8.5
`

// TestParseGroupsByDateAndWorkout verifies that rows sharing a date and
// workout name collapse into one session with per-exercise set groups.
func TestParseGroupsByDateAndWorkout(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	s1 := sessions[0]
	if s1.Name != "Push Day" {
		t.Errorf("name = %q, want %q", s1.Name, "Push Day")
	}
	if s1.DurationMinutes == nil || *s1.DurationMinutes != 62 {
		t.Errorf("duration = %v, want 62", s1.DurationMinutes)
	}
	if len(s1.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(s1.Exercises))
	}
	bench := s1.Exercises[0]
	if bench.Name != "Bench press (flat)" {
		t.Errorf("exercise = %q, want bench press", bench.Name)
	}
	if len(bench.Sets) != 3 {
		t.Fatalf("bench sets = %d, want 3", len(bench.Sets))
	}
	if bench.Sets[2].WeightKg != 82.5 || bench.Sets[2].Reps != 5 {
		t.Errorf("set 3 = %.1fkg x %d, want 82.5kg x 5", bench.Sets[2].WeightKg, bench.Sets[2].Reps)
	}
	if bench.Sets[0].RPE == nil || *bench.Sets[0].RPE != 7.5 {
		t.Errorf("set 1 RPE = %v, want 7.5", bench.Sets[0].RPE)
	}
	if s1.Exercises[1].Sets[0].RPE != nil {
		t.Errorf("pushdown RPE = %v, want nil", s1.Exercises[1].Sets[0].RPE)
	}

	s2 := sessions[1]
	if s2.Name != "Legs" || len(s2.Exercises) != 1 || len(s2.Exercises[0].Sets) != 2 {
		t.Errorf("second session = %q with %d exercises, want Legs with 1", s2.Name, len(s2.Exercises))
	}
}

// TestParseSemicolonDelimiter verifies delimiter sniffing for
// semicolon-separated exports with European decimal commas.
func TestParseSemicolonDelimiter(t *testing.T) {
	csv := "Date;Workout Name;Exercise Name;Set Order;Weight;Reps\n" +
		"2026-03-05;Pull;Barbell bent-over row;1;72,5;10\n"

	sessions, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	set := sessions[0].Exercises[0].Sets[0]
	if set.WeightKg != 72.5 {
		t.Errorf("weight = %v, want 72.5", set.WeightKg)
	}
}

// TestParseMergesSupersetRows verifies that alternating exercise rows, as
// supersets produce, merge into one exercise group per name so a session
// never carries the same exercise twice.
func TestParseMergesSupersetRows(t *testing.T) {
	csv := "Date,Workout Name,Exercise Name,Set Order,Weight,Reps\n" +
		"2026-03-07,Upper,Bench press (flat),1,80,8\n" +
		"2026-03-07,Upper,Barbell bent-over row,1,70,10\n" +
		"2026-03-07,Upper,Bench press (flat),2,80,7\n" +
		"2026-03-07,Upper,Barbell bent-over row,2,70,9\n" +
		"2026-03-07,Upper,Bench press (flat),3,80,6\n"

	sessions, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	exercises := sessions[0].Exercises
	if len(exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(exercises))
	}
	if exercises[0].Name != "Bench press (flat)" || len(exercises[0].Sets) != 3 {
		t.Errorf("bench = %q with %d sets, want 3", exercises[0].Name, len(exercises[0].Sets))
	}
	if exercises[1].Name != "Barbell bent-over row" || len(exercises[1].Sets) != 2 {
		t.Errorf("row = %q with %d sets, want 2", exercises[1].Name, len(exercises[1].Sets))
	}
}

// TestParseMissingColumns verifies that an export without the required
// columns is rejected.
func TestParseMissingColumns(t *testing.T) {
	_, err := Parse(strings.NewReader("Date,Exercise Name,Weight\n2026-03-05,Bench,80\n"))
	if err == nil {
		t.Fatal("expected error for missing reps column")
	}
}

// TestParseSkipsInvalidRows verifies that rows with zero or malformed reps
// are dropped rather than failing the whole file.
func TestParseSkipsInvalidRows(t *testing.T) {
	csv := "Date,Workout Name,Exercise Name,Set Order,Weight,Reps\n" +
		"2026-03-05,Pull,Chin-up,1,0,8\n" +
		"2026-03-05,Pull,Chin-up,2,0,zero\n" +
		"2026-03-05,Pull,,3,0,8\n"

	sessions, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	if got := len(sessions[0].Exercises[0].Sets); got != 1 {
		t.Errorf("sets = %d, want 1", got)
	}
}
