// Package importer backfills workout history from CSV exports produced by
// common logging apps (Strong-style "one row per set" files).
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/todoplus/internal/storage"
)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseDuration handles values like "1h 5m", "45m", or a bare minute count.
func parseDuration(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if d, err := time.ParseDuration(strings.ReplaceAll(s, " ", "")); err == nil {
		minutes := int(d.Minutes())
		return &minutes
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}
	return nil
}

// Parse reads a set-per-row CSV export and reconstructs sessions grouped by
// date and workout name. Column order is taken from the header row; the
// delimiter may be ',' or ';'.
func Parse(r io.Reader) ([]storage.HistorySession, error) {
	buf := make([]byte, 512)
	n, err := r.Read(buf)
	if n == 0 && err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	head := string(buf[:n])

	comma := ','
	if line, _, _ := strings.Cut(head, "\n"); strings.Count(line, ";") > strings.Count(line, ",") {
		comma = ';'
	}

	cr := csv.NewReader(io.MultiReader(strings.NewReader(head), r))
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "exercise name", "weight", "reps"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	type key struct {
		date time.Time
		name string
	}
	sessions := make(map[key]*storage.HistorySession)
	var order []key

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		date, err := parseDate(field(rec, "date"))
		if err != nil {
			return nil, err
		}
		exName := field(rec, "exercise name")
		if exName == "" {
			continue
		}

		reps, err := strconv.Atoi(field(rec, "reps"))
		if err != nil || reps <= 0 {
			continue
		}
		weight, err := strconv.ParseFloat(strings.ReplaceAll(field(rec, "weight"), ",", "."), 64)
		if err != nil || weight < 0 {
			weight = 0
		}

		set := storage.HistorySet{Reps: reps, WeightKg: weight}
		if v := field(rec, "set order"); v != "" {
			set.SetNumber, _ = strconv.Atoi(v)
		}
		if v := field(rec, "rpe"); v != "" {
			if rpe, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64); err == nil {
				set.RPE = &rpe
			}
		}

		workoutName := field(rec, "workout name")
		k := key{date: date, name: workoutName}
		s, ok := sessions[k]
		if !ok {
			s = &storage.HistorySession{
				Name:            workoutName,
				Date:            date,
				DurationMinutes: parseDuration(field(rec, "duration")),
			}
			sessions[k] = s
			order = append(order, k)
		}

		// Supersets alternate exercise rows, so merge by name rather than
		// by run of consecutive rows.
		idx := -1
		for i := range s.Exercises {
			if s.Exercises[i].Name == exName {
				idx = i
				break
			}
		}
		if idx < 0 {
			s.Exercises = append(s.Exercises, storage.HistoryExercise{Name: exName})
			idx = len(s.Exercises) - 1
		}
		ex := &s.Exercises[idx]
		if set.SetNumber == 0 {
			set.SetNumber = len(ex.Sets) + 1
		}
		ex.Sets = append(ex.Sets, set)
	}

	sort.SliceStable(order, func(i, j int) bool { return order[i].date.Before(order[j].date) })
	out := make([]storage.HistorySession, 0, len(order))
	for _, k := range order {
		out = append(out, *sessions[k])
	}
	return out, nil
}
