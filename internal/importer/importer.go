package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/meltforce/todoplus/internal/fitness"
	"github.com/meltforce/todoplus/internal/storage"
)

// Stats summarizes an import run.
type Stats struct {
	FilesTotal       int
	FilesImported    int
	FilesSkipped     int
	SessionsImported int
	VolumeImportedKg float64
	UnmatchedNames   []string
}

// Importer reads CSV exports from a directory and writes completed
// sessions for one user, tracking processed files in a state database.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	userID uuid.UUID
	dryRun bool
	log    *slog.Logger
}

// New creates an Importer for the given user.
func New(db *storage.DB, state *StateDB, userID uuid.UUID, dryRun bool, log *slog.Logger) *Importer {
	return &Importer{db: db, state: state, userID: userID, dryRun: dryRun, log: log}
}

// Run imports every .csv file under dir, skipping files already recorded
// in the state database. Lifetime volume and account level are updated
// once at the end; streaks are left untouched for historical data.
func (imp *Importer) Run(ctx context.Context, dir string) (*Stats, error) {
	stats := &Stats{}
	unmatched := make(map[string]bool)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return stats, fmt.Errorf("reading import dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}
		stats.FilesTotal++
		path := filepath.Join(dir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			return stats, fmt.Errorf("stat %s: %w", path, err)
		}
		hash, err := HashFile(path)
		if err != nil {
			return stats, fmt.Errorf("hashing %s: %w", path, err)
		}
		done, err := imp.state.IsImported(entry.Name(), info.Size(), hash)
		if err != nil {
			return stats, fmt.Errorf("checking state for %s: %w", path, err)
		}
		if done {
			stats.FilesSkipped++
			imp.log.Info("skipping already imported file", "file", entry.Name())
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			return stats, fmt.Errorf("opening %s: %w", path, err)
		}
		sessions, err := Parse(f)
		f.Close()
		if err != nil {
			return stats, fmt.Errorf("parsing %s: %w", path, err)
		}
		imp.log.Info("parsed export", "file", entry.Name(), "sessions", len(sessions))

		if imp.dryRun {
			stats.SessionsImported += len(sessions)
			continue
		}

		for _, session := range sessions {
			volume, missing, err := imp.db.ImportSession(ctx, imp.userID, session)
			if err != nil {
				return stats, fmt.Errorf("importing session %s: %w", session.Date.Format("2006-01-02"), err)
			}
			for _, name := range missing {
				unmatched[name] = true
			}
			if volume > 0 {
				stats.SessionsImported++
				stats.VolumeImportedKg += volume
			}
		}

		if err := imp.state.MarkImported(entry.Name(), info.Size(), hash); err != nil {
			return stats, fmt.Errorf("recording state for %s: %w", path, err)
		}
		stats.FilesImported++
	}

	if !imp.dryRun && stats.VolumeImportedKg > 0 {
		user, err := imp.db.GetUser(ctx, imp.userID)
		if err != nil {
			return stats, err
		}
		level := fitness.AccountLevel(user.TotalVolumeKg + stats.VolumeImportedKg)
		err = imp.db.ApplyCompletedWorkout(ctx, imp.userID, stats.VolumeImportedKg,
			user.CurrentStreakDays, user.LongestStreakDays, level)
		if err != nil {
			return stats, err
		}
	}

	for name := range unmatched {
		stats.UnmatchedNames = append(stats.UnmatchedNames, name)
	}
	sort.Strings(stats.UnmatchedNames)
	return stats, nil
}
