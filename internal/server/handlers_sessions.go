package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/todoplus/internal/fitness"
	"github.com/meltforce/todoplus/internal/models"
	"github.com/meltforce/todoplus/internal/storage"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var in models.SessionCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	session, err := s.db.CreateSession(r.Context(), userIDFromContext(r), in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	sessions, err := s.db.ListSessions(r.Context(), userIDFromContext(r), limit, offset)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleActiveSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.db.GetActiveSession(r.Context(), userIDFromContext(r))
	if errors.Is(err, storage.ErrNotFound) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}
	session, err := s.db.GetSession(r.Context(), userIDFromContext(r), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}
	if err := s.db.DeleteSession(r.Context(), userIDFromContext(r), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}
	var in models.SetCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if in.RepsCompleted <= 0 {
		writeError(w, http.StatusBadRequest, "reps_completed must be positive")
		return
	}
	if in.WeightKg < 0 {
		writeError(w, http.StatusBadRequest, "weight_kg cannot be negative")
		return
	}
	if in.SetNumber <= 0 {
		in.SetNumber = 1
	}

	userID := userIDFromContext(r)
	// Reject a bad session before the record check so a doomed request
	// never touches the PR table.
	if err := s.db.SessionOpen(r.Context(), userID, sessionID); err != nil {
		s.writeStorageError(w, err)
		return
	}
	isPR, err := s.recordCheck(r.Context(), userID, sessionID, in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	set, err := s.db.AddSet(r.Context(), userID, sessionID, in, isPR)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

// recordCheck compares a work set against the user's standing records and
// upserts any it beats. Warmups never count.
func (s *Server) recordCheck(ctx context.Context, userID, sessionID uuid.UUID, in models.SetCreate) (bool, error) {
	if in.IsWarmup {
		return false, nil
	}

	now := time.Now().UTC()
	isPR := false

	candidates := []struct {
		prType string
		value  float64
	}{
		{models.PRMaxWeight, in.WeightKg},
		{models.PROneRepMax, fitness.OneRepMax(in.WeightKg, in.RepsCompleted)},
	}
	for _, c := range candidates {
		previous, err := s.db.GetRecordValue(ctx, userID, in.ExerciseID, c.prType)
		if err != nil {
			return false, err
		}
		if !fitness.IsRecord(c.value, previous) {
			continue
		}
		reps := in.RepsCompleted
		err = s.db.UpsertRecord(ctx, &models.PersonalRecord{
			ID:         uuid.New(),
			UserID:     userID,
			ExerciseID: in.ExerciseID,
			PRType:     c.prType,
			Value:      c.value,
			Reps:       &reps,
			SessionID:  &sessionID,
			AchievedAt: now,
		})
		if err != nil {
			return false, err
		}
		isPR = true
	}
	return isPR, nil
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return
	}
	userID := userIDFromContext(r)
	ctx := r.Context()

	session, err := s.db.CompleteSession(ctx, userID, sessionID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	lastDate, err := s.db.LastCompletedSessionDate(ctx, userID, sessionID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	now := time.Now().UTC()
	streak := fitness.NextStreak(user.CurrentStreakDays, lastDate, now)
	longest := user.LongestStreakDays
	if streak > longest {
		longest = streak
	}
	level := fitness.AccountLevel(user.TotalVolumeKg + session.TotalVolumeKg)

	if err := s.db.ApplyCompletedWorkout(ctx, userID, session.TotalVolumeKg, streak, longest, level); err != nil {
		s.writeStorageError(w, err)
		return
	}

	unlocked, err := s.checkAchievements(ctx, userID, now)
	if err != nil {
		s.log.Error("checking achievements", "error", err)
		unlocked = []models.Achievement{}
	}
	completedTasks, err := s.checkFitnessTasks(ctx, userID, now)
	if err != nil {
		s.log.Error("checking fitness tasks", "error", err)
		completedTasks = []models.Task{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session":              session,
		"account_level":        level,
		"current_streak_days":  streak,
		"new_achievements":     unlocked,
		"auto_completed_tasks": completedTasks,
	})
}
