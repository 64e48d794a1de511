package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/todoplus/internal/fitness"
	"github.com/meltforce/todoplus/internal/models"
	"github.com/meltforce/todoplus/internal/storage"
)

func validateLink(link *models.FitnessLink) string {
	if link == nil {
		return ""
	}
	switch link.Type {
	case models.LinkTargetVolume:
		if link.TargetVolumeKg == nil || *link.TargetVolumeKg <= 0 {
			return "target_volume_kg must be positive"
		}
	case models.LinkWorkoutsPerWeek:
		if link.WorkoutsPerWeek == nil || *link.WorkoutsPerWeek <= 0 {
			return "workouts_per_week must be positive"
		}
	case models.LinkAchievement:
		if link.AchievementCode == nil || *link.AchievementCode == "" {
			return "achievement_code required"
		}
	default:
		return "unknown fitness link type"
	}
	return ""
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if in.Title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}
	if msg := validateLink(in.FitnessLink); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if in.Priority == 0 {
		in.Priority = 2
	}

	task, err := s.db.CreateTask(r.Context(), userIDFromContext(r), nil, in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleCreateSubtask(w http.ResponseWriter, r *http.Request) {
	parentID, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task ID")
		return
	}
	var in models.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if in.Title == "" {
		writeError(w, http.StatusBadRequest, "title required")
		return
	}
	if msg := validateLink(in.FitnessLink); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if in.Priority == 0 {
		in.Priority = 2
	}

	task, err := s.db.CreateTask(r.Context(), userIDFromContext(r), &parentID, in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f storage.TaskFilter
	if v := q.Get("completed"); v != "" {
		completed := v == "true"
		f.Completed = &completed
	}
	if v := q.Get("priority"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid priority")
			return
		}
		f.Priority = &p
	}
	if v := q.Get("fitness_linked"); v != "" {
		linked := v == "true"
		f.FitnessLinked = &linked
	}

	tasks, err := s.db.ListTasks(r.Context(), userIDFromContext(r), f)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task ID")
		return
	}
	task, err := s.db.GetTask(r.Context(), userIDFromContext(r), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task ID")
		return
	}
	var in models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if msg := validateLink(in.FitnessLink); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	task, err := s.db.UpdateTask(r.Context(), userIDFromContext(r), id, in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task ID")
		return
	}
	if err := s.db.DeleteTask(r.Context(), userIDFromContext(r), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid task ID")
		return
	}
	task, err := s.db.ToggleTask(r.Context(), userIDFromContext(r), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleTaskStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.TaskStats(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCheckFitnessTasks(w http.ResponseWriter, r *http.Request) {
	completed, err := s.checkFitnessTasks(r.Context(), userIDFromContext(r), time.Now().UTC())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completed)
}

// checkFitnessTasks recomputes every fitness-linked task against current
// aggregates and flips completed in either direction, so a task whose
// weekly window has rolled over reopens. Returns the tasks that flipped.
func (s *Server) checkFitnessTasks(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.Task, error) {
	tasks, err := s.db.ListFitnessLinkedTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []models.Task{}, nil
	}

	agg, err := s.db.Aggregates(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.db.UnlockedCodes(ctx, userID)
	if err != nil {
		return nil, err
	}

	flipped := []models.Task{}
	for _, t := range tasks {
		satisfied := fitness.LinkSatisfied(*t.FitnessLink, *agg, unlocked)
		if satisfied == t.Completed {
			continue
		}
		if satisfied {
			if err := s.db.SetTaskCompleted(ctx, t.ID, now); err != nil {
				return nil, err
			}
			t.Completed = true
			t.CompletedAt = &now
		} else {
			if err := s.db.SetTaskReopened(ctx, t.ID); err != nil {
				return nil, err
			}
			t.Completed = false
			t.CompletedAt = nil
		}
		flipped = append(flipped, t)
	}
	return flipped, nil
}
