package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.Dashboard(r.Context(), userIDFromContext(r), time.Now().UTC())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	var exerciseID *uuid.UUID
	if v := r.URL.Query().Get("exercise_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid exercise_id")
			return
		}
		exerciseID = &id
	}
	records, err := s.db.ListRecords(r.Context(), userIDFromContext(r), exerciseID)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}
	if _, err := s.db.GetExercise(r.Context(), exerciseID); err != nil {
		s.writeStorageError(w, err)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	history, err := s.db.ExerciseSetHistory(r.Context(), userIDFromContext(r), exerciseID, limit)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
