package server

import (
	"encoding/json"
	"net/http"

	"github.com/meltforce/todoplus/internal/models"
)

func (s *Server) handleCreateRoutine(w http.ResponseWriter, r *http.Request) {
	var in models.RoutineCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}
	if in.RoutineType == "" {
		in.RoutineType = "custom"
	}
	if in.DifficultyLevel == "" {
		in.DifficultyLevel = "intermediate"
	}

	routine, err := s.db.CreateRoutine(r.Context(), userIDFromContext(r), in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, routine)
}

func (s *Server) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	routines, err := s.db.ListRoutines(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routines)
}

func (s *Server) handleGetRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine ID")
		return
	}
	routine, err := s.db.GetRoutine(r.Context(), userIDFromContext(r), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (s *Server) handleUpdateRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine ID")
		return
	}
	var in models.RoutineUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	userID := userIDFromContext(r)
	if err := s.db.UpdateRoutine(r.Context(), userID, id, in); err != nil {
		s.writeStorageError(w, err)
		return
	}
	routine, err := s.db.GetRoutine(r.Context(), userID, id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (s *Server) handleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine ID")
		return
	}
	if err := s.db.ArchiveRoutine(r.Context(), userIDFromContext(r), id); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "archived"})
}

func (s *Server) handleAddRoutineExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine ID")
		return
	}
	var in models.RoutineExerciseCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	re, err := s.db.AddRoutineExercise(r.Context(), userIDFromContext(r), id, in)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, re)
}

func (s *Server) handleRemoveRoutineExercise(w http.ResponseWriter, r *http.Request) {
	routineID, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine ID")
		return
	}
	exID, ok := urlUUID(r, "exerciseID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid routine exercise ID")
		return
	}
	if err := s.db.RemoveRoutineExercise(r.Context(), userIDFromContext(r), routineID, exID); err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
