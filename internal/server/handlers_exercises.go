package server

import (
	"net/http"
	"strconv"

	"github.com/meltforce/todoplus/internal/models"
	"github.com/meltforce/todoplus/internal/seed"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Pool.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.ExerciseFilter{
		Muscle:    q.Get("muscle"),
		Equipment: q.Get("equipment"),
		Pattern:   q.Get("pattern"),
		Search:    q.Get("search"),
	}
	f.Limit, _ = strconv.Atoi(q.Get("limit"))
	f.Offset, _ = strconv.Atoi(q.Get("offset"))

	exercises, err := s.db.ListExercises(r.Context(), f)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}
	ex, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleListMuscles(w http.ResponseWriter, r *http.Request) {
	muscles, err := s.db.ListMuscles(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, muscles)
}

func (s *Server) handleListEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := s.db.ListEquipment(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, equipment)
}

func (s *Server) handleSeedExercises(w http.ResponseWriter, r *http.Request) {
	inserted, err := s.db.SeedExercises(r.Context(), seed.Exercises())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	total, err := s.db.CountExercises(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"inserted": inserted, "total": total})
}
