package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/todoplus/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStorageError maps storage sentinel errors onto status codes and
// treats everything else as a 500.
func (s *Server) writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrSessionCompleted):
		writeError(w, http.StatusBadRequest, "session already completed")
	case errors.Is(err, storage.ErrSubtaskNesting):
		writeError(w, http.StatusBadRequest, "subtasks cannot have subtasks")
	default:
		s.log.Error("storage error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func urlUUID(r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	return id, err == nil
}
