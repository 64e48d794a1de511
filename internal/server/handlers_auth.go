package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/meltforce/todoplus/internal/auth"
	"github.com/meltforce/todoplus/internal/models"
	"github.com/meltforce/todoplus/internal/storage"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "valid email required")
		return
	}
	if len(req.Username) < 3 {
		writeError(w, http.StatusBadRequest, "username must be at least 3 characters")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error("hashing password", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := s.db.CreateUser(r.Context(), req.Email, req.Username, hash, req.FullName)
	if errors.Is(err, storage.ErrEmailTaken) {
		writeError(w, http.StatusBadRequest, "email already registered")
		return
	}
	if errors.Is(err, storage.ErrUsernameTaken) {
		writeError(w, http.StatusBadRequest, "username already taken")
		return
	}
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error("issuing token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.db.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := s.db.TouchLastLogin(r.Context(), user.ID); err != nil {
		s.log.Error("touching last login", "error", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error("issuing token", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.db.GetUser(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
