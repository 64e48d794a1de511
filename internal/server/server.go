package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/todoplus/internal/auth"
	"github.com/meltforce/todoplus/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	tokens *auth.TokenIssuer
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, tokens *auth.TokenIssuer, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		tokens: tokens,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		// The exercise library is reference data, readable without a token.
		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", s.handleListExercises)
			r.Get("/muscles", s.handleListMuscles)
			r.Get("/equipment", s.handleListEquipment)
			r.Get("/{id}", s.handleGetExercise)
		})

		// Everything below requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(JWTAuth(s.tokens))

			r.Get("/auth/me", s.handleMe)
			r.Post("/admin/seed-exercises", s.handleSeedExercises)

			r.Route("/routines", func(r chi.Router) {
				r.Get("/", s.handleListRoutines)
				r.Post("/", s.handleCreateRoutine)
				r.Get("/{id}", s.handleGetRoutine)
				r.Put("/{id}", s.handleUpdateRoutine)
				r.Delete("/{id}", s.handleDeleteRoutine)
				r.Post("/{id}/exercises", s.handleAddRoutineExercise)
				r.Delete("/{id}/exercises/{exerciseID}", s.handleRemoveRoutineExercise)
			})

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", s.handleListSessions)
				r.Post("/", s.handleCreateSession)
				r.Get("/active", s.handleActiveSession)
				r.Get("/{id}", s.handleGetSession)
				r.Delete("/{id}", s.handleDeleteSession)
				r.Post("/{id}/sets", s.handleAddSet)
				r.Post("/{id}/complete", s.handleCompleteSession)
			})

			r.Route("/progress", func(r chi.Router) {
				r.Get("/dashboard", s.handleDashboard)
				r.Get("/prs", s.handleListRecords)
				r.Get("/exercise/{id}/history", s.handleExerciseHistory)
			})

			r.Route("/achievements", func(r chi.Router) {
				r.Get("/", s.handleListAchievements)
				r.Get("/user", s.handleUserAchievements)
				r.Post("/check", s.handleCheckAchievements)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", s.handleListTasks)
				r.Post("/", s.handleCreateTask)
				r.Get("/stats", s.handleTaskStats)
				r.Post("/check-fitness", s.handleCheckFitnessTasks)
				r.Get("/{id}", s.handleGetTask)
				r.Put("/{id}", s.handleUpdateTask)
				r.Delete("/{id}", s.handleDeleteTask)
				r.Post("/{id}/toggle", s.handleToggleTask)
				r.Post("/{id}/subtasks", s.handleCreateSubtask)
			})
		})
	})
}

// Mount attaches an extra handler under the given pattern, used for the
// MCP endpoint.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}
