package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/todoplus/internal/fitness"
	"github.com/meltforce/todoplus/internal/models"
)

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := s.db.ListAchievements(r.Context())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, achievements)
}

func (s *Server) handleUserAchievements(w http.ResponseWriter, r *http.Request) {
	unlocks, err := s.db.ListUserAchievements(r.Context(), userIDFromContext(r))
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unlocks)
}

func (s *Server) handleCheckAchievements(w http.ResponseWriter, r *http.Request) {
	unlocked, err := s.checkAchievements(r.Context(), userIDFromContext(r), time.Now().UTC())
	if err != nil {
		s.writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unlocked)
}

// checkAchievements evaluates all definitions against the user's current
// aggregates and records any new unlocks. Returns the newly unlocked set.
func (s *Server) checkAchievements(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.Achievement, error) {
	agg, err := s.db.Aggregates(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	all, err := s.db.ListAchievements(ctx)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.db.UnlockedCodes(ctx, userID)
	if err != nil {
		return nil, err
	}

	newly := fitness.NewlyMet(all, unlocked, *agg)
	if len(newly) > 0 {
		if err := s.db.InsertUnlocks(ctx, userID, newly, now); err != nil {
			return nil, err
		}
	}
	return newly, nil
}
