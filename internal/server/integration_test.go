package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/todoplus/internal/auth"
	"github.com/meltforce/todoplus/internal/models"
	"github.com/meltforce/todoplus/internal/seed"
	"github.com/meltforce/todoplus/internal/storage"
)

// These tests exercise the full stack against a real database. They skip
// unless TODOPLUS_TEST_DSN points at a disposable Postgres, e.g.
// postgres://postgres@localhost:5432/todoplus_test?sslmode=disable.

func newTestServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()
	dsn := os.Getenv("TODOPLUS_TEST_DSN")
	if dsn == "" {
		t.Skip("TODOPLUS_TEST_DSN not set")
	}
	if err := storage.RunMigrations(dsn, "../../migrations"); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	db, err := storage.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	t.Cleanup(db.Close)
	if _, err := db.SeedExercises(context.Background(), seed.Exercises()); err != nil {
		t.Fatalf("seeding exercises: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db, auth.NewTokenIssuer("integration-secret", time.Hour), log), db
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

// registerUser creates a fresh account and returns its token and user.
func registerUser(t *testing.T, s *Server, prefix string) (string, *models.User) {
	t.Helper()
	n := time.Now().UnixNano()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Email:    fmt.Sprintf("%s-%d@example.com", prefix, n),
		Username: fmt.Sprintf("%s%d", prefix, n),
		Password: "hunter2hunter2",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", rec.Code, rec.Body.String())
	}
	var tok models.TokenResponse
	decodeBody(t, rec, &tok)
	return tok.AccessToken, tok.User
}

func pickExercises(t *testing.T, s *Server, n int) []models.Exercise {
	t.Helper()
	rec := doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/v1/exercises?limit=%d", n), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list exercises status = %d", rec.Code)
	}
	var exercises []models.Exercise
	decodeBody(t, rec, &exercises)
	if len(exercises) < n {
		t.Fatalf("exercises = %d, want at least %d", len(exercises), n)
	}
	return exercises[:n]
}

func startSession(t *testing.T, s *Server, token string) *models.WorkoutSession {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions", token, models.SessionCreate{})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d: %s", rec.Code, rec.Body.String())
	}
	var session models.WorkoutSession
	decodeBody(t, rec, &session)
	return &session
}

// completionResponse mirrors the POST /sessions/{id}/complete body.
type completionResponse struct {
	Session            models.WorkoutSession `json:"session"`
	AccountLevel       string                `json:"account_level"`
	CurrentStreakDays  int                   `json:"current_streak_days"`
	NewAchievements    []models.Achievement  `json:"new_achievements"`
	AutoCompletedTasks []models.Task         `json:"auto_completed_tasks"`
}

func completeSession(t *testing.T, s *Server, token string, id uuid.UUID) *completionResponse {
	t.Helper()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+id.String()+"/complete", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d: %s", rec.Code, rec.Body.String())
	}
	var out completionResponse
	decodeBody(t, rec, &out)
	return &out
}

// TestRegisterDuplicateEmail verifies the second registration with the same
// email is rejected with 400.
func TestRegisterDuplicateEmail(t *testing.T) {
	s, _ := newTestServer(t)
	n := time.Now().UnixNano()
	reg := models.RegisterRequest{
		Email:    fmt.Sprintf("dup-%d@example.com", n),
		Username: fmt.Sprintf("dupone%d", n),
		Password: "hunter2hunter2",
	}
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", reg); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d: %s", rec.Code, rec.Body.String())
	}
	reg.Username = fmt.Sprintf("duptwo%d", n)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", reg)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second register status = %d, want 400", rec.Code)
	}
}

// TestLoginRoundTrip verifies a wrong password is rejected while the correct
// one yields a token that /auth/me accepts.
func TestLoginRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)
	n := time.Now().UnixNano()
	email := fmt.Sprintf("login-%d@example.com", n)
	reg := models.RegisterRequest{
		Email:    email,
		Username: fmt.Sprintf("login%d", n),
		Password: "hunter2hunter2",
	}
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", "", reg); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", rec.Code, rec.Body.String())
	}

	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Email: email, Password: "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Email: email, Password: "hunter2hunter2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	var tok models.TokenResponse
	decodeBody(t, rec, &tok)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/auth/me", tok.AccessToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d: %s", rec.Code, rec.Body.String())
	}
	var me models.User
	decodeBody(t, rec, &me)
	if me.Email != email {
		t.Errorf("me email = %q, want %q", me.Email, email)
	}
}

// TestRoutineExerciseOrdering verifies a routine created with three
// exercises returns exactly those three in the submitted order.
func TestRoutineExerciseOrdering(t *testing.T) {
	s, _ := newTestServer(t)
	token, _ := registerUser(t, s, "routine")
	picked := pickExercises(t, s, 3)

	create := models.RoutineCreate{Name: "Full body A"}
	for i, ex := range picked {
		create.Exercises = append(create.Exercises, models.RoutineExerciseCreate{
			ExerciseID: ex.ID, ExerciseOrder: i + 1,
		})
	}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/routines", token, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create routine status = %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Routine
	decodeBody(t, rec, &created)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/routines/"+created.ID.String(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get routine status = %d", rec.Code)
	}
	var got models.Routine
	decodeBody(t, rec, &got)
	if len(got.Exercises) != 3 {
		t.Fatalf("exercises = %d, want 3", len(got.Exercises))
	}
	for i, re := range got.Exercises {
		if re.ExerciseID != picked[i].ID {
			t.Errorf("exercise %d = %s, want %s", i, re.ExerciseID, picked[i].ID)
		}
		if re.ExerciseOrder != i+1 {
			t.Errorf("exercise %d order = %d, want %d", i, re.ExerciseOrder, i+1)
		}
	}
}

// TestSetLoggingMarksPR verifies a heavier work set is flagged is_pr and
// recorded, while a lighter follow-up is not.
func TestSetLoggingMarksPR(t *testing.T) {
	s, _ := newTestServer(t)
	token, _ := registerUser(t, s, "pr")
	ex := pickExercises(t, s, 1)[0]
	session := startSession(t, s, token)
	setsPath := "/api/v1/sessions/" + session.ID.String() + "/sets"

	rec := doJSON(t, s, http.MethodPost, setsPath, token, models.SetCreate{
		ExerciseID: ex.ID, RepsCompleted: 5, WeightKg: 100,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first set status = %d: %s", rec.Code, rec.Body.String())
	}
	var first models.ExerciseSet
	decodeBody(t, rec, &first)
	if !first.IsPR {
		t.Error("first work set is_pr = false, want true")
	}

	rec = doJSON(t, s, http.MethodPost, setsPath, token, models.SetCreate{
		ExerciseID: ex.ID, RepsCompleted: 5, WeightKg: 80,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("second set status = %d", rec.Code)
	}
	var second models.ExerciseSet
	decodeBody(t, rec, &second)
	if second.IsPR {
		t.Error("lighter set is_pr = true, want false")
	}

	// A heavier warmup must not register either.
	rec = doJSON(t, s, http.MethodPost, setsPath, token, models.SetCreate{
		ExerciseID: ex.ID, RepsCompleted: 5, WeightKg: 120, IsWarmup: true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("warmup set status = %d", rec.Code)
	}
	var warmup models.ExerciseSet
	decodeBody(t, rec, &warmup)
	if warmup.IsPR {
		t.Error("warmup is_pr = true, want false")
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/progress/prs?exercise_id="+ex.ID.String(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("prs status = %d", rec.Code)
	}
	var records []models.PersonalRecord
	decodeBody(t, rec, &records)
	for _, r := range records {
		if r.PRType == models.PRMaxWeight && r.Value != 100 {
			t.Errorf("max weight record = %v, want 100", r.Value)
		}
	}
	if len(records) == 0 {
		t.Error("no personal records, want MAX_WEIGHT and ONE_REP_MAX")
	}
}

// TestAddSetRejectedBeforeRecordWrite verifies a set aimed at a completed or
// unknown session fails without touching the PR table.
func TestAddSetRejectedBeforeRecordWrite(t *testing.T) {
	s, _ := newTestServer(t)
	token, _ := registerUser(t, s, "closed")
	ex := pickExercises(t, s, 1)[0]

	session := startSession(t, s, token)
	completeSession(t, s, token, session.ID)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+session.ID.String()+"/sets", token, models.SetCreate{
		ExerciseID: ex.ID, RepsCompleted: 5, WeightKg: 200,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("set into completed session status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+uuid.NewString()+"/sets", token, models.SetCreate{
		ExerciseID: ex.ID, RepsCompleted: 5, WeightKg: 200,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("set into unknown session status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/progress/prs", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("prs status = %d", rec.Code)
	}
	var records []models.PersonalRecord
	decodeBody(t, rec, &records)
	if len(records) != 0 {
		t.Errorf("records = %d after rejected sets, want 0", len(records))
	}
}

// TestCompletionAggregates verifies completion sums volume over work sets
// only and folds it into the user's totals and streak.
func TestCompletionAggregates(t *testing.T) {
	s, _ := newTestServer(t)
	token, _ := registerUser(t, s, "volume")
	ex := pickExercises(t, s, 1)[0]
	session := startSession(t, s, token)
	setsPath := "/api/v1/sessions/" + session.ID.String() + "/sets"

	for _, set := range []models.SetCreate{
		{ExerciseID: ex.ID, RepsCompleted: 10, WeightKg: 60, IsWarmup: true},
		{ExerciseID: ex.ID, RepsCompleted: 5, WeightKg: 100},
		{ExerciseID: ex.ID, RepsCompleted: 5, WeightKg: 100},
	} {
		if rec := doJSON(t, s, http.MethodPost, setsPath, token, set); rec.Code != http.StatusCreated {
			t.Fatalf("add set status = %d: %s", rec.Code, rec.Body.String())
		}
	}

	out := completeSession(t, s, token, session.ID)
	if out.Session.TotalVolumeKg != 1000 {
		t.Errorf("total volume = %v, want 1000 (warmup excluded)", out.Session.TotalVolumeKg)
	}
	if out.Session.TotalSets != 2 || out.Session.TotalReps != 10 {
		t.Errorf("totals = %d sets / %d reps, want 2 / 10", out.Session.TotalSets, out.Session.TotalReps)
	}
	if out.CurrentStreakDays != 1 {
		t.Errorf("streak = %d, want 1", out.CurrentStreakDays)
	}

	rec := doJSON(t, s, http.MethodGet, "/api/v1/auth/me", token, nil)
	var me models.User
	decodeBody(t, rec, &me)
	if me.TotalVolumeKg != 1000 {
		t.Errorf("user volume = %v, want 1000", me.TotalVolumeKg)
	}
	if me.CurrentStreakDays != 1 {
		t.Errorf("user streak = %d, want 1", me.CurrentStreakDays)
	}

	// Re-completing is an invalid state transition.
	rec = doJSON(t, s, http.MethodPost, "/api/v1/sessions/"+session.ID.String()+"/complete", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("re-complete status = %d, want 400", rec.Code)
	}
}

// TestWorkoutsPerWeekTaskFlips verifies a linked task stays open until the
// third completed session of the week, then completes, and reopens once the
// window no longer holds.
func TestWorkoutsPerWeekTaskFlips(t *testing.T) {
	s, _ := newTestServer(t)
	token, user := registerUser(t, s, "weekly")

	three := 3
	rec := doJSON(t, s, http.MethodPost, "/api/v1/tasks", token, models.TaskCreate{
		Title:       "Train three times",
		FitnessLink: &models.FitnessLink{Type: models.LinkWorkoutsPerWeek, WorkoutsPerWeek: &three},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task status = %d: %s", rec.Code, rec.Body.String())
	}
	var task models.Task
	decodeBody(t, rec, &task)

	getTask := func() models.Task {
		t.Helper()
		rec := doJSON(t, s, http.MethodGet, "/api/v1/tasks/"+task.ID.String(), token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("get task status = %d", rec.Code)
		}
		var got models.Task
		decodeBody(t, rec, &got)
		return got
	}

	for i := 0; i < 3; i++ {
		if got := getTask(); got.Completed {
			t.Fatalf("task completed after %d sessions, want open until 3", i)
		}
		session := startSession(t, s, token)
		completeSession(t, s, token, session.ID)
	}
	if got := getTask(); !got.Completed {
		t.Error("task still open after 3 completed sessions, want completed")
	}

	// Once the week window rolls over the count drops below the target and
	// the check must reopen the task.
	nextWeek := time.Now().UTC().AddDate(0, 0, 8)
	flipped, err := s.checkFitnessTasks(context.Background(), user.ID, nextWeek)
	if err != nil {
		t.Fatalf("check fitness tasks: %v", err)
	}
	reopened := false
	for _, f := range flipped {
		if f.ID == task.ID && !f.Completed {
			reopened = true
		}
	}
	if !reopened {
		t.Error("task not reopened after week rollover")
	}
	if got := getTask(); got.Completed {
		t.Error("task completed after rollover check, want open")
	}
}
