package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/todoplus/internal/models"
	"github.com/meltforce/todoplus/internal/storage"
)

// --- Tool definitions ---

var toolGetDashboard = mcp.NewTool("get_dashboard_stats",
	mcp.WithDescription("Training overview: current and longest streak, lifetime volume, account level, workouts and personal records this month, recent sessions."),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("List the user's personal records (max weight and estimated one-rep max per exercise), most recent first."),
	mcp.WithString("exercise_id", mcp.Description("Filter to one exercise by UUID")),
)

var toolGetRecentSessions = mcp.NewTool("get_recent_sessions",
	mcp.WithDescription("List recent workout sessions with routine name, duration, volume, and set/rep totals."),
	mcp.WithNumber("limit", mcp.Description("Number of sessions to return. Defaults to 10, max 100.")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Per-set history for one exercise across all sessions, newest first. Warmup sets are excluded."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise UUID")),
	mcp.WithNumber("limit", mcp.Description("Number of sets to return. Defaults to 100.")),
)

var toolSearchExercises = mcp.NewTool("search_exercises",
	mcp.WithDescription("Search the exercise library by name, muscle, or equipment."),
	mcp.WithString("search", mcp.Description("Substring matched against name, muscle, and equipment")),
	mcp.WithString("muscle", mcp.Description("Filter by muscle group (e.g. 'Espalda', 'Pecho')")),
	mcp.WithNumber("limit", mcp.Description("Number of exercises to return. Defaults to 50.")),
)

var toolGetAchievements = mcp.NewTool("get_achievements",
	mcp.WithDescription("List achievement definitions together with the user's unlocks."),
)

var toolGetTasks = mcp.NewTool("get_tasks",
	mcp.WithDescription("List the user's tasks with subtasks and fitness links."),
	mcp.WithBoolean("completed", mcp.Description("Filter by completion state")),
)

var toolGetTaskStats = mcp.NewTool("get_task_stats",
	mcp.WithDescription("Aggregate task counts: total, completed, open, fitness-linked, and overdue."),
)

// --- Tool handlers ---

func (h *handlers) requireUser(ctx context.Context) (uuid.UUID, *mcp.CallToolResult) {
	uid := UserIDFromContext(ctx)
	if uid == uuid.Nil {
		return uuid.Nil, mcp.NewToolResultError("not authenticated: pass a bearer token")
	}
	return uid, nil
}

func (h *handlers) getDashboard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, errResult := h.requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	stats, err := h.db.Dashboard(ctx, uid, time.Now().UTC())
	if err != nil {
		h.log.Error("mcp get_dashboard_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, errResult := h.requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	var exerciseID *uuid.UUID
	if s := req.GetString("exercise_id", ""); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return mcp.NewToolResultError("invalid exercise_id"), nil
		}
		exerciseID = &id
	}

	records, err := h.db.ListRecords(ctx, uid, exerciseID)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecentSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, errResult := h.requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	limit := req.GetInt("limit", 10)
	sessions, err := h.db.ListSessions(ctx, uid, limit, 0)
	if err != nil {
		h.log.Error("mcp get_recent_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, errResult := h.requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	idStr, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	exerciseID, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid exercise_id"), nil
	}

	history, err := h.db.ExerciseSetHistory(ctx, uid, exerciseID, req.GetInt("limit", 100))
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) searchExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := models.ExerciseFilter{
		Search: req.GetString("search", ""),
		Muscle: req.GetString("muscle", ""),
		Limit:  req.GetInt("limit", 50),
	}
	exercises, err := h.db.ListExercises(ctx, f)
	if err != nil {
		h.log.Error("mcp search_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getAchievements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, errResult := h.requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	all, err := h.db.ListAchievements(ctx)
	if err != nil {
		h.log.Error("mcp get_achievements", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	unlocks, err := h.db.ListUserAchievements(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_achievements unlocks", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"definitions": all,
		"unlocked":    unlocks,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, errResult := h.requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	var f storage.TaskFilter
	if completed, ok := req.GetArguments()["completed"].(bool); ok {
		f.Completed = &completed
	}

	tasks, err := h.db.ListTasks(ctx, uid, f)
	if err != nil {
		h.log.Error("mcp get_tasks", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(tasks)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTaskStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid, errResult := h.requireUser(ctx)
	if errResult != nil {
		return errResult, nil
	}

	stats, err := h.db.TaskStats(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_task_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Resource handlers ---

func (h *handlers) dashboardResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	if uid == uuid.Nil {
		return nil, errNotAuthenticated
	}

	stats, err := h.db.Dashboard(ctx, uid, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
