package mcp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/todoplus/internal/auth"
	"github.com/meltforce/todoplus/internal/storage"
)

type contextKey int

const userIDKey contextKey = iota

var errNotAuthenticated = errors.New("not authenticated")

// UserIDFromContext extracts the user ID injected by the transport layer.
// uuid.Nil means the request was not authenticated.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(db *storage.DB, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("ToDoApp Plus", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("ToDoApp Plus training and task server. Query workout progress, personal records, achievements, and tasks. All data is scoped to the authenticated user."),
	)

	h := &handlers{db: db, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetDashboard, Handler: h.getDashboard},
		server.ServerTool{Tool: toolGetPersonalRecords, Handler: h.getPersonalRecords},
		server.ServerTool{Tool: toolGetRecentSessions, Handler: h.getRecentSessions},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolSearchExercises, Handler: h.searchExercises},
		server.ServerTool{Tool: toolGetAchievements, Handler: h.getAchievements},
		server.ServerTool{Tool: toolGetTasks, Handler: h.getTasks},
		server.ServerTool{Tool: toolGetTaskStats, Handler: h.getTaskStats},
	)

	s.AddResources(
		server.ServerResource{Resource: resDashboard, Handler: h.dashboardResource},
	)

	return s
}

// NewHTTPHandler wraps the MCP server in a StreamableHTTP transport that
// authenticates each request with the same bearer tokens as the REST API.
func NewHTTPHandler(mcpServer *server.MCPServer, tokens *auth.TokenIssuer, basePath string) http.Handler {
	return server.NewStreamableHTTPServer(mcpServer,
		server.WithEndpointPath(basePath),
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				return ctx
			}
			userID, err := tokens.Verify(token)
			if err != nil {
				return ctx
			}
			return WithUserID(ctx, userID)
		}),
	)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db  *storage.DB
	log *slog.Logger
}

var resDashboard = mcp.NewResource(
	"todoplus://dashboard",
	"Training Dashboard",
	mcp.WithResourceDescription("Current streak, lifetime volume, account level, this month's workouts and PRs, and recent sessions"),
	mcp.WithMIMEType("application/json"),
)
