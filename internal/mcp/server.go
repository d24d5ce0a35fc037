package mcp

import (
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered. lang
// selects the language of session guides ("th" or "en").
func New(ds DataSource, version, lang string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RunPro", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RunPro training server. Query logged runs and strength sessions, training stats, race time projections and the active training plan."),
	)

	h := &handlers{ds: ds, lang: lang, now: time.Now, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetTrainingStats, Handler: h.getTrainingStats},
		server.ServerTool{Tool: toolGetWeeklyChart, Handler: h.getWeeklyChart},
		server.ServerTool{Tool: toolProjectRaceTimes, Handler: h.projectRaceTimes},
		server.ServerTool{Tool: toolGetActivePlan, Handler: h.getActivePlan},
		server.ServerTool{Tool: toolListSavedPlans, Handler: h.listSavedPlans},
		server.ServerTool{Tool: toolGetTodaysWorkout, Handler: h.getTodaysWorkout},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resActivePlan, Handler: h.activePlan},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds   DataSource
	lang string
	now  func() time.Time
	log  *slog.Logger
}

// --- Resource definitions ---

var resActivePlan = mcp.NewResource(
	"runpro://active_plan",
	"Active Plan",
	mcp.WithResourceDescription("The training week currently shown to the runner, including uncommitted edits"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"runpro://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts from the last 14 days, newest first"),
	mcp.WithMIMEType("application/json"),
)
