package cli

import (
	"github.com/google/uuid"

	goalCommands "github.com/felixgeelhaar/codestrike/internal/goals/application/commands"
	goalQueries "github.com/felixgeelhaar/codestrike/internal/goals/application/queries"
	trackingCommands "github.com/felixgeelhaar/codestrike/internal/tracking/application/commands"
	trackingQueries "github.com/felixgeelhaar/codestrike/internal/tracking/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
	// Tracking command handlers
	RecordManualHandler  *trackingCommands.RecordManualHandler
	SyncProgressHandler  *trackingCommands.SyncProgressHandler
	CloseDayHandler      *trackingCommands.CloseDayHandler
	AcceptCatchUpHandler *trackingCommands.AcceptCatchUpHandler
	DeleteAccountHandler *trackingCommands.DeleteAccountHandler

	// Tracking query handlers
	GetDashboardHandler *trackingQueries.GetDashboardHandler
	GetWeekHandler      *trackingQueries.GetWeekHandler
	GetHeatmapHandler   *trackingQueries.GetHeatmapHandler
	GetExcusesHandler   *trackingQueries.GetExcusesHandler

	// Goal handlers
	SeedGoalsHandler  *goalCommands.SeedGoalsHandler
	UpdateGoalHandler *goalCommands.UpdateGoalHandler
	ListGoalsHandler  *goalQueries.ListGoalsHandler

	// LeetCode username used by sync
	LeetCodeUsername string

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
