package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goalCommands "github.com/felixgeelhaar/codestrike/internal/goals/application/commands"
	goalQueries "github.com/felixgeelhaar/codestrike/internal/goals/application/queries"
	trackingCommands "github.com/felixgeelhaar/codestrike/internal/tracking/application/commands"
	trackingQueries "github.com/felixgeelhaar/codestrike/internal/tracking/application/queries"
	"github.com/felixgeelhaar/codestrike/pkg/config"
)

// TestLocalModeContainer exercises the full wiring against a file-backed
// SQLite database, the way the CLI runs without any services configured.
func TestLocalModeContainer(t *testing.T) {
	tempDir := t.TempDir()

	cfg := &config.Config{
		AppEnv:              "development",
		SQLitePath:          filepath.Join(tempDir, "test.db"),
		RabbitMQURL:         "amqp://127.0.0.1:1/", // unreachable, forces the noop publisher
		BaselineDailyTarget: 3,
		UserID:              "00000000-0000-0000-0000-000000000001",
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx := context.Background()
	container, err := NewContainer(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Close() })

	userID := uuid.MustParse(cfg.UserID)

	t.Run("seeds default goals once", func(t *testing.T) {
		seeded, err := container.SeedGoalsHandler.Handle(ctx, goalCommands.SeedGoalsCommand{UserID: userID})
		require.NoError(t, err)
		assert.True(t, seeded)

		seeded, err = container.SeedGoalsHandler.Handle(ctx, goalCommands.SeedGoalsCommand{UserID: userID})
		require.NoError(t, err)
		assert.False(t, seeded)

		goals, err := container.ListGoalsHandler.Handle(ctx, goalQueries.ListGoalsQuery{UserID: userID})
		require.NoError(t, err)
		require.Len(t, goals, 2)
	})

	t.Run("records progress end to end", func(t *testing.T) {
		result, err := container.RecordManualHandler.Handle(ctx, trackingCommands.RecordManualCommand{
			UserID: userID,
			Count:  3,
		})
		require.NoError(t, err)
		assert.True(t, result.TargetJustMet)
		assert.Equal(t, 1, result.Streak)

		view, err := container.GetDashboardHandler.Handle(ctx, trackingQueries.GetDashboardQuery{UserID: userID})
		require.NoError(t, err)
		assert.Equal(t, 3, view.TodayTotal)
		assert.True(t, view.TargetMet)
		assert.Equal(t, 3, view.TotalSolved)

		// Goal progress follows the running total.
		goals, err := container.ListGoalsHandler.Handle(ctx, goalQueries.ListGoalsQuery{UserID: userID})
		require.NoError(t, err)
		for _, g := range goals {
			assert.Equal(t, 3, g.Progress)
		}
	})

	t.Run("delete account wipes everything", func(t *testing.T) {
		err := container.DeleteAccountHandler.Handle(ctx, trackingCommands.DeleteAccountCommand{UserID: userID})
		require.NoError(t, err)

		view, err := container.GetDashboardHandler.Handle(ctx, trackingQueries.GetDashboardQuery{UserID: userID})
		require.NoError(t, err)
		assert.Zero(t, view.TotalSolved)
		assert.Empty(t, view.Goals)
	})
}
