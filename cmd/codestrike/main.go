package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/codestrike/adapter/cli"
	"github.com/felixgeelhaar/codestrike/internal/app"
	goalCommands "github.com/felixgeelhaar/codestrike/internal/goals/application/commands"
	"github.com/felixgeelhaar/codestrike/pkg/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development defaults", "error", err)
		cfg = &config.Config{AppEnv: "development", BaselineDailyTarget: 3}
	}

	if cfg.LogLevel == "debug" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		logger.Error("invalid CODESTRIKE_USER_ID", "error", err)
		os.Exit(1)
	}

	// First run gets the starter goals.
	if _, err := container.SeedGoalsHandler.Handle(ctx, goalCommands.SeedGoalsCommand{UserID: userID}); err != nil {
		logger.Warn("failed to seed default goals", "error", err)
	}

	cli.SetApp(&cli.App{
		RecordManualHandler:  container.RecordManualHandler,
		SyncProgressHandler:  container.SyncProgressHandler,
		CloseDayHandler:      container.CloseDayHandler,
		AcceptCatchUpHandler: container.AcceptCatchUpHandler,
		DeleteAccountHandler: container.DeleteAccountHandler,
		GetDashboardHandler:  container.GetDashboardHandler,
		GetWeekHandler:       container.GetWeekHandler,
		GetHeatmapHandler:    container.GetHeatmapHandler,
		GetExcusesHandler:    container.GetExcusesHandler,
		SeedGoalsHandler:     container.SeedGoalsHandler,
		UpdateGoalHandler:    container.UpdateGoalHandler,
		ListGoalsHandler:     container.ListGoalsHandler,
		LeetCodeUsername:     cfg.LeetCodeUsername,
		CurrentUserID:        userID,
	})

	cli.Execute()
}
