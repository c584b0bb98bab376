package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	advisorDomain "github.com/felixgeelhaar/codestrike/internal/advisor/domain"
	"github.com/felixgeelhaar/codestrike/internal/advisor/infrastructure/gemini"
	goalCommands "github.com/felixgeelhaar/codestrike/internal/goals/application/commands"
	goalQueries "github.com/felixgeelhaar/codestrike/internal/goals/application/queries"
	goalsDomain "github.com/felixgeelhaar/codestrike/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/codestrike/internal/shared/application"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database/postgres" // register postgres driver
	_ "github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database/sqlite"   // register sqlite driver
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/outbox"
	statsDomain "github.com/felixgeelhaar/codestrike/internal/stats/domain"
	"github.com/felixgeelhaar/codestrike/internal/stats/infrastructure/leetcode"
	trackingCommands "github.com/felixgeelhaar/codestrike/internal/tracking/application/commands"
	trackingQueries "github.com/felixgeelhaar/codestrike/internal/tracking/application/queries"
	trackingDomain "github.com/felixgeelhaar/codestrike/internal/tracking/domain"
	"github.com/felixgeelhaar/codestrike/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis
	RedisClient *redis.Client

	// Repositories
	TrackerRepo trackingDomain.Repository
	GoalRepo    goalsDomain.Repository
	OutboxRepo  outbox.Repository

	// Collaborators
	EventPublisher eventbus.Publisher
	StatsProvider  statsDomain.Provider
	Analyzer       advisorDomain.Analyzer
	UnitOfWork     sharedApplication.UnitOfWork

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

	// Outbox processor
	OutboxProcessor *outbox.Processor
}

// NewContainer creates and wires all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	sqlitePath := cfg.SQLitePath
	if sqlitePath == "" {
		sqlitePath = database.DefaultSQLitePath()
	}
	conn, err := database.NewConnection(ctx, database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: sqlitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()
	logger.Debug("connected to database", "driver", c.DBDriver)

	if err := migrations.Run(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Redis is optional; without it the stats client just skips caching.
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				_ = conn.Close()
				return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, stats caching disabled", "error", err)
		} else {
			redisClient := redis.NewClient(opt)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				if !cfg.IsDevelopment() {
					_ = conn.Close()
					return nil, fmt.Errorf("failed to connect to Redis: %w", err)
				}
				logger.Warn("Redis not available, stats caching disabled", "error", err)
			} else {
				c.RedisClient = redisClient
				logger.Debug("connected to Redis")
			}
		}
	}

	// Create repositories
	factory := NewRepositoryFactory(conn)
	if c.TrackerRepo, err = factory.TrackerRepository(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if c.GoalRepo, err = factory.GoalRepository(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if c.OutboxRepo, err = factory.OutboxRepository(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	c.UnitOfWork = database.NewUnitOfWork(conn)

	// Create event publisher
	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		// Fall back to noop publisher in development
		if cfg.IsDevelopment() {
			logger.Debug("RabbitMQ not available, using noop publisher")
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
	} else {
		c.EventPublisher = publisher
	}

	// Stats provider
	c.StatsProvider = leetcode.NewClient(leetcode.Config{
		BaseURL:  cfg.LeetCodeAPIURL,
		CacheTTL: cfg.StatsCacheTTL,
	}, c.RedisClient, logger)

	// Impact analyzer; the catch-up flow degrades to the canned analysis
	// when no API key is configured.
	if cfg.GeminiAPIKey != "" {
		analyzer, err := gemini.NewAnalyzer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Warn("failed to create impact analyzer", "error", err)
		} else {
			c.Analyzer = analyzer
		}
	}

	// Tracking command handlers
	baseline := cfg.BaselineDailyTarget
	c.RecordManualHandler = trackingCommands.NewRecordManualHandler(c.TrackerRepo, c.GoalRepo, c.OutboxRepo, c.UnitOfWork, baseline)
	c.SyncProgressHandler = trackingCommands.NewSyncProgressHandler(c.TrackerRepo, c.GoalRepo, c.StatsProvider, c.OutboxRepo, c.UnitOfWork, baseline)
	c.CloseDayHandler = trackingCommands.NewCloseDayHandler(c.TrackerRepo, c.OutboxRepo, c.UnitOfWork, baseline)
	c.AcceptCatchUpHandler = trackingCommands.NewAcceptCatchUpHandler(c.TrackerRepo, c.GoalRepo, c.Analyzer, c.OutboxRepo, c.UnitOfWork, baseline, logger)
	c.DeleteAccountHandler = trackingCommands.NewDeleteAccountHandler(c.TrackerRepo, c.GoalRepo, c.UnitOfWork)

	// Tracking query handlers
	c.GetDashboardHandler = trackingQueries.NewGetDashboardHandler(c.TrackerRepo, c.GoalRepo, baseline)
	c.GetWeekHandler = trackingQueries.NewGetWeekHandler(c.TrackerRepo, baseline)
	c.GetHeatmapHandler = trackingQueries.NewGetHeatmapHandler(c.TrackerRepo)
	c.GetExcusesHandler = trackingQueries.NewGetExcusesHandler(c.TrackerRepo)

	// Goal handlers
	c.SeedGoalsHandler = goalCommands.NewSeedGoalsHandler(c.GoalRepo, c.UnitOfWork)
	c.UpdateGoalHandler = goalCommands.NewUpdateGoalHandler(c.GoalRepo, c.TrackerRepo, c.UnitOfWork)
	c.ListGoalsHandler = goalQueries.NewListGoalsHandler(c.GoalRepo)

	// Outbox processor
	if cfg.OutboxProcessorEnabled {
		c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
			PollInterval:     cfg.OutboxPollInterval,
			BatchSize:        cfg.OutboxBatchSize,
			MaxRetries:       cfg.OutboxMaxRetries,
			RetryBackoffBase: outbox.DefaultProcessorConfig().RetryBackoffBase,
			RetryBackoffMax:  outbox.DefaultProcessorConfig().RetryBackoffMax,
		}, logger)
		c.OutboxProcessor.Start(ctx)
		logger.Debug("outbox processor started")
	}

	return c, nil
}

// Close releases all resources held by the container.
func (c *Container) Close() error {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}
	if c.EventPublisher != nil {
		_ = c.EventPublisher.Close()
	}
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.DBConn != nil {
		return c.DBConn.Close()
	}
	return nil
}
