package app

import (
	"fmt"

	goalsDomain "github.com/felixgeelhaar/codestrike/internal/goals/domain"
	goalsPersistence "github.com/felixgeelhaar/codestrike/internal/goals/infrastructure/persistence"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/outbox"
	trackingDomain "github.com/felixgeelhaar/codestrike/internal/tracking/domain"
	trackingPersistence "github.com/felixgeelhaar/codestrike/internal/tracking/infrastructure/persistence"
)

// RepositoryFactory creates repositories matching the connection's driver.
type RepositoryFactory struct {
	conn   database.Connection
	driver database.Driver
}

// NewRepositoryFactory creates a new repository factory.
func NewRepositoryFactory(conn database.Connection) *RepositoryFactory {
	return &RepositoryFactory{
		conn:   conn,
		driver: conn.Driver(),
	}
}

// TrackerRepository creates a tracker repository for the configured driver.
func (f *RepositoryFactory) TrackerRepository() (trackingDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return trackingPersistence.NewPostgresTrackerRepository(f.conn), nil
	case database.DriverSQLite:
		return trackingPersistence.NewSQLiteTrackerRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// GoalRepository creates a goal repository for the configured driver.
func (f *RepositoryFactory) GoalRepository() (goalsDomain.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return goalsPersistence.NewPostgresGoalRepository(f.conn), nil
	case database.DriverSQLite:
		return goalsPersistence.NewSQLiteGoalRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// OutboxRepository creates an outbox repository for the configured driver.
func (f *RepositoryFactory) OutboxRepository() (outbox.Repository, error) {
	switch f.driver {
	case database.DriverPostgres:
		return outbox.NewPostgresRepository(f.conn), nil
	case database.DriverSQLite:
		return outbox.NewSQLiteRepository(f.conn), nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}
