package database

import "strings"

// Driver identifies the database backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func (d Driver) String() string { return string(d) }

// DetectDriver infers the backend from a connection string. An empty URL
// selects SQLite so the CLI works locally with zero configuration.
func DetectDriver(url string) Driver {
	switch {
	case url == "":
		return DriverSQLite
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres
	case strings.HasPrefix(url, "sqlite://"),
		strings.HasPrefix(url, "file:"),
		strings.HasSuffix(url, ".db"),
		strings.HasSuffix(url, ".sqlite"),
		strings.HasSuffix(url, ".sqlite3"):
		return DriverSQLite
	default:
		return DriverPostgres
	}
}
