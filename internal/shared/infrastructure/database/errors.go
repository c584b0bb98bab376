package database

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows signals an empty result where one row was expected.
var ErrNoRows = errors.New("no rows in result set")

// IsNoRows matches the no-rows sentinel of either driver.
func IsNoRows(err error) bool {
	return err != nil && (errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNoRows))
}
