// Package migrations applies the embedded schema on startup. Statements are
// idempotent (CREATE IF NOT EXISTS) so reruns are safe.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/felixgeelhaar/codestrike/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationFS embed.FS

// Run executes all .up.sql migrations for the connection's driver, in
// lexical order.
func Run(ctx context.Context, conn database.Connection) error {
	dir := conn.Driver().String()

	entries, err := migrationFS.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read migrations for %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		script, err := migrationFS.ReadFile(dir + "/" + file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		for _, stmt := range splitStatements(string(script)) {
			if _, err := conn.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply migration %s: %w", file, err)
			}
		}
	}

	return nil
}

// splitStatements breaks a migration script on semicolons. The schema uses
// no procedural SQL, so a plain split is sufficient.
func splitStatements(script string) []string {
	var stmts []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
