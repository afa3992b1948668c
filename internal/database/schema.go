package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// The schema script ships inside the binary.
//
//go:embed sql/create_database.sql
var createDatabaseSQL string

// StatementDelimiter separates statements in the schema script.
const StatementDelimiter = ";"

// Execer is what InitSchema needs from a database handle. *sqlx.DB,
// *sql.DB and *sql.Tx all satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SchemaScript returns the embedded schema initialization script.
func SchemaScript() string {
	return createDatabaseSQL
}

// SplitStatements splits script on StatementDelimiter and drops fragments
// that are empty or consist only of whitespace and `--` comments.
func SplitStatements(script string) []string {
	fragments := strings.Split(script, StatementDelimiter)
	statements := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		statement := strings.TrimSpace(fragment)
		if isBlankStatement(statement) {
			continue
		}
		statements = append(statements, statement)
	}
	return statements
}

func isBlankStatement(statement string) bool {
	for _, line := range strings.Split(statement, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}

// InitSchema runs the embedded schema script against db.
func InitSchema(ctx context.Context, db Execer, logger *zerolog.Logger) error {
	return RunScript(ctx, db, logger, createDatabaseSQL)
}

// RunScript executes every statement of script in order. The first
// failing statement aborts the run. Statements are expected to be
// re-runnable, so calling RunScript on an initialized database is fine.
func RunScript(ctx context.Context, db Execer, logger *zerolog.Logger, script string) error {
	statements := SplitStatements(script)

	for i, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("running schema statement %d of %d: %w", i+1, len(statements), err)
		}
	}

	logger.Info().Int("statements", len(statements)).Msg("database schema initialized")
	return nil
}
