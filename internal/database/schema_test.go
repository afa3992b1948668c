package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (Execer, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func TestSplitStatements(t *testing.T) {
	script := `
-- leading comment
CREATE TABLE a (id int);

;
  -- only a comment here
;
CREATE INDEX a_idx ON a (id);
`

	statements := SplitStatements(script)

	assert.Equal(t, []string{
		"-- leading comment\nCREATE TABLE a (id int)",
		"CREATE INDEX a_idx ON a (id)",
	}, statements)
}

func TestSplitStatements_EmbeddedScript(t *testing.T) {
	statements := SplitStatements(SchemaScript())

	require.NotEmpty(t, statements)
	assert.Contains(t, statements[0], "CREATE TABLE IF NOT EXISTS blog_entry")
	for _, statement := range statements {
		assert.Contains(t, statement, "IF NOT EXISTS")
	}
}

func TestInitSchema_RunsEveryStatement(t *testing.T) {
	db, mock := newMock(t)
	nop := zerolog.Nop()

	for _, statement := range SplitStatements(SchemaScript()) {
		mock.ExpectExec(statement).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, InitSchema(context.Background(), db, &nop))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchema_RerunIsHarmless(t *testing.T) {
	db, mock := newMock(t)
	nop := zerolog.Nop()

	statements := SplitStatements(SchemaScript())
	for run := 0; run < 2; run++ {
		for _, statement := range statements {
			mock.ExpectExec(statement).WillReturnResult(sqlmock.NewResult(0, 0))
		}
	}

	require.NoError(t, InitSchema(context.Background(), db, &nop))
	require.NoError(t, InitSchema(context.Background(), db, &nop))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunScript_FailureAborts(t *testing.T) {
	db, mock := newMock(t)
	nop := zerolog.Nop()

	script := "CREATE TABLE a (id int); CREATE TABLE b (id int); CREATE TABLE c (id int)"
	mock.ExpectExec("CREATE TABLE a (id int)").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE b (id int)").WillReturnError(errors.New("permission denied for schema public"))

	err := RunScript(context.Background(), db, &nop, script)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "running schema statement 2 of 3")
	assert.Contains(t, err.Error(), "permission denied")
	// The third statement never runs.
	assert.NoError(t, mock.ExpectationsWereMet())
}
