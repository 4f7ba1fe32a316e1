package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, path, db.Path())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.CreateTable(ctx, "notes", "id INTEGER PRIMARY KEY, body TEXT"))
	_, err = db.Exec(ctx, "INSERT INTO notes (body) VALUES (?)", "kept")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(ctx, "SELECT body FROM notes")
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var body string
	require.NoError(t, rows.Scan(&body))
	assert.Equal(t, "kept", body)
}

func TestCreateTable(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateTable(ctx, "students", "id INTEGER PRIMARY KEY, name TEXT"))

	// IF NOT EXISTS: creating again is not an error
	require.NoError(t, db.CreateTable(ctx, "students", "id INTEGER PRIMARY KEY, name TEXT"))

	affected, err := db.Exec(ctx, "INSERT INTO students (name) VALUES (?)", "Alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestCreateTableRejectsInvalidName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := db.CreateTable(ctx, "students; DROP TABLE sqlite_master", "id INTEGER")
	assert.Error(t, err)

	err = db.CreateTable(ctx, "bad name", "id INTEGER")
	assert.Error(t, err)
}

func TestExecReportsRowsAffected(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.CreateTable(ctx, "notes", "id INTEGER PRIMARY KEY, body TEXT"))

	for _, body := range []string{"one", "two", "three"} {
		_, err := db.Exec(ctx, "INSERT INTO notes (body) VALUES (?)", body)
		require.NoError(t, err)
	}

	affected, err := db.Exec(ctx, "UPDATE notes SET body = ? WHERE body != ?", "same", "one")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	affected, err = db.Exec(ctx, "DELETE FROM notes WHERE id = ?", 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestExecSurfacesConstraintViolation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.CreateTable(ctx, "users", "id INTEGER PRIMARY KEY, email TEXT UNIQUE"))

	_, err := db.Exec(ctx, "INSERT INTO users (email) VALUES (?)", "a@example.com")
	require.NoError(t, err)

	_, err = db.Exec(ctx, "INSERT INTO users (email) VALUES (?)", "a@example.com")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")
}
