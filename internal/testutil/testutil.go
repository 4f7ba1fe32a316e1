// Package testutil provides shared database helpers for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/easydb/easydb/pkg/sqlite"
	"github.com/stretchr/testify/require"
)

// OpenDB opens a fresh database file in a per-test temp directory and
// closes it when the test finishes.
func OpenDB(t testing.TB) *sqlite.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	return db
}

// CreateStudents creates the students table used across tests.
func CreateStudents(t testing.TB, db *sqlite.DB) {
	t.Helper()
	err := db.CreateTable(context.Background(), "students",
		"id INTEGER PRIMARY KEY, name TEXT, age INTEGER, gpa REAL")
	require.NoError(t, err)
}
