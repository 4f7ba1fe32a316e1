package rest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/easydb/easydb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONValue(t *testing.T) {
	t.Run("null", func(t *testing.T) {
		assert.Nil(t, jsonValue(nil, "TEXT"))
	})

	t.Run("integer and real pass through", func(t *testing.T) {
		assert.Equal(t, int64(42), jsonValue(int64(42), "INTEGER"))
		assert.Equal(t, 3.14, jsonValue(3.14, "REAL"))
	})

	t.Run("text bytes decode to string", func(t *testing.T) {
		assert.Equal(t, "hello", jsonValue([]byte("hello"), "TEXT"))
	})

	t.Run("invalid utf8 collapses to empty string", func(t *testing.T) {
		assert.Equal(t, "", jsonValue([]byte{0xff, 0xfe, 0xfd}, "TEXT"))
		assert.Equal(t, "", jsonValue(string([]byte{0xff, 0xfe}), "TEXT"))
	})

	t.Run("blob renders as byte listing", func(t *testing.T) {
		assert.Equal(t, "[1 2 3]", jsonValue([]byte{1, 2, 3}, "BLOB"))
	})
}

func TestBindValue(t *testing.T) {
	t.Run("null stays null", func(t *testing.T) {
		assert.Nil(t, bindValue(nil))
	})

	t.Run("bool stays bool", func(t *testing.T) {
		assert.Equal(t, true, bindValue(true))
	})

	t.Run("integral number binds as int64", func(t *testing.T) {
		assert.Equal(t, int64(20), bindValue(float64(20)))
		assert.Equal(t, int64(20), bindValue(json.Number("20")))
	})

	t.Run("fractional number binds as float64", func(t *testing.T) {
		assert.Equal(t, 3.8, bindValue(3.8))
		assert.Equal(t, 3.8, bindValue(json.Number("3.8")))
	})

	t.Run("string stays string", func(t *testing.T) {
		assert.Equal(t, "Alice", bindValue("Alice"))
	})

	t.Run("nested structures stored as JSON text", func(t *testing.T) {
		assert.Equal(t, `["a","b"]`, bindValue([]any{"a", "b"}))
		assert.Equal(t, `{"k":1}`, bindValue(map[string]any{"k": 1}))
	})
}

func TestRowsToJSON(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateTable(ctx, "misc",
		"id INTEGER PRIMARY KEY, label TEXT, count INTEGER, ratio REAL, data BLOB, extra TEXT"))

	_, err := db.Exec(ctx,
		"INSERT INTO misc (label, count, ratio, data, extra) VALUES (?, ?, ?, ?, ?)",
		"hello", int64(42), 2.5, []byte{1, 2, 3}, nil)
	require.NoError(t, err)

	rows, err := db.Query(ctx, "SELECT * FROM misc")
	require.NoError(t, err)
	defer rows.Close()

	results, err := rowsToJSON(rows)
	require.NoError(t, err)
	require.Len(t, results, 1)

	row := results[0]
	assert.Equal(t, int64(1), row["id"])
	assert.Equal(t, "hello", row["label"])
	assert.Equal(t, int64(42), row["count"])
	assert.Equal(t, 2.5, row["ratio"])
	assert.Equal(t, "[1 2 3]", row["data"])
	assert.Nil(t, row["extra"])
}

func TestRowsToJSONEmptyResultIsNotNil(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()
	testutil.CreateStudents(t, db)

	rows, err := db.Query(ctx, "SELECT * FROM students")
	require.NoError(t, err)
	defer rows.Close()

	results, err := rowsToJSON(rows)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)

	encoded, err := json.Marshal(results)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(encoded))
}
