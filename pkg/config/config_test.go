package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "easydb.db", cfg.DB.Path)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Tables)
}

func TestLoadKeepsDefaultsForUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listenAddr: \":7070\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, "easydb.db", cfg.DB.Path)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "easydb.yaml")
	content := `
listenAddr: ":9000"
db:
  path: "school.db"
tables:
  - name: students
    columns: "id INTEGER PRIMARY KEY, name TEXT, age INTEGER, gpa REAL"
  - name: grades
    columns: "id INTEGER PRIMARY KEY, school_number INTEGER, score INTEGER"
metrics:
  enabled: true
  addr: ":9101"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "school.db", cfg.DB.Path)
	require.Len(t, cfg.Tables, 2)
	assert.Equal(t, "students", cfg.Tables[0].Name)
	assert.Contains(t, cfg.Tables[0].Columns, "INTEGER PRIMARY KEY")
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9101", cfg.Metrics.Addr)
}
