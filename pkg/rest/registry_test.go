package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Expose("students"))
	require.NoError(t, r.Expose("grades"))

	assert.True(t, r.Exposed("students"))
	assert.False(t, r.Exposed("teachers"))
	assert.Equal(t, []string{"grades", "students"}, r.Names())

	// Re-exposing is idempotent
	require.NoError(t, r.Expose("students"))
	assert.Len(t, r.Names(), 2)
}

func TestRegistryRejectsInvalidNames(t *testing.T) {
	r := NewRegistry()

	assert.ErrorIs(t, r.Expose(""), ErrInvalidIdentifier)
	assert.ErrorIs(t, r.Expose("bad table"), ErrInvalidIdentifier)
	assert.ErrorIs(t, r.Expose("t;DROP"), ErrInvalidIdentifier)
	assert.Empty(t, r.Names())
}
