package rest

import (
	"fmt"
	"sort"
	"sync"

	"github.com/easydb/easydb/pkg/sqlite"
)

// Registry holds the set of tables exposed over HTTP. It is built once
// during server initialization and consulted by the generic dispatcher on
// every request; a table that is not registered has no routes.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]struct{})}
}

// Expose registers a table name for serving. The name must pass the
// identifier allow-list and be non-empty.
func (r *Registry) Expose(name string) error {
	if name == "" || !sqlite.ValidIdent(name) {
		return fmt.Errorf("%w: table %q", ErrInvalidIdentifier, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[name] = struct{}{}
	return nil
}

// Exposed reports whether CRUD routes exist for the table.
func (r *Registry) Exposed(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tables[name]
	return ok
}

// Names returns the exposed table names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
