package httputil

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
)

// Middleware wraps an http.Handler to modify or enhance its behavior.
type Middleware func(http.Handler) http.Handler

// Router dispatches requests through a middleware chain to handlers
// registered with Go 1.22 method patterns ("GET /students/{id}").
type Router struct {
	mux        *http.ServeMux
	server     *http.Server
	middleware []Middleware
	mu         sync.RWMutex
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		mux:    http.NewServeMux(),
		server: &http.Server{},
	}
}

// Use adds one or more middleware to the router. Middleware are applied in
// the order they are added; the first added is the outermost wrapper.
func (r *Router) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw...)
}

// Handle registers a handler for "METHOD /pattern".
func (r *Router) Handle(methodPattern string, handler http.Handler) {
	parts := strings.SplitN(methodPattern, " ", 2)
	if len(parts) != 2 {
		log.Fatalf("invalid method pattern: %s", methodPattern)
	}
	method, pattern := parts[0], parts[1]

	r.mu.RLock()
	defer r.mu.RUnlock()
	r.mux.Handle(fmt.Sprintf("%s %s", method, pattern), handler)
}

// HandleFunc registers a handler function for "METHOD /pattern".
func (r *Router) HandleFunc(methodPattern string, handler func(http.ResponseWriter, *http.Request)) {
	r.Handle(methodPattern, http.HandlerFunc(handler))
}

// Handler returns the router's root handler with all middleware applied,
// for mounting in tests or another server.
func (r *Router) Handler() http.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var handler http.Handler = r.mux
	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}
	return handler
}

// ListenAndServe starts the HTTP server on addr.
func (r *Router) ListenAndServe(addr string) error {
	r.server.Addr = addr
	r.server.Handler = r.Handler()
	return r.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}
