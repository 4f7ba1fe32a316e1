package rest

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/easydb/easydb/pkg/httputil"
	mw "github.com/easydb/easydb/pkg/httputil/middleware"
	"github.com/easydb/easydb/pkg/metrics"
	"github.com/easydb/easydb/pkg/sqlite"
	"go.uber.org/zap"
)

// Server exposes every registered table as a set of CRUD endpoints through
// one generic dispatcher: the table name is a path parameter resolved
// against the registry, not a generated route per table.
type Server struct {
	db       *sqlite.DB
	registry *Registry
	router   *httputil.Router
	logger   *zap.Logger
}

// NewServer wires a server around an open database handle. A nil logger
// disables logging.
func NewServer(db *sqlite.DB, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		db:       db,
		registry: NewRegistry(),
		router:   httputil.NewRouter(),
		logger:   logger,
	}

	s.router.Use(
		mw.RequestID,
		mw.CORSWithOptions(nil),
		mw.LoggerWithOptions(&mw.LoggerOptions{Logger: logger}),
	)
	s.registerHandlers()

	return s
}

func (s *Server) registerHandlers() {
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("GET /{table}", s.handleList)
	s.router.HandleFunc("POST /{table}", s.handleCreate)
	s.router.HandleFunc("PUT /{table}/{id}", s.handleUpdate)
	s.router.HandleFunc("DELETE /{table}/{id}", s.handleDelete)
}

// CreateTable creates the table if it does not exist and exposes it over
// HTTP. Tables are created once at startup and are immutable for the life
// of the process.
func (s *Server) CreateTable(ctx context.Context, name, columns string) error {
	if err := s.db.CreateTable(ctx, name, columns); err != nil {
		return err
	}
	if err := s.registry.Expose(name); err != nil {
		return err
	}
	s.logger.Info("table exposed", zap.String("table", name))
	return nil
}

// Expose registers CRUD routes for an existing table without issuing DDL.
func (s *Server) Expose(name string) error {
	return s.registry.Expose(name)
}

// Registry returns the server's table registry.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Handler returns the server's root handler with middleware applied,
// suitable for httptest or mounting under another mux.
func (s *Server) Handler() http.Handler {
	return s.router.Handler()
}

// Start serves HTTP on addr until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("server starting", zap.String("addr", addr), zap.Strings("tables", s.registry.Names()))
	return s.router.ListenAndServe(addr)
}

// Shutdown gracefully shuts down the HTTP server. The database handle is
// owned by the caller and stays open.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.router.Shutdown(ctx)
}

// exec runs a write statement, recording duration and failures.
func (s *Server) exec(ctx context.Context, table, op, query string, args []any) (int64, error) {
	start := time.Now()
	n, err := s.db.Exec(ctx, query, args...)
	metrics.StatementDuration.WithLabelValues(table, op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StorageErrors.WithLabelValues(table, op).Inc()
	}
	return n, err
}

// query runs a read statement, recording duration and failures.
func (s *Server) query(ctx context.Context, table, op, query string, args []any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.db.Query(ctx, query, args...)
	metrics.StatementDuration.WithLabelValues(table, op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StorageErrors.WithLabelValues(table, op).Inc()
	}
	return rows, err
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, table string, status int, data any) {
	metrics.RequestsTotal.WithLabelValues(table, r.Method, strconv.Itoa(status)).Inc()
	httputil.JSON(w, status, data)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, table string, status int, message string) {
	metrics.RequestsTotal.WithLabelValues(table, r.Method, strconv.Itoa(status)).Inc()
	httputil.Error(w, status, message)
}
