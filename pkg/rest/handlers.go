package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

// Reserved query parameters consumed by the query builder itself. Every
// other parameter is treated as an equality filter on a column.
const (
	paramSort  = "_sort"
	paramOrder = "_order"
)

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func isReservedParam(name string) bool {
	return name == paramSort || name == paramOrder
}

// handleIndex lists the exposed tables.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, "", http.StatusOK, map[string]any{"tables": s.registry.Names()})
}

// handleList serves GET /{table}: list with optional filters and sorting.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")
	if !s.registry.Exposed(table) {
		s.writeError(w, r, table, http.StatusNotFound, "Table not found")
		return
	}

	values := r.URL.Query()
	filters := make(map[string]string)
	for key, vals := range values {
		if isReservedParam(key) || len(vals) == 0 {
			continue
		}
		filters[key] = vals[0]
	}

	var order *Order
	if sortCol := values.Get(paramSort); sortCol != "" {
		order = &Order{Column: sortCol, Direction: values.Get(paramOrder)}
	}

	query, args, err := buildSelect(table, filters, order)
	if err != nil {
		s.writeError(w, r, table, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := s.query(r.Context(), table, "select", query, args)
	if err != nil {
		s.writeError(w, r, table, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	results, err := rowsToJSON(rows)
	if err != nil {
		s.writeError(w, r, table, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, r, table, http.StatusOK, results)
}

// handleCreate serves POST /{table}: insert one record.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")
	if !s.registry.Exposed(table) {
		s.writeError(w, r, table, http.StatusNotFound, "Table not found")
		return
	}

	fields, err := decodeObject(r)
	if err != nil {
		s.writeError(w, r, table, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	query, args, err := buildInsert(table, fields)
	switch {
	case errors.Is(err, ErrEmptyPayload):
		s.writeError(w, r, table, http.StatusBadRequest, "Empty JSON body")
		return
	case err != nil:
		s.writeError(w, r, table, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.exec(r.Context(), table, "insert", query, args); err != nil {
		s.writeError(w, r, table, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, r, table, http.StatusCreated, statusResponse{Status: "success", Message: "Record created"})
}

// handleUpdate serves PUT /{table}/{id}: update fields of one record.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")
	if !s.registry.Exposed(table) {
		s.writeError(w, r, table, http.StatusNotFound, "Table not found")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, r, table, http.StatusBadRequest, "Invalid record id")
		return
	}

	fields, err := decodeObject(r)
	if err != nil {
		s.writeError(w, r, table, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	query, args, err := buildUpdate(table, id, fields)
	switch {
	case errors.Is(err, ErrEmptyPayload):
		s.writeError(w, r, table, http.StatusBadRequest, "Empty JSON body")
		return
	case err != nil:
		s.writeError(w, r, table, http.StatusBadRequest, err.Error())
		return
	}

	affected, err := s.exec(r.Context(), table, "update", query, args)
	if err != nil {
		s.writeError(w, r, table, http.StatusInternalServerError, err.Error())
		return
	}
	if affected == 0 {
		s.writeError(w, r, table, http.StatusNotFound, "Record not found")
		return
	}

	s.writeJSON(w, r, table, http.StatusOK, statusResponse{Status: "success", Message: "Record updated"})
}

// handleDelete serves DELETE /{table}/{id}: delete one record by id.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")
	if !s.registry.Exposed(table) {
		s.writeError(w, r, table, http.StatusNotFound, "Table not found")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, r, table, http.StatusBadRequest, "Invalid record id")
		return
	}

	query, args, err := buildDelete(table, id)
	if err != nil {
		s.writeError(w, r, table, http.StatusBadRequest, err.Error())
		return
	}

	affected, err := s.exec(r.Context(), table, "delete", query, args)
	if err != nil {
		s.writeError(w, r, table, http.StatusInternalServerError, err.Error())
		return
	}
	if affected == 0 {
		s.writeError(w, r, table, http.StatusNotFound, "Record not found")
		return
	}

	s.writeJSON(w, r, table, http.StatusOK, statusResponse{Status: "success", Message: "Record deleted"})
}

// decodeObject reads the request body as a single JSON object. Numbers are
// kept as json.Number so the binder can preserve integer vs real. Any body
// that is not a JSON object is an error.
func decodeObject(r *http.Request) (map[string]any, error) {
	var v any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, ErrMalformedBody
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrMalformedBody
	}
	return obj, nil
}
