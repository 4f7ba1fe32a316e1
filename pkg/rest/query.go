package rest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/easydb/easydb/pkg/sqlite"
)

// Order is a sort directive: a validated column and a normalized direction.
type Order struct {
	Column    string
	Direction string // "ASC" or "DESC"
}

// normalizeDirection maps user input to exactly ASC or DESC. Anything that
// is not "desc" (case-insensitive) sorts ascending.
func normalizeDirection(s string) string {
	if strings.EqualFold(s, "desc") {
		return "DESC"
	}
	return "ASC"
}

// sortedKeys returns map keys in sorted order so generated SQL is
// deterministic regardless of map iteration order. Filter order does not
// change the result set; fixing it keeps statements testable.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildSelect emits SELECT * FROM table with one ANDed equality predicate
// per filter, values bound positionally. The optional order clause is the
// one position where a value cannot be bound, so its column passes the
// identifier allow-list or the whole request is rejected.
func buildSelect(table string, filters map[string]string, order *Order) (string, []any, error) {
	if table == "" || !sqlite.ValidIdent(table) {
		return "", nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}

	var query strings.Builder
	var args []any

	query.WriteString("SELECT * FROM ")
	query.WriteString(table)

	if len(filters) > 0 {
		predicates := make([]string, 0, len(filters))
		for _, col := range sortedKeys(filters) {
			if col == "" || !sqlite.ValidIdent(col) {
				return "", nil, fmt.Errorf("%w: column %q", ErrInvalidIdentifier, col)
			}
			predicates = append(predicates, col+" = ?")
			args = append(args, filters[col])
		}
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(predicates, " AND "))
	}

	if order != nil {
		if order.Column == "" || !sqlite.ValidIdent(order.Column) {
			return "", nil, fmt.Errorf("%w: sort column %q", ErrInvalidIdentifier, order.Column)
		}
		query.WriteString(" ORDER BY ")
		query.WriteString(order.Column)
		query.WriteString(" ")
		query.WriteString(normalizeDirection(order.Direction))
	}

	return query.String(), args, nil
}

// buildInsert emits INSERT INTO table (cols...) VALUES (?...), one bound
// parameter per field. An empty field set is an error, not a
// default-values insert.
func buildInsert(table string, fields map[string]any) (string, []any, error) {
	if table == "" || !sqlite.ValidIdent(table) {
		return "", nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}
	if len(fields) == 0 {
		return "", nil, ErrEmptyPayload
	}

	columns := make([]string, 0, len(fields))
	placeholders := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, col := range sortedKeys(fields) {
		if col == "" || !sqlite.ValidIdent(col) {
			return "", nil, fmt.Errorf("%w: column %q", ErrInvalidIdentifier, col)
		}
		columns = append(columns, col)
		placeholders = append(placeholders, "?")
		args = append(args, bindValue(fields[col]))
	}

	var query strings.Builder
	query.WriteString("INSERT INTO ")
	query.WriteString(table)
	query.WriteString(" (")
	query.WriteString(strings.Join(columns, ", "))
	query.WriteString(") VALUES (")
	query.WriteString(strings.Join(placeholders, ", "))
	query.WriteString(")")

	return query.String(), args, nil
}

// buildUpdate emits UPDATE table SET col = ?, ... WHERE id = ? with the id
// bound as the final parameter. An empty field set would produce a SET
// clause with zero assignments, which is not valid SQL, so it is rejected
// up front.
func buildUpdate(table string, id int64, fields map[string]any) (string, []any, error) {
	if table == "" || !sqlite.ValidIdent(table) {
		return "", nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}
	if len(fields) == 0 {
		return "", nil, ErrEmptyPayload
	}

	assignments := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, col := range sortedKeys(fields) {
		if col == "" || !sqlite.ValidIdent(col) {
			return "", nil, fmt.Errorf("%w: column %q", ErrInvalidIdentifier, col)
		}
		assignments = append(assignments, col+" = ?")
		args = append(args, bindValue(fields[col]))
	}
	args = append(args, id)

	var query strings.Builder
	query.WriteString("UPDATE ")
	query.WriteString(table)
	query.WriteString(" SET ")
	query.WriteString(strings.Join(assignments, ", "))
	query.WriteString(" WHERE id = ?")

	return query.String(), args, nil
}

// buildDelete emits DELETE FROM table WHERE id = ?.
func buildDelete(table string, id int64) (string, []any, error) {
	if table == "" || !sqlite.ValidIdent(table) {
		return "", nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}
	return "DELETE FROM " + table + " WHERE id = ?", []any{id}, nil
}
