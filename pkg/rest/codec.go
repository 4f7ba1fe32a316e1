package rest

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// rowsToJSON maps every row in the result set to a JSON-ready object keyed
// by column name. Value kinds follow SQLite's storage classes:
//
//	NULL    -> nil
//	INTEGER -> int64
//	REAL    -> float64
//	TEXT    -> string; a value that is not valid UTF-8 collapses to ""
//	           rather than failing the row
//	BLOB    -> a human-readable byte listing, display-only
//
// The driver hands TEXT back as raw bytes, so the declared column type
// decides whether bytes are decoded as text or rendered as a blob.
// The returned slice is never nil: no rows encodes as [].
func rowsToJSON(rows *sql.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	declTypes := make([]string, len(columnTypes))
	for i, ct := range columnTypes {
		declTypes[i] = strings.ToUpper(ct.DatabaseTypeName())
	}

	results := make([]map[string]any, 0)

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, name := range columns {
			row[name] = jsonValue(values[i], declTypes[i])
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

// jsonValue converts one scanned column value to its JSON representation.
func jsonValue(v any, declType string) any {
	switch val := v.(type) {
	case nil:
		return nil
	case int64, float64, bool:
		return val
	case string:
		return textValue(val)
	case []byte:
		if strings.Contains(declType, "BLOB") {
			// Blob columns have no faithful JSON form; render the bytes
			// for human consumption. Not reversible.
			return fmt.Sprintf("%v", val)
		}
		return textValue(string(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}

func textValue(s string) string {
	if !utf8.ValidString(s) {
		return ""
	}
	return s
}

// bindValue converts a decoded JSON value into the driver value to bind,
// keeping the type the client sent: null stays null, booleans stay
// booleans, integral numbers bind as int64, fractional as float64. Nested
// arrays and objects have no column affinity of their own and are stored
// as their JSON text.
func bindValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case bool:
		return val
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return int64(val)
		}
		return val
	case string:
		return val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	default:
		text, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(text)
	}
}
