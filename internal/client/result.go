package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// QueryResult is the structured outcome of one statement execution.
// Exactly one of Rows, AffectedRows, or neither is meaningfully populated
// on success. A non-empty Error signals failure and suppresses the rest:
// consumers must not interpret Rows or AffectedRows when Error is set.
type QueryResult struct {
	Rows         []Row          `json:"rows,omitempty"`
	AffectedRows *int64         `json:"affectedRows,omitempty"`
	Error        string         `json:"error,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`

	// Elapsed is the locally measured round-trip time. Not part of the wire format.
	Elapsed time.Duration `json:"-"`
}

// HasRows reports whether the result carries a row set (possibly empty).
func (r *QueryResult) HasRows() bool { return r.Rows != nil }

// Row is one result row: a column-name to value mapping that remembers
// the column order the server sent. encoding/json alone would lose that
// order, so decoding walks the object token by token.
type Row struct {
	columns []string
	values  map[string]any
}

// NewRow builds a row from an ordered column list and its values.
// Columns without a value render as absent (NULL).
func NewRow(columns []string, values map[string]any) Row {
	cols := make([]string, len(columns))
	copy(cols, columns)
	vals := make(map[string]any, len(values))
	for k, v := range values {
		vals[k] = v
	}
	return Row{columns: cols, values: vals}
}

// Columns returns the column names in server order.
func (r Row) Columns() []string { return r.columns }

// Get returns the value for a column and whether the column is present.
func (r Row) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// UnmarshalJSON decodes a JSON object preserving key order.
// Numbers decode as json.Number so large integers keep their exact text.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("row: expected object, got %v", tok)
	}

	r.columns = nil
	r.values = make(map[string]any)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("row: non-string key %v", keyTok)
		}
		var val any
		if err := dec.Decode(&val); err != nil {
			return err
		}
		if _, seen := r.values[key]; !seen {
			r.columns = append(r.columns, key)
		}
		r.values[key] = val
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the row preserving column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
