package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Row represents a single table row
// Key = column name, Value = cell value. Column order is kept for export
// but plays no part in lookup or equality.
type Row struct {
	cols []string
	data map[string]interface{}
}

// NewRow creates an empty Row
func NewRow() *Row {
	return &Row{data: make(map[string]interface{})}
}

// NewRowFrom creates a Row with the given columns and values, in order.
// Missing trailing values are stored as nil.
func NewRowFrom(cols []string, values []interface{}) *Row {
	r := &Row{
		cols: make([]string, 0, len(cols)),
		data: make(map[string]interface{}, len(cols)),
	}
	for i, c := range cols {
		var v interface{}
		if i < len(values) {
			v = values[i]
		}
		r.Set(c, v)
	}
	return r
}

// RowOf builds a Row from alternating column/value arguments:
//
//	data.RowOf("id", "1", "qty", "2")
//
// It panics on an odd argument count or a non-string column name.
func RowOf(kv ...interface{}) *Row {
	if len(kv)%2 != 0 {
		panic("data.RowOf: odd number of arguments")
	}
	r := NewRow()
	for i := 0; i < len(kv); i += 2 {
		col, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("data.RowOf: column name at %d is %T, not string", i, kv[i]))
		}
		r.Set(col, kv[i+1])
	}
	return r
}

// Get returns the value stored under col and whether it exists
func (r *Row) Get(col string) (interface{}, bool) {
	v, ok := r.data[col]
	return v, ok
}

// Value returns the value stored under col, or nil
func (r *Row) Value(col string) interface{} {
	return r.data[col]
}

// Text returns the string form of the value stored under col
func (r *Row) Text(col string) string {
	return Text(r.data[col])
}

// Has reports whether the row has the column
func (r *Row) Has(col string) bool {
	_, ok := r.data[col]
	return ok
}

// Set stores a value. New columns are appended at the end.
func (r *Row) Set(col string, v interface{}) {
	if r.data == nil {
		r.data = make(map[string]interface{})
	}
	if _, ok := r.data[col]; !ok {
		r.cols = append(r.cols, col)
	}
	r.data[col] = v
}

// Delete removes a column and reports whether it was present
func (r *Row) Delete(col string) bool {
	if _, ok := r.data[col]; !ok {
		return false
	}
	delete(r.data, col)
	for i, c := range r.cols {
		if c == col {
			r.cols = append(r.cols[:i], r.cols[i+1:]...)
			break
		}
	}
	return true
}

// Rename re-keys a column in place, keeping its position.
// Returns false if old is absent.
func (r *Row) Rename(old, new string) bool {
	v, ok := r.data[old]
	if !ok {
		return false
	}
	if old == new {
		return true
	}
	// drop a clashing column first so the key set stays consistent
	r.Delete(new)
	delete(r.data, old)
	r.data[new] = v
	for i, c := range r.cols {
		if c == old {
			r.cols[i] = new
			break
		}
	}
	return true
}

// Len returns the number of columns
func (r *Row) Len() int {
	return len(r.cols)
}

// Columns returns the column names in order
func (r *Row) Columns() []string {
	out := make([]string, len(r.cols))
	copy(out, r.cols)
	return out
}

// Values returns the values in column order
func (r *Row) Values() []interface{} {
	out := make([]interface{}, len(r.cols))
	for i, c := range r.cols {
		out[i] = r.data[c]
	}
	return out
}

// Copy creates a copy of the row to prevent mutation.
// Values themselves are shared.
func (r *Row) Copy() *Row {
	cp := &Row{
		cols: make([]string, len(r.cols)),
		data: make(map[string]interface{}, len(r.data)),
	}
	copy(cp.cols, r.cols)
	for k, v := range r.data {
		cp.data[k] = v
	}
	return cp
}

// Project returns a new row holding only cols, in that order.
// The first missing column is reported via ok=false.
func (r *Row) Project(cols []string) (out *Row, missing string, ok bool) {
	out = &Row{
		cols: make([]string, 0, len(cols)),
		data: make(map[string]interface{}, len(cols)),
	}
	for _, c := range cols {
		v, exists := r.data[c]
		if !exists {
			return nil, c, false
		}
		out.Set(c, v)
	}
	return out, "", true
}

// Equal reports whether both rows hold the same columns with equal values.
// Column order is ignored.
func (r *Row) Equal(other *Row) bool {
	if len(r.data) != len(other.data) {
		return false
	}
	for k, v := range r.data {
		ov, ok := other.data[k]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

// DiffFields returns the names of the fields whose values differ between
// the two rows, including fields present on only one side. Names from r come
// first in r's order, then names only found in other.
func (r *Row) DiffFields(other *Row) []string {
	var fields []string
	for _, c := range r.cols {
		ov, ok := other.data[c]
		if !ok || !Equal(r.data[c], ov) {
			fields = append(fields, c)
		}
	}
	for _, c := range other.cols {
		if _, ok := r.data[c]; !ok {
			fields = append(fields, c)
		}
	}
	return fields
}

// String returns a string representation for debugging
func (r *Row) String() string {
	var b strings.Builder
	b.WriteString("Row{")
	for i, c := range r.cols {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", c, r.data[c])
	}
	b.WriteString("}")
	return b.String()
}

// MarshalJSON implements json.Marshaler interface
// The object keeps the row's column order.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.data[c])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
// Keys are kept in document order. Whole numbers decode as int64,
// other numbers as float64.
func (r *Row) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("row: expected JSON object, got %v", tok)
	}

	r.cols = nil
	r.data = make(map[string]interface{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("row: expected object key, got %v", tok)
		}
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("row: column %q: %w", key, err)
		}
		r.Set(key, fromJSONValue(v))
	}
	_, err = dec.Token()
	return err
}

func fromJSONValue(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []interface{}:
		for i := range val {
			val[i] = fromJSONValue(val[i])
		}
		return val
	case map[string]interface{}:
		for k := range val {
			val[k] = fromJSONValue(val[k])
		}
		return val
	default:
		return v
	}
}
