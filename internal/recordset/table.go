package recordset

import (
	"iter"
	"slices"
	"sort"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/domain/errors"
)

// PredicateFunc tests whether a row matches certain criteria
type PredicateFunc func(row *data.Row) bool

// RowFunc computes a value from a row
type RowFunc func(row *data.Row) interface{}

// Table is an ordered collection of rows sharing one column set.
// A Table is not safe for concurrent use.
type Table struct {
	name    string
	columns []string
	rows    []*data.Row
}

type options struct {
	name       string
	columns    []string
	hasColumns bool
	dropIf     PredicateFunc
}

// Option configures table construction
type Option func(*options)

// WithName labels the table in logs and errors
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithColumns makes cols the authoritative column set, in that order.
// Columns of the input rows not listed are discarded.
func WithColumns(cols ...string) Option {
	return func(o *options) {
		o.columns = dedupe(cols)
		o.hasColumns = true
	}
}

// WithDropIf skips every input row for which pred returns true.
// The predicate sees the raw input row, before unification.
func WithDropIf(pred PredicateFunc) Option {
	return func(o *options) { o.dropIf = pred }
}

// New builds a table from heterogeneous rows. Every admitted row is rebuilt
// to expose the full column universe, missing cells defaulting to "".
// The universe is the union of all input row columns in first-seen order,
// dropped rows included, unless WithColumns is given. Input rows are never aliased.
func New(rows []*data.Row, opts ...Option) *Table {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	cols := cfg.columns
	if !cfg.hasColumns {
		cols = unionColumns(rows)
	}

	t := &Table{
		name:    cfg.name,
		columns: slices.Clone(cols),
		rows:    make([]*data.Row, 0, len(rows)),
	}
	if t.columns == nil {
		t.columns = []string{}
	}

	for _, raw := range rows {
		if raw == nil {
			continue
		}
		if cfg.dropIf != nil && cfg.dropIf(raw) {
			continue
		}
		row := data.NewRow()
		for _, c := range cols {
			v, ok := raw.Get(c)
			if !ok {
				v = ""
			}
			row.Set(c, v)
		}
		t.rows = append(t.rows, row)
	}

	return t
}

// FromMaps builds a table from plain maps. Since maps are unordered, the
// keys of each map are taken in sorted order.
func FromMaps(maps []map[string]interface{}, opts ...Option) *Table {
	rows := make([]*data.Row, 0, len(maps))
	for _, m := range maps {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		row := data.NewRow()
		for _, k := range keys {
			row.Set(k, m[k])
		}
		rows = append(rows, row)
	}
	return New(rows, opts...)
}

// Name returns the table label (may be empty)
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// At returns the row at index i. It panics if i is out of range.
func (t *Table) At(i int) *data.Row {
	return t.rows[i]
}

// Rows returns the rows in order. The slice is a copy; the rows are not.
func (t *Table) Rows() []*data.Row {
	return slices.Clone(t.rows)
}

// All iterates over the rows with their positions
func (t *Table) All() iter.Seq2[int, *data.Row] {
	return func(yield func(int, *data.Row) bool) {
		for i, row := range t.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// Columns returns the column names in order
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// HasColumn reports whether the table has the column
func (t *Table) HasColumn(col string) bool {
	return slices.Contains(t.columns, col)
}

// Copy returns an independent copy of the table
func (t *Table) Copy() *Table {
	cp := &Table{
		name:    t.name,
		columns: slices.Clone(t.columns),
		rows:    make([]*data.Row, len(t.rows)),
	}
	for i, row := range t.rows {
		cp.rows[i] = row.Copy()
	}
	return cp
}

// Concat returns a new table holding the rows of t followed by the rows
// of other. Schemas are not reconciled; the column list is t's unless t
// has none.
func (t *Table) Concat(other *Table) *Table {
	out := t.Copy()
	return out.Append(other)
}

// Append adds copies of other's rows to t in place
func (t *Table) Append(other *Table) *Table {
	if other == nil {
		return t
	}
	if len(t.columns) == 0 {
		t.columns = slices.Clone(other.columns)
	}
	for _, row := range other.rows {
		t.rows = append(t.rows, row.Copy())
	}
	return t
}

// requireColumns returns a ColumnNotFoundError for the first column the
// table does not have
func (t *Table) requireColumns(cols ...string) error {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return &errors.ColumnNotFoundError{TableName: t.name, ColumnName: c}
		}
	}
	return nil
}

// isBlank reports whether the table has neither rows nor known columns;
// such a table accepts any operation as a no-op
func (t *Table) isBlank() bool {
	return len(t.rows) == 0 && len(t.columns) == 0
}

// addColumns appends unknown column names to the column list and fills
// every row lacking one of the table's columns with ""
func (t *Table) addColumns(cols ...string) {
	for _, c := range cols {
		if !t.HasColumn(c) {
			t.columns = append(t.columns, c)
		}
	}
	t.unify()
}

// unify restores the shared key set: row columns unknown to the table are
// appended to the column list, then every row gets every column
func (t *Table) unify() {
	for _, row := range t.rows {
		for _, c := range row.Columns() {
			if !t.HasColumn(c) {
				t.columns = append(t.columns, c)
			}
		}
	}
	for _, row := range t.rows {
		if row.Len() == len(t.columns) {
			continue
		}
		for _, c := range t.columns {
			if !row.Has(c) {
				row.Set(c, "")
			}
		}
	}
}

func unionColumns(rows []*data.Row) []string {
	seen := make(map[string]struct{})
	cols := make([]string, 0)
	for _, row := range rows {
		if row == nil {
			continue
		}
		for _, c := range row.Columns() {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			cols = append(cols, c)
		}
	}
	return cols
}

func dedupe(cols []string) []string {
	out := make([]string, 0, len(cols))
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
