package recordset

import (
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/domain/errors"
)

// AllColumns selects every column when passed alone to Select
const AllColumns = "*"

// RenamePair re-keys column Old to New
type RenamePair struct {
	Old string
	New string
}

// ValueMapping replaces the values of Column through Mapping.
// Lookups use the text form of the cell. On a miss the cell becomes Default,
// which may be nil.
type ValueMapping struct {
	Column  string
	Mapping map[string]interface{}
	Default interface{}
}

// Computed names a column and the function producing its value
type Computed struct {
	Name string
	Fn   RowFunc
}

// Rounding rounds the numeric values of Column to Digits decimal places
type Rounding struct {
	Column string
	Digits int
}

// Select projects every row onto cols and keeps the rows matching where.
// A nil or ["*"] cols keeps all columns; a nil where keeps all rows.
// The column order becomes the order of cols.
func (t *Table) Select(cols []string, where PredicateFunc) (*Table, error) {
	if len(cols) == 0 || (len(cols) == 1 && cols[0] == AllColumns) {
		cols = t.Columns()
	}
	cols = dedupe(cols)

	if len(t.rows) == 0 {
		t.columns = cols
		return t, nil
	}
	if err := t.requireColumns(cols...); err != nil {
		return t, err
	}

	kept := make([]*data.Row, 0, len(t.rows))
	for _, row := range t.rows {
		if where != nil && !where(row) {
			continue
		}
		projected, _, _ := row.Project(cols)
		kept = append(kept, projected)
	}

	t.rows = kept
	t.columns = cols
	return t, nil
}

// Selected is like Select but returns a new table and leaves t untouched
func (t *Table) Selected(cols []string, where PredicateFunc) (*Table, error) {
	return t.Copy().Select(cols, where)
}

// Filter keeps the rows matching where
func (t *Table) Filter(where PredicateFunc) *Table {
	if where == nil {
		return t
	}
	kept := t.rows[:0]
	for _, row := range t.rows {
		if where(row) {
			kept = append(kept, row)
		}
	}
	clear(t.rows[len(kept):])
	t.rows = kept
	return t
}

// Rename re-keys columns in place, keeping their positions. Pairs apply in
// order, so a later pair may refer to an earlier pair's new name. All pairs
// are validated before any row is touched.
func (t *Table) Rename(pairs ...RenamePair) (*Table, error) {
	if t.isBlank() {
		return t, nil
	}

	cols := t.Columns()
	for _, p := range pairs {
		i := slices.Index(cols, p.Old)
		if i < 0 {
			return t, &errors.ColumnNotFoundError{TableName: t.name, ColumnName: p.Old}
		}
		if p.Old == p.New {
			continue
		}
		if slices.Contains(cols, p.New) {
			return t, errors.NewDuplicateColumn(t.name, p.New)
		}
		cols[i] = p.New
	}

	for _, row := range t.rows {
		for _, p := range pairs {
			row.Rename(p.Old, p.New)
		}
	}
	t.columns = cols
	return t, nil
}

// ValueMap rewrites cell values through lookup tables
func (t *Table) ValueMap(maps ...ValueMapping) *Table {
	for _, row := range t.rows {
		for _, m := range maps {
			v, ok := row.Get(m.Column)
			if !ok {
				continue
			}
			mapped, hit := m.Mapping[data.Text(v)]
			if !hit {
				mapped = m.Default
			}
			row.Set(m.Column, mapped)
		}
	}
	return t
}

// AddColumn sets each computed column on every row. Every function sees the
// row as it was before the call, so computed columns cannot observe each
// other.
func (t *Table) AddColumn(cols ...Computed) *Table {
	if len(cols) == 0 {
		return t
	}
	values := make([]interface{}, len(cols))
	for _, row := range t.rows {
		snapshot := row
		if len(cols) > 1 {
			snapshot = row.Copy()
		}
		for i, c := range cols {
			values[i] = c.Fn(snapshot)
		}
		for i, c := range cols {
			row.Set(c.Name, values[i])
		}
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	t.addColumns(names...)
	return t
}

// DropColumn removes columns from every row. Nothing is removed when any
// column is absent.
func (t *Table) DropColumn(cols ...string) (*Table, error) {
	if t.isBlank() {
		return t, nil
	}
	if err := t.requireColumns(cols...); err != nil {
		return t, err
	}
	for _, row := range t.rows {
		for _, c := range cols {
			row.Delete(c)
		}
	}
	t.columns = slices.DeleteFunc(t.columns, func(c string) bool {
		return slices.Contains(cols, c)
	})
	return t, nil
}

// Update applies the computed columns, in order, to the rows matching
// where. Later functions see the results of earlier ones. Columns that did
// not exist are added to every row with "" where the predicate did not hold.
func (t *Table) Update(where PredicateFunc, cols ...Computed) *Table {
	updated := 0
	for _, row := range t.rows {
		if where != nil && !where(row) {
			continue
		}
		for _, c := range cols {
			row.Set(c.Name, c.Fn(row))
		}
		updated++
	}
	t.unify()

	slog.Debug("update completed",
		slog.String("table", t.name),
		slog.Int("rows_updated", updated),
	)
	return t
}

// Format coerces columns to the requested kinds. A cell that cannot be
// converted, or a row lacking the column, gets the coercion's default and
// marks the row as failed. With dropIfFail the failed rows are removed.
func (t *Table) Format(dropIfFail bool, fmts ...Coercion) *Table {
	if len(fmts) == 0 {
		return t
	}

	kept := make([]*data.Row, 0, len(t.rows))
	failedRows := 0
	var firstErr error

	for i, row := range t.rows {
		failed := false
		for _, f := range fmts {
			raw, present := row.Get(f.Column)
			v, ok := f.Kind.coerce(raw)
			if !present || !ok {
				failed = true
				v = f.defaultValue()
				if firstErr == nil {
					firstErr = &errors.CoercionError{Column: f.Column, Value: raw, Kind: f.Kind.String(), RowIndex: i}
				}
			}
			row.Set(f.Column, v)
		}
		if failed {
			failedRows++
			if dropIfFail {
				continue
			}
		}
		kept = append(kept, row)
	}

	t.rows = kept
	t.unify()

	if failedRows > 0 {
		slog.Debug("format had conversion failures",
			slog.String("table", t.name),
			slog.Int("failed_rows", failedRows),
			slog.Bool("dropped", dropIfFail),
			slog.Any("first_error", firstErr),
		)
	}
	return t
}

// RoundFloatFields rounds numeric cells half away from zero. Cells that
// are not numbers, or strings that do not parse as one, are left untouched.
// Rounded cells become float64.
func (t *Table) RoundFloatFields(pairs ...Rounding) *Table {
	for _, row := range t.rows {
		for _, p := range pairs {
			v, ok := row.Get(p.Column)
			if !ok {
				continue
			}
			d, ok := toDecimal(v)
			if !ok {
				continue
			}
			row.Set(p.Column, d.Round(int32(p.Digits)).InexactFloat64())
		}
	}
	return t
}

func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int32:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case float32:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(val), true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}
