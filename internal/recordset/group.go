package recordset

import (
	"fmt"
	"slices"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/domain/errors"
	"github.com/leengari/recordlib/internal/query/aggregate"
	"github.com/leengari/recordlib/internal/query/compare"
)

// Aggregation computes Alias by applying Fn to the values of Source
// across a partition
type Aggregation struct {
	Source string
	Fn     aggregate.Func
	Alias  string
}

// Grouping describes a group-by: partition on Columns, compute Aggs, and
// keep Selects (or Columns followed by the aliases when Selects is empty)
type Grouping struct {
	Columns []string
	Aggs    []Aggregation
	Selects []string
}

// Distinct keeps one row per distinct key over cols, the first in
// original order. With eliminate, keys occurring more than once are
// dropped entirely. Rows come out in key order. An empty cols means every
// column.
func (t *Table) Distinct(cols []string, eliminate bool) (*Table, error) {
	if len(t.rows) == 0 {
		return t, nil
	}
	if len(cols) == 0 {
		cols = t.Columns()
	}
	if err := t.requireColumns(cols...); err != nil {
		return t, err
	}

	groups := t.partition(cols)
	kept := make([]*data.Row, 0, len(groups))
	for _, g := range groups {
		if eliminate && len(g) > 1 {
			continue
		}
		kept = append(kept, g[0].row)
	}
	t.rows = kept
	return t, nil
}

// GroupBy replaces the rows with one aggregated row per partition
func (t *Table) GroupBy(g Grouping) (*Table, error) {
	rows, err := t.GroupRows(g)
	if err != nil {
		return t, err
	}
	t.rows = rows
	t.columns = g.outputColumns()
	return t, nil
}

// GroupRows computes the grouped rows without modifying t. Each output row
// starts as a copy of the first row of its partition, gets the aggregate
// aliases, and is projected onto the output columns.
func (t *Table) GroupRows(g Grouping) ([]*data.Row, error) {
	if err := t.validateGrouping(g); err != nil {
		return nil, err
	}
	if len(t.rows) == 0 {
		return []*data.Row{}, nil
	}

	out := g.outputColumns()
	groups := t.partition(g.Columns)
	rows := make([]*data.Row, 0, len(groups))
	for _, part := range groups {
		rep := part[0].row.Copy()
		for _, agg := range g.Aggs {
			values := make([]interface{}, len(part))
			for i, item := range part {
				values[i] = item.row.Value(agg.Source)
			}
			rep.Set(agg.Alias, agg.Fn(values))
		}
		projected, missing, ok := rep.Project(out)
		if !ok {
			return nil, &errors.ColumnNotFoundError{TableName: t.name, ColumnName: missing}
		}
		rows = append(rows, projected)
	}
	return rows, nil
}

func (g Grouping) outputColumns() []string {
	if len(g.Selects) > 0 {
		return dedupe(g.Selects)
	}
	cols := slices.Clone(g.Columns)
	for _, agg := range g.Aggs {
		cols = append(cols, agg.Alias)
	}
	return dedupe(cols)
}

func (t *Table) validateGrouping(g Grouping) error {
	if t.isBlank() {
		return nil
	}
	if len(g.Columns) == 0 {
		return fmt.Errorf("group by: no grouping columns")
	}
	if err := t.requireColumns(g.Columns...); err != nil {
		return err
	}

	aliases := make([]string, 0, len(g.Aggs))
	for _, agg := range g.Aggs {
		if agg.Fn == nil {
			return fmt.Errorf("group by: aggregation of %q has no function", agg.Source)
		}
		if agg.Alias == "" {
			return fmt.Errorf("group by: aggregation of %q has no alias", agg.Source)
		}
		if err := t.requireColumns(agg.Source); err != nil {
			return err
		}
		aliases = append(aliases, agg.Alias)
	}

	for _, c := range g.Selects {
		if !t.HasColumn(c) && !slices.Contains(aliases, c) {
			return &errors.ColumnNotFoundError{TableName: t.name, ColumnName: c}
		}
	}
	return nil
}

// Unique returns the distinct values of col in first-seen order
func (t *Table) Unique(col string) ([]interface{}, error) {
	if len(t.rows) == 0 {
		return []interface{}{}, nil
	}
	if err := t.requireColumns(col); err != nil {
		return nil, err
	}
	seen := make(map[interface{}]struct{})
	values := make([]interface{}, 0)
	for _, row := range t.rows {
		v := row.Value(col)
		k := data.HashKey(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, v)
	}
	return values, nil
}

// Max returns the largest value of col, or nil for an empty table
func (t *Table) Max(col string) (interface{}, error) {
	return t.extreme(col, 1)
}

// Min returns the smallest value of col, or nil for an empty table
func (t *Table) Min(col string) (interface{}, error) {
	return t.extreme(col, -1)
}

func (t *Table) extreme(col string, sign int) (interface{}, error) {
	if len(t.rows) == 0 {
		return nil, nil
	}
	if err := t.requireColumns(col); err != nil {
		return nil, err
	}
	best := t.rows[0].Value(col)
	for _, row := range t.rows[1:] {
		v := row.Value(col)
		if compare.Values(v, best)*sign > 0 {
			best = v
		}
	}
	return best, nil
}

// ValueCount returns how many times each value of col occurs
func (t *Table) ValueCount(col string) (map[interface{}]int, error) {
	counts := make(map[interface{}]int)
	if len(t.rows) == 0 {
		return counts, nil
	}
	if err := t.requireColumns(col); err != nil {
		return nil, err
	}
	for _, row := range t.rows {
		counts[data.HashKey(row.Value(col))]++
	}
	return counts, nil
}
