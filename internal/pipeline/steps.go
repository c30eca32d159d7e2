package pipeline

import (
	"fmt"
	"strings"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/domain/errors"
	"github.com/leengari/recordlib/internal/query/aggregate"
	"github.com/leengari/recordlib/internal/recordset"
)

// apply runs the step against t. Most operations mutate t in place;
// nlargest and nsmallest return a new table.
func (s Step) apply(t *recordset.Table, lookups map[string]*recordset.Table) (*recordset.Table, error) {
	switch {
	case s.Select != nil:
		where, err := s.Select.Where.predicate(t)
		if err != nil {
			return t, err
		}
		return t.Select(s.Select.Columns, where)

	case s.Filter != nil:
		where, err := s.Filter.predicate(t)
		if err != nil {
			return t, err
		}
		return t.Filter(where), nil

	case s.Rename != nil:
		pairs := make([]recordset.RenamePair, len(s.Rename))
		for i, r := range s.Rename {
			pairs[i] = recordset.RenamePair{Old: r.From, New: r.To}
		}
		return t.Rename(pairs...)

	case s.Drop != nil:
		return t.DropColumn(s.Drop...)

	case s.ValueMap != nil:
		return t.ValueMap(recordset.ValueMapping{
			Column:  s.ValueMap.Column,
			Mapping: s.ValueMap.Mapping,
			Default: s.ValueMap.Default,
		}), nil

	case s.Format != nil:
		fmts := make([]recordset.Coercion, len(s.Format.Columns))
		for i, c := range s.Format.Columns {
			kind, err := recordset.ParseKind(c.Kind)
			if err != nil {
				return t, err
			}
			fmts[i] = recordset.Coercion{Column: c.Name, Kind: kind, Default: c.Default}
		}
		return t.Format(s.Format.DropIfFail, fmts...), nil

	case s.Round != nil:
		pairs := make([]recordset.Rounding, len(s.Round))
		for i, r := range s.Round {
			pairs[i] = recordset.Rounding{Column: r.Column, Digits: r.Digits}
		}
		return t.RoundFloatFields(pairs...), nil

	case s.OrderBy != nil:
		return t.OrderBy(s.OrderBy...)

	case s.Distinct != nil:
		return t.Distinct(s.Distinct.Columns, s.Distinct.Eliminate)

	case s.GroupBy != nil:
		g := recordset.Grouping{Columns: s.GroupBy.Columns, Selects: s.GroupBy.Selects}
		for _, a := range s.GroupBy.Aggs {
			fn, err := aggregate.Lookup(a.Func)
			if err != nil {
				return t, err
			}
			g.Aggs = append(g.Aggs, recordset.Aggregation{Source: a.Source, Fn: fn, Alias: a.Alias})
		}
		return t.GroupBy(g)

	case s.SetPK != nil:
		return t.SetPK(s.SetPK.Columns, s.SetPK.Name)

	case s.VLookup != nil:
		foreign, ok := lookups[s.VLookup.Table]
		if !ok {
			return t, fmt.Errorf("lookup table %q not loaded", s.VLookup.Table)
		}
		returns := make([]recordset.Lookup, len(s.VLookup.Columns))
		for i, c := range s.VLookup.Columns {
			returns[i] = recordset.Lookup{Column: c.Name, Default: c.Default}
		}
		return t.VLookup(foreign, s.VLookup.FK, s.VLookup.PK, returns...)

	case s.NLargest != nil:
		return t.NLargest(s.NLargest.N, s.NLargest.Columns...)

	case s.NSmallest != nil:
		return t.NSmallest(s.NSmallest.N, s.NSmallest.Columns...)

	default:
		return t, fmt.Errorf("no operation given")
	}
}

// predicate compiles the condition; a nil condition matches every row
func (c *Condition) predicate(t *recordset.Table) (recordset.PredicateFunc, error) {
	if c == nil {
		return nil, nil
	}
	if t.Len() > 0 && !t.HasColumn(c.Column) {
		return nil, &errors.ColumnNotFoundError{TableName: t.Name(), ColumnName: c.Column}
	}

	col, want := c.Column, c.Value
	var match func(string) bool
	switch c.Op {
	case "eq":
		match = func(v string) bool { return v == want }
	case "ne":
		match = func(v string) bool { return v != want }
	case "contains":
		match = func(v string) bool { return strings.Contains(v, want) }
	case "prefix":
		match = func(v string) bool { return strings.HasPrefix(v, want) }
	default:
		return nil, fmt.Errorf("unknown condition op %q", c.Op)
	}
	return func(row *data.Row) bool { return match(row.Text(col)) }, nil
}
