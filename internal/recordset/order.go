package recordset

import (
	"slices"
	"strings"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/query/compare"
)

// OrderBy sorts the rows by the given rules. A rule is a column name,
// prefixed with "-" for descending order. Earlier rules take precedence;
// rows that tie on every rule keep their relative order.
func (t *Table) OrderBy(rules ...string) (*Table, error) {
	if len(t.rows) == 0 {
		return t, nil
	}

	cols := make([]string, len(rules))
	desc := make([]bool, len(rules))
	for i, rule := range rules {
		cols[i] = strings.TrimLeft(rule, "-")
		desc[i] = strings.HasPrefix(rule, "-")
	}
	if err := t.requireColumns(cols...); err != nil {
		return t, err
	}

	// successive stable sorts, least significant rule first
	for i := len(rules) - 1; i >= 0; i-- {
		col, reverse := cols[i], desc[i]
		slices.SortStableFunc(t.rows, func(a, b *data.Row) int {
			c := compare.Values(a.Value(col), b.Value(col))
			if reverse {
				return -c
			}
			return c
		})
	}
	return t, nil
}

// keyed pairs a row with its grouping key
type keyed struct {
	key []interface{}
	row *data.Row
}

// partition stably sorts the rows by the key tuple over cols and splits
// them into maximal runs of equal keys. The receiver is not reordered.
func (t *Table) partition(cols []string) [][]keyed {
	items := make([]keyed, len(t.rows))
	for i, row := range t.rows {
		items[i] = keyed{key: keyOf(row, cols), row: row}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		return compare.Tuples(a.key, b.key)
	})

	var groups [][]keyed
	start := 0
	for i := 1; i <= len(items); i++ {
		if i == len(items) || compare.Tuples(items[start].key, items[i].key) != 0 {
			groups = append(groups, items[start:i])
			start = i
		}
	}
	return groups
}

func keyOf(row *data.Row, cols []string) []interface{} {
	key := make([]interface{}, len(cols))
	for i, c := range cols {
		key[i] = row.Value(c)
	}
	return key
}
