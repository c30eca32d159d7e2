package recordset

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/leengari/recordlib/internal/domain/change"
	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/domain/errors"
)

// GetChanges compares t (the origin) with other, matching rows on pk.
// Both tables must have the same column set. When a key repeats, the last
// row with that key is used. Neither table is modified.
func (t *Table) GetChanges(other *Table, pk string) (*change.ChangeSet, error) {
	if other == nil {
		return nil, fmt.Errorf("get changes: other table is nil")
	}

	onlyLeft, onlyRight := columnDiff(t.columns, other.columns)
	if len(onlyLeft) > 0 || len(onlyRight) > 0 {
		return nil, &errors.SchemaMismatchError{
			Left:      t.name,
			Right:     other.name,
			OnlyLeft:  onlyLeft,
			OnlyRight: onlyRight,
		}
	}

	cs := change.NewChangeSet(pk)
	if t.isBlank() && other.isBlank() {
		return cs, nil
	}
	if err := t.requireColumns(pk); err != nil {
		return nil, err
	}

	before, beforeKeys := indexByKey(t.rows, pk)
	after, afterKeys := indexByKey(other.rows, pk)

	for _, k := range beforeKeys {
		old := before[k]
		cur, ok := after[k]
		if !ok {
			cs.AddDeleted(old.Value(pk), old.Copy())
			continue
		}
		if fields := t.changedFields(old, cur); len(fields) > 0 {
			cs.AddUpdated(old.Value(pk), old.Copy(), cur.Copy(), fields)
		}
	}
	for _, k := range afterKeys {
		if _, ok := before[k]; !ok {
			row := after[k]
			cs.AddAdded(row.Value(pk), row.Copy())
		}
	}

	slog.Debug("changes computed",
		slog.String("table", t.name),
		slog.String("key", pk),
		slog.Int("added", len(cs.Added)),
		slog.Int("deleted", len(cs.Deleted)),
		slog.Int("updated", len(cs.Updated)),
	)
	return cs, nil
}

// changedFields lists differing fields in table column order
func (t *Table) changedFields(a, b *data.Row) []string {
	diff := a.DiffFields(b)
	if len(diff) == 0 {
		return nil
	}
	fields := make([]string, 0, len(diff))
	for _, c := range t.columns {
		if slices.Contains(diff, c) {
			fields = append(fields, c)
		}
	}
	for _, c := range diff {
		if !slices.Contains(fields, c) {
			fields = append(fields, c)
		}
	}
	return fields
}

// indexByKey maps key values to rows, the last row winning, and returns the
// distinct keys in first-seen order
func indexByKey(rows []*data.Row, col string) (map[interface{}]*data.Row, []interface{}) {
	index := make(map[interface{}]*data.Row, len(rows))
	keys := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		k := data.HashKey(row.Value(col))
		if _, ok := index[k]; !ok {
			keys = append(keys, k)
		}
		index[k] = row
	}
	return index, keys
}

func columnDiff(left, right []string) (onlyLeft, onlyRight []string) {
	for _, c := range left {
		if !slices.Contains(right, c) {
			onlyLeft = append(onlyLeft, c)
		}
	}
	for _, c := range right {
		if !slices.Contains(left, c) {
			onlyRight = append(onlyRight, c)
		}
	}
	return onlyLeft, onlyRight
}
