package recordset

import (
	"log/slog"

	"github.com/leengari/recordlib/internal/domain/data"
)

// Lookup names a column to fetch from the foreign table and the value to
// use when no foreign row matches
type Lookup struct {
	Column  string
	Default interface{}
}

// VLookup is a left outer join: for every row, the foreign row whose pk
// equals the row's fk supplies the returned columns. Unmatched rows get
// each lookup's default. A nil or empty foreign table leaves t unchanged.
func (t *Table) VLookup(foreign *Table, fk, pk string, returns ...Lookup) (*Table, error) {
	if foreign == nil || foreign.Len() == 0 {
		return t, nil
	}
	if !t.isBlank() {
		if err := t.requireColumns(fk); err != nil {
			return t, err
		}
	}
	if err := foreign.requireColumns(pk); err != nil {
		return t, err
	}

	index := buildLookupIndex(foreign, pk)

	matched := 0
	for _, row := range t.rows {
		fr, found := index[data.HashKey(row.Value(fk))]
		if found {
			matched++
		}
		for _, rc := range returns {
			v := rc.Default
			if found {
				if fv, ok := fr.Get(rc.Column); ok {
					v = fv
				}
			}
			row.Set(rc.Column, v)
		}
	}

	names := make([]string, len(returns))
	for i, rc := range returns {
		names[i] = rc.Column
	}
	t.addColumns(names...)

	slog.Debug("vlookup completed",
		slog.String("table", t.name),
		slog.String("foreign", foreign.name),
		slog.String("fk", fk),
		slog.String("pk", pk),
		slog.Int("matched", matched),
		slog.Int("missed", len(t.rows)-matched),
	)
	return t, nil
}

// buildLookupIndex maps each key value to its row; the last row wins
func buildLookupIndex(t *Table, col string) map[interface{}]*data.Row {
	index := make(map[interface{}]*data.Row, len(t.rows))
	for _, row := range t.rows {
		index[data.HashKey(row.Value(col))] = row
	}
	return index
}
