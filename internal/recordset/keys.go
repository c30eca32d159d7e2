package recordset

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/domain/errors"
)

// DefaultPKName is the key column name used when SetPK gets none
const DefaultPKName = "pk"

var keyEscaper = strings.NewReplacer(`\`, `\\`, `|`, `\|`)

// CompositeKey joins the text of cols with "|". Backslashes and pipes
// inside values are escaped so distinct tuples never share a key. Text is
// NFC-normalized, so composed and decomposed spellings are the same key.
func CompositeKey(row *data.Row, cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = keyEscaper.Replace(norm.NFC.String(row.Text(c)))
	}
	return strings.Join(parts, "|")
}

// SetPK stores the composite key of cols in column name (DefaultPKName
// when empty). The keys must be unique; otherwise a primary key
// ConstraintError naming the first duplicate and all its row positions is
// returned and the table is left untouched.
func (t *Table) SetPK(cols []string, name string) (*Table, error) {
	if name == "" {
		name = DefaultPKName
	}
	if len(cols) == 0 {
		return t, fmt.Errorf("set pk: no key columns given")
	}
	if t.isBlank() {
		return t, nil
	}
	if err := t.requireColumns(cols...); err != nil {
		return t, err
	}

	keys := make([]string, len(t.rows))
	positions := make(map[string][]int, len(t.rows))
	for i, row := range t.rows {
		k := CompositeKey(row, cols)
		keys[i] = k
		positions[k] = append(positions[k], i)
	}

	for _, k := range keys {
		if rows := positions[k]; len(rows) > 1 {
			slog.Debug("duplicate primary key",
				slog.String("table", t.name),
				slog.String("key", k),
				slog.Int("occurrences", len(rows)),
			)
			return t, errors.NewPrimaryKeyViolation(t.name, cols, k, rows)
		}
	}

	for i, row := range t.rows {
		row.Set(name, keys[i])
	}
	t.addColumns(name)
	return t, nil
}
