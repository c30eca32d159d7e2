package testutil

import (
	"testing"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/recordset"
)

// AssertRowCount checks if the table has the expected number of rows
func AssertRowCount(t *testing.T, table *recordset.Table, expected int, context string) {
	t.Helper()
	if actual := table.Len(); actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumns checks the table column list, order included
func AssertColumns(t *testing.T, table *recordset.Table, expected []string, context string) {
	t.Helper()
	actual := table.Columns()
	if len(actual) != len(expected) {
		t.Errorf("%s: expected columns %v, got %v", context, expected, actual)
		return
	}
	for i := range expected {
		if actual[i] != expected[i] {
			t.Errorf("%s: expected columns %v, got %v", context, expected, actual)
			return
		}
	}
}

// AssertUniform checks that every row exposes exactly the table columns
func AssertUniform(t *testing.T, table *recordset.Table, context string) {
	t.Helper()
	cols := table.Columns()
	for i, row := range table.All() {
		if row.Len() != len(cols) {
			t.Errorf("%s: row %d has %d columns, table has %d", context, i, row.Len(), len(cols))
			continue
		}
		for _, c := range cols {
			if !row.Has(c) {
				t.Errorf("%s: row %d lacks column '%s'", context, i, c)
			}
		}
	}
}

// AssertColumnValues checks the values of one column, in row order
func AssertColumnValues(t *testing.T, table *recordset.Table, column string, expected []interface{}, context string) {
	t.Helper()
	if table.Len() != len(expected) {
		t.Errorf("%s: expected %d rows, got %d", context, len(expected), table.Len())
		return
	}
	for i, row := range table.All() {
		if got := row.Value(column); !data.Equal(got, expected[i]) {
			t.Errorf("%s: row %d column '%s': expected %v (%T), got %v (%T)",
				context, i, column, expected[i], expected[i], got, got)
		}
	}
}

// AssertColumnExists checks if a column exists in a row
func AssertColumnExists(t *testing.T, row *data.Row, column, context string) {
	t.Helper()
	if !row.Has(column) {
		t.Errorf("%s: expected column '%s' to exist", context, column)
	}
}

// AssertColumnNotExists checks if a column does not exist in a row
func AssertColumnNotExists(t *testing.T, row *data.Row, column, context string) {
	t.Helper()
	if row.Has(column) {
		t.Errorf("%s: did not expect column '%s' to exist", context, column)
	}
}
