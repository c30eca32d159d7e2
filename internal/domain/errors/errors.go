package errors

import (
	"fmt"
	"strings"
)

// ConstraintError represents a violation of a table constraint
// (primary key uniqueness, duplicate column name, etc.)
type ConstraintError struct {
	Table      string      // table name (may be empty for anonymous tables)
	Column     string      // column name, or a comma-joined column combination
	Value      interface{} // offending value (may be nil)
	Constraint string      // "primary_key", "duplicate_column", ...
	Reason     string      // human-readable explanation (optional)
	RowIndex   int         // row number (0-based) where violation occurred (-1 if unknown)
	Rows       []int       // for key violations: all conflicting row positions
}

func (e *ConstraintError) Error() string {
	var parts []string

	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("constraint violation in %s.%s", e.Table, e.Column))
	} else {
		parts = append(parts, fmt.Sprintf("constraint violation in %s", e.Column))
	}

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Constraint))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.RowIndex >= 0 {
		parts = append(parts, fmt.Sprintf("at row %d", e.RowIndex))
	} else if len(e.Rows) > 0 {
		parts = append(parts, fmt.Sprintf("rows %v", e.Rows))
	}

	return strings.Join(parts, " - ")
}

// NewPrimaryKeyViolation reports a composite key that is not unique
func NewPrimaryKeyViolation(table string, columns []string, value interface{}, rows []int) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     strings.Join(columns, ","),
		Value:      value,
		Constraint: "primary_key",
		Reason:     "duplicate primary key",
		RowIndex:   -1,
		Rows:       rows,
	}
}

// NewDuplicateColumn reports a rename target that already exists
func NewDuplicateColumn(table, column string) *ConstraintError {
	return &ConstraintError{
		Table:      table,
		Column:     column,
		Constraint: "duplicate_column",
		Reason:     "column already exists",
		RowIndex:   -1,
	}
}

// ColumnNotFoundError is returned when an operation references a column
// that the table does not have.
type ColumnNotFoundError struct {
	TableName  string
	ColumnName string
}

func (e *ColumnNotFoundError) Error() string {
	if e.TableName == "" {
		return fmt.Sprintf("column '%s' does not exist", e.ColumnName)
	}
	return fmt.Sprintf("column '%s' does not exist in table '%s'", e.ColumnName, e.TableName)
}

// SchemaMismatchError is returned when two tables that must share a column
// set do not.
type SchemaMismatchError struct {
	Left      string
	Right     string
	OnlyLeft  []string // columns missing from the right table
	OnlyRight []string // columns missing from the left table
}

func (e *SchemaMismatchError) Error() string {
	left, right := e.Left, e.Right
	if left == "" {
		left = "left"
	}
	if right == "" {
		right = "right"
	}
	return fmt.Sprintf("schema mismatch between %s and %s: only in %s %v, only in %s %v",
		left, right, left, e.OnlyLeft, right, e.OnlyRight)
}

// CoercionError describes a cell that could not be converted to the
// requested kind. Format recovers from it by storing the default.
type CoercionError struct {
	Column   string
	Value    interface{}
	Kind     string
	RowIndex int
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot convert %s=%q to %s at row %d", e.Column, fmt.Sprint(e.Value), e.Kind, e.RowIndex)
}
