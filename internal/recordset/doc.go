// Package recordset implements the record table: an ordered list of rows
// that all expose the same columns, with in-place transformations,
// grouping, joins, diffs and key management.
//
// Mutating methods change the receiver and return it so calls can be
// chained. Methods that can fail return the receiver together with the
// error and leave the table unmodified on failure.
package recordset
