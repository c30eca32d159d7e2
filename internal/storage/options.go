package storage

import "github.com/leengari/recordlib/internal/recordset"

// ReadOptions controls how a source is turned into a table
type ReadOptions struct {
	// Sheet is the zero-based worksheet index (workbooks only)
	Sheet int
	// HeaderRow is the zero-based line or row holding the column names.
	// Lines above it are ignored.
	HeaderRow int
	// DropIf skips rows before they are admitted into the table
	DropIf recordset.PredicateFunc
	// Name labels the resulting table; Open defaults it to the file name
	Name string
}

func (o ReadOptions) tableOptions(header []string) []recordset.Option {
	opts := []recordset.Option{recordset.WithName(o.Name)}
	if header != nil {
		opts = append(opts, recordset.WithColumns(header...))
	}
	if o.DropIf != nil {
		opts = append(opts, recordset.WithDropIf(o.DropIf))
	}
	return opts
}
