package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/recordset"
)

// ReadCSV reads comma-separated text with a header line. All values are
// strings. Empty input gives an empty table.
func ReadCSV(r io.Reader, opts ReadOptions) (*recordset.Table, error) {
	return readCSV(context.Background(), r, opts)
}

// ReadCSVFile reads a CSV file from disk
func ReadCSVFile(path string, opts ReadOptions) (*recordset.Table, error) {
	return readCSVFile(context.Background(), path, opts)
}

func readCSVFile(ctx context.Context, path string, opts ReadOptions) (*recordset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()
	return readCSV(ctx, f, opts)
}

func readCSV(ctx context.Context, r io.Reader, opts ReadOptions) (*recordset.Table, error) {
	cr := csv.NewReader(decodeText(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var header []string
	var rows []*data.Row
	for line := 0; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line+1, err)
		}
		switch {
		case line < opts.HeaderRow:
			continue
		case line == opts.HeaderRow:
			header = cleanHeader(record)
		default:
			rows = append(rows, rowFromCells(header, record))
		}
	}

	if header == nil && opts.HeaderRow > 0 {
		return nil, fmt.Errorf("read csv: header row %d is past the end of input", opts.HeaderRow)
	}
	return recordset.New(rows, opts.tableOptions(header)...), nil
}

// WriteCSV writes the header line and then every row in column order.
// Nothing is written for a table without columns.
func WriteCSV(w io.Writer, t *recordset.Table) error {
	cols := t.Columns()
	if len(cols) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(cols))
	for i, row := range t.All() {
		for j, c := range cols {
			record[j] = row.Text(c)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
