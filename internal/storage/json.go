package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/recordset"
)

// ReadJSON reads an array of objects. Key order within each object is
// kept; numbers decode to int64 when whole, float64 otherwise.
func ReadJSON(r io.Reader, opts ReadOptions) (*recordset.Table, error) {
	var rows []*data.Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		if err == io.EOF {
			return recordset.New(nil, opts.tableOptions(nil)...), nil
		}
		return nil, fmt.Errorf("decode json rows: %w", err)
	}
	return recordset.New(rows, opts.tableOptions(nil)...), nil
}

func readJSONFile(path string, opts ReadOptions) (*recordset.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open json %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, opts)
}

// WriteJSON writes the rows as an indented array of objects whose keys
// follow the table column order
func WriteJSON(w io.Writer, t *recordset.Table) error {
	b, err := marshalRows(t)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// SaveJSON writes the rows to path atomically
func SaveJSON(t *recordset.Table, path string) error {
	b, err := marshalRows(t)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, b)
}

func marshalRows(t *recordset.Table) ([]byte, error) {
	cols := t.Columns()
	rows := make([]*data.Row, 0, t.Len())
	for _, row := range t.All() {
		projected, _, ok := row.Project(cols)
		if !ok {
			projected = row
		}
		rows = append(rows, projected)
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rows for %s: %w", t.Name(), err)
	}
	return append(b, '\n'), nil
}
