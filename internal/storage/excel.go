package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/recordset"
)

// ExcelSource names a workbook by path or carries its raw contents.
// Contents wins when both are set.
type ExcelSource struct {
	Path     string
	Contents []byte
}

// ReadExcel reads one worksheet of an xlsx workbook. Cells are read as
// their formatted text. Rows shorter than the header are padded with "".
func ReadExcel(src ExcelSource, opts ReadOptions) (*recordset.Table, error) {
	return readExcel(context.Background(), src, opts)
}

func openWorkbook(src ExcelSource) (*excelize.File, error) {
	switch {
	case src.Contents != nil:
		return excelize.OpenReader(bytes.NewReader(src.Contents))
	case src.Path != "":
		return excelize.OpenFile(src.Path)
	default:
		return nil, fmt.Errorf("excel source has neither path nor contents")
	}
}

func readExcel(ctx context.Context, src ExcelSource, opts ReadOptions) (*recordset.Table, error) {
	f, err := openWorkbook(src)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if opts.Sheet < 0 || opts.Sheet >= len(sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", opts.Sheet, len(sheets))
	}
	sheet := sheets[opts.Sheet]

	it, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer it.Close()

	var header []string
	var rows []*data.Row
	for line := 0; it.Next(); line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells, err := it.Columns()
		if err != nil {
			return nil, fmt.Errorf("read sheet %q row %d: %w", sheet, line+1, err)
		}
		switch {
		case line < opts.HeaderRow:
			continue
		case line == opts.HeaderRow:
			header = cleanHeader(cells)
		default:
			rows = append(rows, rowFromCells(header, cells))
		}
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	if header == nil && opts.HeaderRow > 0 {
		return nil, fmt.Errorf("read sheet %q: header row %d is past the last row", sheet, opts.HeaderRow)
	}
	return recordset.New(rows, opts.tableOptions(header)...), nil
}

// newWorkbook lays the table out on the first sheet: the header on row 1,
// then one row per record
func newWorkbook(t *recordset.Table) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, line := range t.To2DArray(true) {
		for j, v := range line {
			line[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f, nil
}

// cellValue keeps the types a worksheet stores natively and renders the
// rest as text
func cellValue(v interface{}) interface{} {
	switch v.(type) {
	case string, int, int64, float64, bool:
		return v
	default:
		return data.Text(v)
	}
}

// WriteExcel writes the table as an xlsx workbook. Nothing is written for
// a table without columns.
func WriteExcel(w io.Writer, t *recordset.Table) error {
	if len(t.Columns()) == 0 {
		return nil
	}
	f, err := newWorkbook(t)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExcelBytes returns the workbook contents, or nil for a table without
// columns
func ExcelBytes(t *recordset.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteExcel(&buf, t); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, nil
	}
	return buf.Bytes(), nil
}

// SaveExcel writes the workbook to path atomically
func SaveExcel(t *recordset.Table, path string) error {
	b, err := ExcelBytes(t)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}
	return writeFileAtomic(path, b)
}
