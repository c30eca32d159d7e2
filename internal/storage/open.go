// Package storage converts record tables to and from files: CSV, xlsx
// workbooks and JSON arrays. The format is picked from the file extension.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leengari/recordlib/internal/recordset"
)

// Format identifies a file encoding
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
	FormatJSON  Format = "json"
)

// FormatOf derives the format from the file extension
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatExcel, nil
	case ".json":
		return FormatJSON, nil
	case ".xls":
		return "", fmt.Errorf("%s: legacy .xls workbooks are not supported, save as .xlsx", path)
	default:
		return "", fmt.Errorf("%s: unsupported file extension %q", path, ext)
	}
}

// Open reads the file at path into a table. The table is named after the
// file unless opts.Name is set.
func Open(ctx context.Context, path string, opts ReadOptions) (*recordset.Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if opts.Name == "" {
		opts.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	var t *recordset.Table
	switch format {
	case FormatCSV:
		t, err = readCSVFile(ctx, path, opts)
	case FormatExcel:
		t, err = readExcel(ctx, ExcelSource{Path: path}, opts)
	case FormatJSON:
		t, err = readJSONFile(path, opts)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("table loaded",
		slog.String("table", t.Name()),
		slog.String("path", path),
		slog.Int("rows", t.Len()),
		slog.Int("columns", len(t.Columns())),
	)
	return t, nil
}

// Save writes the table to path in the format given by its extension
func Save(t *recordset.Table, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		err = saveCSV(t, path)
	case FormatExcel:
		err = SaveExcel(t, path)
	case FormatJSON:
		err = SaveJSON(t, path)
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	slog.Info("table saved",
		slog.String("table", t.Name()),
		slog.String("path", path),
		slog.Int("rows", t.Len()),
	)
	return nil
}

func saveCSV(t *recordset.Table, path string) error {
	var b strings.Builder
	if err := WriteCSV(&b, t); err != nil {
		return err
	}
	return writeFileAtomic(path, []byte(b.String()))
}

// Exists reports whether path names an existing regular file
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
