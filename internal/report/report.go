// Package report renders change sets and tables for people and scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/leengari/recordlib/internal/domain/change"
	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/recordset"
)

// Format selects the rendering of a change set
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat converts a format name to a Format
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text or json)", name)
	}
}

// WriteChanges renders the change set: deleted rows, then added rows,
// then updated rows with their field changes
func WriteChanges(w io.Writer, cs *change.ChangeSet, format Format) error {
	switch format {
	case FormatJSON:
		return writeChangesJSON(w, cs)
	case FormatText, "":
		return writeChangesText(w, cs)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeChangesText(w io.Writer, cs *change.ChangeSet) error {
	if cs.Empty() {
		_, err := fmt.Fprintf(w, "diff on %s: no changes\n", cs.KeyColumn)
		return err
	}

	fmt.Fprintf(w, "diff on %s: %d added, %d deleted, %d updated\n\n",
		cs.KeyColumn, len(cs.Added), len(cs.Deleted), len(cs.Updated))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CHANGE\tKEY\tDETAIL")
	fmt.Fprintln(tw, "---\t---\t---")
	for _, c := range cs.All() {
		var detail string
		switch c.Type {
		case change.ChangeTypeAdded:
			detail = describeRow(c.Row)
		case change.ChangeTypeDeleted:
			detail = describeRow(c.OldRow)
		case change.ChangeTypeUpdated:
			detail = describeFields(c)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Type, data.Text(c.Key), detail)
	}
	return tw.Flush()
}

func describeRow(row *data.Row) string {
	parts := make([]string, 0, row.Len())
	for _, c := range row.Columns() {
		parts = append(parts, c+"="+row.Text(c))
	}
	return strings.Join(parts, ", ")
}

func describeFields(c change.Change) string {
	parts := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s -> %s", f, c.OldRow.Text(f), c.Row.Text(f)))
	}
	return strings.Join(parts, "; ")
}

type jsonChanges struct {
	Key     string       `json:"key"`
	Added   []jsonChange `json:"added"`
	Deleted []jsonChange `json:"deleted"`
	Updated []jsonChange `json:"updated"`
}

type jsonChange struct {
	Key    interface{} `json:"key"`
	Before *data.Row   `json:"before,omitempty"`
	After  *data.Row   `json:"after,omitempty"`
	Fields []string    `json:"fields,omitempty"`
}

func toJSONChanges(list []change.Change) []jsonChange {
	out := make([]jsonChange, len(list))
	for i, c := range list {
		out[i] = jsonChange{Key: c.Key, Before: c.OldRow, After: c.Row, Fields: c.Fields}
	}
	return out
}

func writeChangesJSON(w io.Writer, cs *change.ChangeSet) error {
	b, err := json.MarshalIndent(jsonChanges{
		Key:     cs.KeyColumn,
		Added:   toJSONChanges(cs.Added),
		Deleted: toJSONChanges(cs.Deleted),
		Updated: toJSONChanges(cs.Updated),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal changes: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// WriteTable prints an aligned preview of the table. A positive limit caps
// the number of rows shown.
func WriteTable(w io.Writer, t *recordset.Table, limit int) error {
	cols := t.Columns()
	if len(cols) == 0 {
		_, err := fmt.Fprintln(w, "(empty table)")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	sep := make([]string, len(cols))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	cells := make([]string, len(cols))
	for i, row := range t.All() {
		if limit > 0 && i >= limit {
			break
		}
		for j, c := range cols {
			cells[j] = row.Text(c)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if limit > 0 && t.Len() > limit {
		_, err := fmt.Fprintf(w, "(%d of %d rows)\n", limit, t.Len())
		return err
	}
	_, err := fmt.Fprintf(w, "(%d rows)\n", t.Len())
	return err
}
