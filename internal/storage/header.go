package storage

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/leengari/recordlib/internal/domain/data"
)

// decodeText strips a leading byte order mark and converts UTF-16 input
// (when marked) to UTF-8. Invalid UTF-8 sequences become U+FFFD.
func decodeText(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// cleanHeader turns raw header cells into column names: BOM and
// surrounding space removed, text NFC-normalized. Blank cells are named
// after their position ("column_3") and repeated names get the first free
// numeric suffix ("qty_2") so no column is lost.
func cleanHeader(cells []string) []string {
	names := make([]string, len(cells))
	seen := make(map[string]int, len(cells))
	for i, cell := range cells {
		name := strings.TrimPrefix(cell, "\ufeff")
		name = norm.NFC.String(strings.TrimSpace(name))
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			base := name
			for {
				name = base + "_" + strconv.Itoa(n)
				if _, taken := seen[name]; !taken {
					break
				}
				n++
			}
			seen[base] = n
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}

// rowFromCells pairs cells with the header. Short rows are padded with "";
// cells beyond the header width are dropped.
func rowFromCells(header, cells []string) *data.Row {
	values := make([]interface{}, len(header))
	for i := range header {
		if i < len(cells) {
			values[i] = cells[i]
		} else {
			values[i] = ""
		}
	}
	return data.NewRowFrom(header, values)
}
