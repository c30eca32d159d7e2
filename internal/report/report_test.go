package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/recordlib/internal/domain/change"
	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/recordset"
	"github.com/leengari/recordlib/internal/testutil"
)

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func sampleChanges(t *testing.T) *change.ChangeSet {
	t.Helper()
	people := func(rows ...[2]string) *recordset.Table {
		out := make([]*data.Row, len(rows))
		for i, r := range rows {
			out[i] = data.RowOf("id", r[0], "name", r[1])
		}
		return recordset.New(out)
	}
	before := people([2]string{"1", "a"}, [2]string{"2", "b"}, [2]string{"3", "c"})
	after := people([2]string{"2", "b"}, [2]string{"3", "C"}, [2]string{"4", "d"})

	cs, err := before.GetChanges(after, "id")
	require.NoError(t, err)
	return cs
}

func TestWriteChanges_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChanges(&buf, sampleChanges(t), FormatText))
	newGolden(t).Assert(t, "changes_text", buf.Bytes())
}

func TestWriteChanges_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChanges(&buf, sampleChanges(t), FormatJSON))
	assert.True(t, json.Valid(buf.Bytes()))
	newGolden(t).Assert(t, "changes_json", buf.Bytes())
}

func TestWriteChanges_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChanges(&buf, change.NewChangeSet("id"), FormatText))
	newGolden(t).Assert(t, "changes_empty", buf.Bytes())
}

func TestWriteTable_Preview(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, testutil.UsersTable(), 2))
	newGolden(t).Assert(t, "table_preview", buf.Bytes())
}

func TestWriteTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, recordset.New(nil), 0))
	assert.Equal(t, "(empty table)\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
