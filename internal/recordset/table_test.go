package recordset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/recordset"
	"github.com/leengari/recordlib/internal/testutil"
)

func TestNew_UnifiesColumns(t *testing.T) {
	table := recordset.New([]*data.Row{
		data.RowOf("a", 1),
		data.RowOf("b", 2, "a", 3),
	})

	testutil.AssertColumns(t, table, []string{"a", "b"}, "union in first-seen order")
	testutil.AssertUniform(t, table, "after construction")
	assert.Equal(t, "", table.At(0).Value("b"))
	assert.Equal(t, 3, table.At(1).Value("a"))
}

func TestNew_ExplicitColumns(t *testing.T) {
	table := recordset.New([]*data.Row{
		data.RowOf("a", 1, "b", 2),
		data.RowOf("a", 3),
	}, recordset.WithColumns("b", "c"))

	testutil.AssertColumns(t, table, []string{"b", "c"}, "explicit columns")
	testutil.AssertColumnValues(t, table, "b", []interface{}{2, ""}, "b column")
	testutil.AssertColumnValues(t, table, "c", []interface{}{"", ""}, "c column")
	testutil.AssertColumnNotExists(t, table.At(0), "a", "discarded column")
}

func TestNew_DropIfKeepsUniverse(t *testing.T) {
	table := recordset.New([]*data.Row{
		data.RowOf("x", 1, "y", 2),
		data.RowOf("x", 3),
	}, recordset.WithDropIf(func(r *data.Row) bool { return r.Value("x") == 1 }))

	testutil.AssertRowCount(t, table, 1, "drop predicate")
	testutil.AssertColumns(t, table, []string{"x", "y"}, "dropped rows still contribute columns")
	assert.Equal(t, "", table.At(0).Value("y"))
}

func TestNew_DoesNotAliasInput(t *testing.T) {
	raw := data.RowOf("a", 1)
	table := recordset.New([]*data.Row{raw})
	table.At(0).Set("a", 2)
	assert.Equal(t, 1, raw.Value("a"))
}

func TestNew_Empty(t *testing.T) {
	table := recordset.New(nil)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Columns())
	assert.Empty(t, table.To2DArray(true)[0])
}

func TestFromMaps_SortsKeys(t *testing.T) {
	table := recordset.FromMaps([]map[string]interface{}{
		{"b": 1, "a": 2},
		{"c": 3},
	})
	testutil.AssertColumns(t, table, []string{"a", "b", "c"}, "sorted keys")
	testutil.AssertUniform(t, table, "from maps")
}

func TestConcatAndAppend(t *testing.T) {
	users := testutil.UsersTable()
	more := testutil.UsersTable()

	joined := users.Concat(more)
	testutil.AssertRowCount(t, joined, 6, "concat")
	testutil.AssertRowCount(t, users, 3, "concat leaves receiver")

	users.Append(more)
	testutil.AssertRowCount(t, users, 6, "append")

	users.At(0).Set("username", "zed")
	assert.Equal(t, "alice", joined.At(0).Value("username"))
}

func TestCopy_IsIndependent(t *testing.T) {
	users := testutil.UsersTable()
	cp := users.Copy()
	cp.At(0).Set("username", "changed")
	_, err := cp.DropColumn("email")
	require.NoError(t, err)

	assert.Equal(t, "alice", users.At(0).Value("username"))
	assert.True(t, users.HasColumn("email"))
}

func TestAll_StopsEarly(t *testing.T) {
	seen := 0
	for i := range testutil.UsersTable().All() {
		seen++
		if i == 1 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestTo2DArray(t *testing.T) {
	table := recordset.New([]*data.Row{
		data.RowOf("a", 1, "b", "x"),
		data.RowOf("b", "y", "a", 2),
	})

	assert.Equal(t, [][]interface{}{
		{"a", "b"},
		{1, "x"},
		{2, "y"},
	}, table.To2DArray(true))
	assert.Len(t, table.To2DArray(false), 2)
}
