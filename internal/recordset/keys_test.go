package recordset_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/domain/errors"
	"github.com/leengari/recordlib/internal/recordset"
	"github.com/leengari/recordlib/internal/testutil"
)

func TestSetPK_Unique(t *testing.T) {
	usage := testutil.UsageTable()
	_, err := usage.SetPK([]string{"date", "ward", "code"}, "")
	require.NoError(t, err)

	assert.True(t, usage.HasColumn(recordset.DefaultPKName))
	assert.Equal(t, "2024-01|A|D1", usage.At(0).Value("pk"))
	testutil.AssertUniform(t, usage, "after set pk")
}

func TestSetPK_DuplicateLeavesTable(t *testing.T) {
	usage := testutil.UsageTable()
	_, err := usage.SetPK([]string{"date", "ward"}, "key")

	var constraint *errors.ConstraintError
	require.True(t, stderrors.As(err, &constraint))
	assert.Equal(t, "primary_key", constraint.Constraint)
	assert.Equal(t, "date,ward", constraint.Column)
	assert.Equal(t, "2024-01|A", constraint.Value)
	assert.Equal(t, []int{0, 2}, constraint.Rows)
	assert.False(t, usage.HasColumn("key"))
}

func TestSetPK_OverwritesInPlace(t *testing.T) {
	users := testutil.UsersTable()
	_, err := users.SetPK([]string{"username"}, "id")
	require.NoError(t, err)
	testutil.AssertColumns(t, users, []string{"id", "username", "email"}, "position kept")
	testutil.AssertColumnValues(t, users, "id", []interface{}{"alice", "bob", "charlie"}, "overwritten")
}

func TestSetPK_EscapingKeepsTuplesDistinct(t *testing.T) {
	table := recordset.New([]*data.Row{
		data.RowOf("a", "x|y", "b", "z"),
		data.RowOf("a", "x", "b", "y|z"),
	})
	_, err := table.SetPK([]string{"a", "b"}, "")
	require.NoError(t, err)
	assert.NotEqual(t, table.At(0).Value("pk"), table.At(1).Value("pk"))
}

func TestCompositeKey_NormalizesText(t *testing.T) {
	composed := data.RowOf("name", "caf\u00e9")
	decomposed := data.RowOf("name", "cafe\u0301")
	assert.Equal(t,
		recordset.CompositeKey(composed, []string{"name"}),
		recordset.CompositeKey(decomposed, []string{"name"}),
	)
}

func TestSetPK_Errors(t *testing.T) {
	users := testutil.UsersTable()
	_, err := users.SetPK(nil, "")
	assert.Error(t, err)

	_, err = users.SetPK([]string{"nope"}, "")
	assert.Error(t, err)
}
