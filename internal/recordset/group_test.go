package recordset_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/query/aggregate"
	"github.com/leengari/recordlib/internal/recordset"
	"github.com/leengari/recordlib/internal/testutil"
)

func TestOrderBy_MixedDirections(t *testing.T) {
	usage := testutil.UsageTable()
	_, err := usage.OrderBy("-date", "ward")
	require.NoError(t, err)

	testutil.AssertColumnValues(t, usage, "qty", []interface{}{"4", "3", "2", "1", "5"}, "ordered")
}

func TestOrderBy_Errors(t *testing.T) {
	_, err := testutil.UsageTable().OrderBy("-nope")
	assert.Error(t, err)

	_, err = recordset.New(nil).OrderBy("anything")
	assert.NoError(t, err)
}

func TestDistinct_KeepsFirst(t *testing.T) {
	usage := testutil.UsageTable()
	_, err := usage.Distinct([]string{"ward"}, false)
	require.NoError(t, err)

	testutil.AssertColumnValues(t, usage, "ward", []interface{}{"A", "B"}, "one per key")
	testutil.AssertColumnValues(t, usage, "qty", []interface{}{"2", "5"}, "first occurrence")
}

func TestDistinct_Eliminate(t *testing.T) {
	usage := testutil.UsageTable()
	_, err := usage.Distinct([]string{"date", "ward"}, true)
	require.NoError(t, err)

	testutil.AssertColumnValues(t, usage, "qty", []interface{}{"5", "4", "3"}, "duplicated keys removed")
}

func TestGroupBy_Sum(t *testing.T) {
	usage := testutil.UsageTable()
	_, err := usage.GroupBy(recordset.Grouping{
		Columns: []string{"date", "ward"},
		Aggs:    []recordset.Aggregation{{Source: "qty", Fn: aggregate.Sum, Alias: "total"}},
	})
	require.NoError(t, err)

	testutil.AssertColumns(t, usage, []string{"date", "ward", "total"}, "output columns")
	testutil.AssertColumnValues(t, usage, "total",
		[]interface{}{int64(3), int64(5), int64(4), int64(3)}, "sums per group")
}

func TestGroupBy_CustomFunctionSingletonGroups(t *testing.T) {
	table := recordset.FromMaps([]map[string]interface{}{
		{"id": "1", "qty": "2"},
		{"id": "2", "qty": "3"},
	})
	sumInts := func(values []interface{}) interface{} {
		total := 0
		for _, v := range values {
			n, _ := strconv.Atoi(data.Text(v))
			total += n
		}
		return total
	}

	_, err := table.GroupBy(recordset.Grouping{
		Columns: []string{"id"},
		Aggs:    []recordset.Aggregation{{Source: "qty", Fn: sumInts, Alias: "total"}},
	})
	require.NoError(t, err)
	testutil.AssertColumnValues(t, table, "total", []interface{}{2, 3}, "each total is its own qty")
}

func TestGroupBy_Selects(t *testing.T) {
	usage := testutil.UsageTable()
	_, err := usage.GroupBy(recordset.Grouping{
		Columns: []string{"date", "ward"},
		Aggs:    []recordset.Aggregation{{Source: "qty", Fn: aggregate.Count, Alias: "n"}},
		Selects: []string{"ward", "n", "code"},
	})
	require.NoError(t, err)

	testutil.AssertColumns(t, usage, []string{"ward", "n", "code"}, "selects order")
	testutil.AssertColumnValues(t, usage, "code", []interface{}{"D1", "D2", "D1", "D1"}, "representative row")
	testutil.AssertColumnValues(t, usage, "n", []interface{}{2, 1, 1, 1}, "counts")
}

func TestGroupRows_LeavesReceiver(t *testing.T) {
	usage := testutil.UsageTable()
	rows, err := usage.GroupRows(recordset.Grouping{Columns: []string{"ward"}})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	testutil.AssertRowCount(t, usage, 5, "receiver")
}

func TestGroupBy_Validation(t *testing.T) {
	usage := testutil.UsageTable()

	_, err := usage.GroupBy(recordset.Grouping{Columns: []string{"ward"}, Selects: []string{"total"}})
	assert.Error(t, err)

	_, err = usage.GroupBy(recordset.Grouping{
		Columns: []string{"ward"},
		Aggs:    []recordset.Aggregation{{Source: "qty", Alias: "total"}},
	})
	assert.Error(t, err)
	testutil.AssertRowCount(t, usage, 5, "unchanged on error")
}

func TestNLargestNSmallest(t *testing.T) {
	usage := testutil.UsageTable()

	top, err := usage.NLargest(2, "qty")
	require.NoError(t, err)
	testutil.AssertColumnValues(t, top, "qty", []interface{}{"5", "4"}, "largest")

	bottom, err := usage.NSmallest(2, "qty")
	require.NoError(t, err)
	testutil.AssertColumnValues(t, bottom, "qty", []interface{}{"1", "2"}, "smallest")

	testutil.AssertRowCount(t, usage, 5, "receiver untouched")
}

func TestNLargest_TiesMatchStableSort(t *testing.T) {
	usage := testutil.UsageTable()
	top, err := usage.NLargest(3, "date")
	require.NoError(t, err)

	sorted := usage.Copy()
	_, err = sorted.OrderBy("-date")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.True(t, sorted.At(i).Equal(top.At(i)), "row %d", i)
	}
	testutil.AssertColumnValues(t, top, "qty", []interface{}{"4", "3", "2"}, "ties in original order")
}

func TestNLargest_Bounds(t *testing.T) {
	usage := testutil.UsageTable()

	all, err := usage.NLargest(10, "qty")
	require.NoError(t, err)
	testutil.AssertRowCount(t, all, 5, "n above length")

	none, err := usage.NSmallest(0, "qty")
	require.NoError(t, err)
	testutil.AssertRowCount(t, none, 0, "n zero")
	testutil.AssertColumns(t, none, usage.Columns(), "columns kept")

	_, err = usage.NLargest(1, "nope")
	assert.Error(t, err)
}

func TestUniqueMaxMinValueCount(t *testing.T) {
	usage := testutil.UsageTable()

	unique, err := usage.Unique("ward")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"A", "B"}, unique)

	maxQty, err := usage.Max("qty")
	require.NoError(t, err)
	assert.Equal(t, "5", maxQty)

	minQty, err := usage.Min("qty")
	require.NoError(t, err)
	assert.Equal(t, "1", minQty)

	counts, err := usage.ValueCount("ward")
	require.NoError(t, err)
	assert.Equal(t, map[interface{}]int{"A": 3, "B": 2}, counts)

	_, err = usage.Max("nope")
	assert.Error(t, err)
}

func TestMaxMin_EmptyTable(t *testing.T) {
	empty := recordset.New(nil)
	v, err := empty.Max("anything")
	assert.NoError(t, err)
	assert.Nil(t, v)

	v, err = empty.Min("anything")
	assert.NoError(t, err)
	assert.Nil(t, v)
}
