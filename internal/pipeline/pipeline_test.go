package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/recordset"
	"github.com/leengari/recordlib/internal/storage"
	"github.com/leengari/recordlib/internal/testutil"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func (m *MockObserver) types() []EventType {
	out := make([]EventType, len(m.Events))
	for i, e := range m.Events {
		out[i] = e.Type
	}
	return out
}

const summaryRecipe = `
name: usage-summary
input: {path: usage.csv}
lookups:
  drugs: {path: drugs.csv}
steps:
  - filter: {column: ward, op: ne, value: B}
  - vlookup: {table: drugs, fk: code, pk: code, columns: [{name: price, default: "0"}]}
  - group_by: {columns: [date], aggs: [{source: qty, func: sum, alias: total}]}
  - order_by: [-date]
output: {path: out.csv}
`

func drugsTable() *recordset.Table {
	return recordset.New([]*data.Row{
		data.RowOf("code", "D1", "price", "1.50"),
	}, recordset.WithName("drugs"))
}

func TestParseRecipe(t *testing.T) {
	rc, err := ParseRecipe(strings.NewReader(summaryRecipe))
	require.NoError(t, err)

	assert.Equal(t, "usage-summary", rc.Name)
	require.Len(t, rc.Steps, 4)
	assert.Equal(t, []string{"filter", "vlookup", "group_by", "order_by"},
		[]string{rc.Steps[0].Op(), rc.Steps[1].Op(), rc.Steps[2].Op(), rc.Steps[3].Op()})
	assert.Equal(t, "0", rc.Steps[1].VLookup.Columns[0].Default)
}

func TestParseRecipe_Invalid(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"unknown field", "name: x\nsteps:\n  - sort: [a]\n", "field sort not found"},
		{"missing name", "steps: []\n", "name is required"},
		{"empty step", "name: x\nsteps:\n  - {}\n", "no operation"},
		{"two ops", "name: x\nsteps:\n  - {drop: [a], order_by: [b]}\n", "more than one operation"},
		{"bad op", "name: x\nsteps:\n  - filter: {column: a, op: like, value: b}\n", "unknown condition op"},
		{"bad agg", "name: x\nsteps:\n  - group_by: {columns: [a], aggs: [{source: b, func: median, alias: m}]}\n", "unknown aggregate"},
		{"bad kind", "name: x\nsteps:\n  - format: {columns: [{name: a, kind: money}]}\n", "unknown kind"},
		{"undeclared lookup", "name: x\nsteps:\n  - vlookup: {table: t, fk: a, pk: a}\n", "not declared"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecipe(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunner_ApplyInMemory(t *testing.T) {
	rc, err := ParseRecipe(strings.NewReader(summaryRecipe))
	require.NoError(t, err)

	observer := &MockObserver{}
	runner := NewRunner(observer)

	res, err := runner.Apply(context.Background(), rc, testutil.UsageTable(),
		map[string]*recordset.Table{"drugs": drugsTable()})
	require.NoError(t, err)

	testutil.AssertColumns(t, res.Table, []string{"date", "total"}, "grouped")
	testutil.AssertColumnValues(t, res.Table, "date", []interface{}{"2024-02", "2024-01"}, "ordered")
	testutil.AssertColumnValues(t, res.Table, "total", []interface{}{int64(4), int64(3)}, "summed")
	assert.Equal(t, 4, res.Steps)
	assert.NotEmpty(t, res.RunID)

	assert.Equal(t, []EventType{
		EventRunStart,
		EventStepStart, EventStepEnd,
		EventStepStart, EventStepEnd,
		EventStepStart, EventStepEnd,
		EventStepStart, EventStepEnd,
		EventRunEnd,
	}, observer.types())

	for _, e := range observer.Events {
		assert.Equal(t, res.RunID, e.RunID)
	}
	filterEnd := observer.Events[2].Data.(StepStats)
	assert.Equal(t, 5, filterEnd.RowsBefore)
	assert.Equal(t, 3, filterEnd.RowsAfter)
	assert.Equal(t, "filter", observer.Events[2].Op)
}

func TestRunner_StepErrorStopsRun(t *testing.T) {
	rc, err := ParseRecipe(strings.NewReader("name: broken\nsteps:\n  - drop: [nope]\n  - order_by: [ward]\n"))
	require.NoError(t, err)

	observer := &MockObserver{}
	_, err = NewRunner(observer).Apply(context.Background(), rc, testutil.UsageTable(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1 (drop)")

	last := observer.Events[len(observer.Events)-1]
	assert.Equal(t, EventRunEnd, last.Type)
	assert.Error(t, last.Data.(RunStats).Err)
	assert.Equal(t, []EventType{EventRunStart, EventStepStart, EventRunEnd}, observer.types())
}

func TestRunner_CancelledContext(t *testing.T) {
	rc, err := ParseRecipe(strings.NewReader("name: x\nsteps:\n  - order_by: [ward]\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewRunner().Apply(ctx, rc, testutil.UsageTable(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_RunFromFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, storage.Save(testutil.UsageTable(), filepath.Join(dir, "usage.csv")))
	require.NoError(t, storage.Save(drugsTable(), filepath.Join(dir, "drugs.csv")))
	recipePath := filepath.Join(dir, "summary.yaml")
	require.NoError(t, os.WriteFile(recipePath, []byte(summaryRecipe), 0644))

	rc, err := LoadRecipe(recipePath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "usage.csv"), rc.Input.Path)

	_, err = NewRunner(NewLoggingObserver()).Run(context.Background(), rc)
	require.NoError(t, err)

	out, err := storage.ReadCSVFile(filepath.Join(dir, "out.csv"), storage.ReadOptions{})
	require.NoError(t, err)
	testutil.AssertColumnValues(t, out, "total", []interface{}{"4", "3"}, "saved result")
}

func TestRunner_RemoveObserver(t *testing.T) {
	observer := &MockObserver{}
	runner := NewRunner()
	runner.AddObserver(observer)
	runner.RemoveObserver(observer)

	rc := &Recipe{Name: "noop"}
	_, err := runner.Apply(context.Background(), rc, testutil.UsageTable(), nil)
	require.NoError(t, err)
	assert.Empty(t, observer.Events)
}

func TestSteps_EveryOperation(t *testing.T) {
	recipe := `
name: all-ops
steps:
  - select: {columns: [date, ward, code, qty], where: {column: code, op: prefix, value: D}}
  - rename: [{from: code, to: item}]
  - value_map: {column: ward, mapping: {A: east}, default: west}
  - format: {columns: [{name: qty, kind: int}]}
  - round: [{column: qty, digits: 0}]
  - set_pk: {columns: [date, ward, item], name: key}
  - distinct: {columns: [ward]}
  - nlargest: {n: 1, columns: [qty]}
  - drop: [key]
`
	rc, err := ParseRecipe(strings.NewReader(recipe))
	require.NoError(t, err)

	res, err := NewRunner().Apply(context.Background(), rc, testutil.UsageTable(), nil)
	require.NoError(t, err)

	testutil.AssertColumns(t, res.Table, []string{"date", "ward", "item", "qty"}, "columns")
	testutil.AssertRowCount(t, res.Table, 1, "top row")
	assert.Equal(t, "west", res.Table.At(0).Value("ward"))
	assert.Equal(t, 5.0, res.Table.At(0).Value("qty"))

	small, err := ParseRecipe(strings.NewReader("name: s\nsteps:\n  - nsmallest: {n: 2, columns: [qty]}\n"))
	require.NoError(t, err)
	res, err = NewRunner().Apply(context.Background(), small, testutil.UsageTable(), nil)
	require.NoError(t, err)
	testutil.AssertColumnValues(t, res.Table, "qty", []interface{}{"1", "2"}, "nsmallest")
}
