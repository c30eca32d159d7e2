package recordset

import (
	"container/heap"
	"slices"

	"github.com/leengari/recordlib/internal/domain/data"
	"github.com/leengari/recordlib/internal/query/compare"
)

// NLargest returns a new table with the n rows having the largest keys
// over cols, largest first. Ties keep their original order.
func (t *Table) NLargest(n int, cols ...string) (*Table, error) {
	return t.topN(n, cols, 1)
}

// NSmallest returns a new table with the n rows having the smallest keys
// over cols, smallest first. Ties keep their original order.
func (t *Table) NSmallest(n int, cols ...string) (*Table, error) {
	return t.topN(n, cols, -1)
}

type ranked struct {
	key []interface{}
	pos int
	row *data.Row
}

// rankHeap keeps the worst retained candidate at the root
type rankHeap struct {
	items  []ranked
	better func(a, b ranked) bool
}

func (h *rankHeap) Len() int           { return len(h.items) }
func (h *rankHeap) Less(i, j int) bool { return h.better(h.items[j], h.items[i]) }
func (h *rankHeap) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *rankHeap) Push(x any)         { h.items = append(h.items, x.(ranked)) }
func (h *rankHeap) Pop() any {
	old := h.items
	last := old[len(old)-1]
	h.items = old[:len(old)-1]
	return last
}

func (t *Table) topN(n int, cols []string, sign int) (*Table, error) {
	out := &Table{name: t.name, columns: t.Columns(), rows: []*data.Row{}}
	if len(t.rows) == 0 || n <= 0 {
		return out, nil
	}
	if len(cols) == 0 {
		cols = t.columns
	}
	if err := t.requireColumns(cols...); err != nil {
		return nil, err
	}

	h := &rankHeap{
		items: make([]ranked, 0, min(n, len(t.rows))),
		better: func(a, b ranked) bool {
			if c := compare.Tuples(a.key, b.key) * sign; c != 0 {
				return c > 0
			}
			return a.pos < b.pos
		},
	}

	for i, row := range t.rows {
		item := ranked{key: keyOf(row, cols), pos: i, row: row}
		if h.Len() < n {
			heap.Push(h, item)
			continue
		}
		if h.better(item, h.items[0]) {
			h.items[0] = item
			heap.Fix(h, 0)
		}
	}

	slices.SortFunc(h.items, func(a, b ranked) int {
		if a.pos == b.pos {
			return 0
		}
		if h.better(a, b) {
			return -1
		}
		return 1
	})
	for _, item := range h.items {
		out.rows = append(out.rows, item.row.Copy())
	}
	return out, nil
}
