package recordset

// To2DArray returns the table as rows of values in column order, preceded
// by the column names when headers is true
func (t *Table) To2DArray(headers bool) [][]interface{} {
	out := make([][]interface{}, 0, len(t.rows)+1)
	if headers {
		head := make([]interface{}, len(t.columns))
		for i, c := range t.columns {
			head[i] = c
		}
		out = append(out, head)
	}
	for _, row := range t.rows {
		line := make([]interface{}, len(t.columns))
		for i, c := range t.columns {
			line[i] = row.Value(c)
		}
		out = append(out, line)
	}
	return out
}
