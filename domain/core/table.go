package core

// Table is an insertion-ordered set of named Series sharing one row count.
// Both cycler steps and impedance sweeps store their measurements in one:
// column order mirrors the source file's header row, and row order is
// chronological.
type Table struct {
	headers []string
	columns map[string]*Series
}

// SetHeaders declares the table's columns in order. Existing column data is
// kept for headers that are already present; new headers start empty.
func (t *Table) SetHeaders(headers []string) {
	if t.columns == nil {
		t.columns = make(map[string]*Series, len(headers))
	}
	t.headers = make([]string, len(headers))
	copy(t.headers, headers)
	for _, h := range headers {
		if _, ok := t.columns[h]; !ok {
			t.columns[h] = &Series{}
		}
	}
}

// Headers returns the column names in insertion order.
func (t *Table) Headers() []string {
	out := make([]string, len(t.headers))
	copy(out, t.headers)
	return out
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns the named column, or ErrColumnNotFound if the name is not
// in this table's header set.
func (t *Table) Column(name string) (*Series, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, NewColumnNotFoundError(name)
	}
	return col, nil
}

// AppendRow adds one row of raw values, matched positionally to the header
// order. Fails with ErrRowWidth when the value count does not match the
// header count, leaving the table unchanged.
func (t *Table) AppendRow(values []string) error {
	if len(values) != len(t.headers) {
		return ErrRowWidth
	}
	for i, h := range t.headers {
		t.columns[h].Append(values[i])
	}
	return nil
}

// NumRows returns the row count. All columns share it.
func (t *Table) NumRows() int {
	if len(t.headers) == 0 {
		return 0
	}
	return t.columns[t.headers[0]].Len()
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.headers)
}

// Records returns the full tabular snapshot: a header row followed by the
// data rows in chronological order. The shape matches the source file, so
// the result feeds external tabular or plotting tooling directly.
func (t *Table) Records() [][]string {
	rows := make([][]string, 0, t.NumRows()+1)
	rows = append(rows, t.Headers())
	for i := 0; i < t.NumRows(); i++ {
		row := make([]string, len(t.headers))
		for j, h := range t.headers {
			row[j] = t.columns[h].Value(i)
		}
		rows = append(rows, row)
	}
	return rows
}
