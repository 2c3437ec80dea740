package model

import (
	"sort"
	"strings"
)

// Row maps column name to cell. Columns missing from the map read as Empty.
type Row map[string]Value

// Get returns the cell for col, or Empty when the row has no such column.
func (r Row) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return Empty
}

// Table is an ordered column list plus rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// HasColumn reports whether col is one of the table's columns.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Append adds a row to the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// SetColumn sets col to v on every row, adding the column last if the table
// does not have it yet.
func (t *Table) SetColumn(col string, v Value) {
	if !t.HasColumn(col) {
		t.Columns = append(t.Columns, col)
	}
	for _, r := range t.Rows {
		r[col] = v
	}
}

// MoveColumnLast moves col to the end of the column list if present.
func (t *Table) MoveColumnLast(col string) {
	for i, c := range t.Columns {
		if c == col {
			t.Columns = append(append(t.Columns[:i:i], t.Columns[i+1:]...), col)
			return
		}
	}
}

// Column returns the cells of col in row order.
func (t *Table) Column(col string) []Value {
	out := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Get(col)
	}
	return out
}

// Record returns the cells of row i in column order.
func (t *Table) Record(i int) []string {
	r := t.Rows[i]
	rec := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		rec[j] = r.Get(c).Raw
	}
	return rec
}

// Concat stacks tables in order. Columns are the union by name in first-seen
// order; rows keep their relative order and get Empty for columns their
// source table did not have.
func Concat(tables ...*Table) *Table {
	out := &Table{}
	seen := make(map[string]bool)
	total := 0
	for _, t := range tables {
		for _, c := range t.Columns {
			if !seen[c] {
				seen[c] = true
				out.Columns = append(out.Columns, c)
			}
		}
		total += len(t.Rows)
	}

	out.Rows = make([]Row, 0, total)
	for _, t := range tables {
		for _, r := range t.Rows {
			nr := make(Row, len(out.Columns))
			for _, c := range out.Columns {
				nr[c] = r.Get(c)
			}
			out.Rows = append(out.Rows, nr)
		}
	}
	return out
}

// SortBy stable-sorts rows ascending by the given columns. A column whose
// non-empty cells are all numbers compares numerically; any other column
// compares raw text. Empty cells sort after every non-empty cell.
func (t *Table) SortBy(cols ...string) {
	numeric := make([]bool, len(cols))
	for i, c := range cols {
		numeric[i] = t.NumericColumn(c)
	}

	sort.SliceStable(t.Rows, func(i, j int) bool {
		for k, c := range cols {
			if d := Compare(t.Rows[i].Get(c), t.Rows[j].Get(c), numeric[k]); d != 0 {
				return d < 0
			}
		}
		return false
	})
}

// NumericColumn reports whether col has at least one number and no
// non-empty cell that is not a number.
func (t *Table) NumericColumn(col string) bool {
	found := false
	for _, r := range t.Rows {
		v := r.Get(col)
		switch v.Kind {
		case KindEmpty:
			continue
		case KindNumber:
			found = true
		default:
			return false
		}
	}
	return found
}

// Compare orders two cells: -1, 0 or +1. Empty cells sort last; numeric
// compares Num, otherwise raw text is compared bytewise.
func Compare(a, b Value, numeric bool) int {
	switch {
	case a.IsEmpty() && b.IsEmpty():
		return 0
	case a.IsEmpty():
		return 1
	case b.IsEmpty():
		return -1
	}
	if numeric {
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		}
		return 0
	}
	return strings.Compare(a.Raw, b.Raw)
}
