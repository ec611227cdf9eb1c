// Package table provides the in-memory tabular model the cleaning
// pipeline operates on: an ordered set of uniquely named, typed columns
// and rows of tagged cell values.
//
// Every derivation method returns a new *Table and leaves its receiver
// untouched. Row slices may be shared between a table and the tables
// derived from it, so rows are never written after AppendRow.
package table

import (
	"github.com/ajitpratap0/titleclean/pkg/errors"
)

// Table is an ordered collection of typed columns and rows.
type Table struct {
	columns []Column
	index   map[string]int
	rows    [][]Value
}

// New creates an empty table with the given columns. Names must be
// non-empty and unique.
func New(columns ...Column) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c.Name == "" {
			return nil, errors.Newf(errors.ErrorTypeValidation, "column %d has an empty name", i)
		}
		if _, dup := index[c.Name]; dup {
			return nil, errors.Newf(errors.ErrorTypeValidation, "duplicate column name %q", c.Name)
		}
		index[c.Name] = i
	}
	cols := make([]Column, len(columns))
	copy(cols, columns)
	return &Table{columns: cols, index: index}, nil
}

// MustNew is New that panics on error. It is meant for fixed column sets.
func MustNew(columns ...Column) *Table {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// AppendRow adds a row. It is only meant to be used while a table is
// being built, before it is handed to other code.
func (t *Table) AppendRow(values ...Value) error {
	if len(values) != len(t.columns) {
		return errors.Newf(errors.ErrorTypeData, "row has %d values, table has %d columns", len(values), len(t.columns))
	}
	for i, v := range values {
		if !t.columns[i].Type.Accepts(v.Kind()) {
			return errors.Newf(errors.ErrorTypeData, "column %q of type %s cannot hold a %s value",
				t.columns[i].Name, t.columns[i].Type, v.Kind())
		}
	}
	row := make([]Value, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Columns returns a copy of the column descriptors in order.
func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// NumRows returns the number of rows
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the number of columns
func (t *Table) NumCols() int { return len(t.columns) }

// Shape returns the table size
func (t *Table) Shape() Shape { return Shape{Rows: len(t.rows), Cols: len(t.columns)} }

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Column returns the descriptor of the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Cell returns the value at the given row and column position.
func (t *Table) Cell(row, col int) Value {
	return t.rows[row][col]
}

// Get returns the value of the named column in the given row. An unknown
// column yields the missing marker.
func (t *Table) Get(row int, name string) Value {
	i, ok := t.index[name]
	if !ok {
		return Missing()
	}
	return t.rows[row][i]
}

// Row returns a copy of the given row.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.rows[i]))
	copy(row, t.rows[i])
	return row
}

// ColumnValues returns a copy of the named column's values, or nil if the
// column does not exist.
func (t *Table) ColumnValues(name string) []Value {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	values := make([]Value, len(t.rows))
	for r, row := range t.rows {
		values[r] = row[i]
	}
	return values
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	rows := make([][]Value, len(t.rows))
	for i, row := range t.rows {
		rows[i] = make([]Value, len(row))
		copy(rows[i], row)
	}
	return t.derive(t.Columns(), rows)
}

// DropColumns returns a table without the named columns. Names that do
// not exist are ignored.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[int]bool, len(names))
	for _, n := range names {
		if i, ok := t.index[n]; ok {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return t
	}

	cols := make([]Column, 0, len(t.columns)-len(drop))
	keep := make([]int, 0, len(t.columns)-len(drop))
	for i, c := range t.columns {
		if !drop[i] {
			cols = append(cols, c)
			keep = append(keep, i)
		}
	}
	rows := make([][]Value, len(t.rows))
	for r, row := range t.rows {
		out := make([]Value, len(keep))
		for j, i := range keep {
			out[j] = row[i]
		}
		rows[r] = out
	}
	return t.derive(cols, rows)
}

// WithColumn returns a table where the named column holds values. An
// existing column keeps its position; a new one is appended.
func (t *Table) WithColumn(col Column, values []Value) (*Table, error) {
	if i, ok := t.index[col.Name]; ok {
		return t.Splice(t.columns[i].Name, []Column{col}, [][]Value{values})
	}
	if err := t.checkValues(col, values); err != nil {
		return nil, err
	}
	cols := append(t.Columns(), col)
	rows := make([][]Value, len(t.rows))
	for r, row := range t.rows {
		out := make([]Value, len(row)+1)
		copy(out, row)
		out[len(row)] = values[r]
		rows[r] = out
	}
	return t.derive(cols, rows), nil
}

// Splice returns a table where the named column is replaced, at its
// position, by cols. values[k] holds the values of cols[k].
func (t *Table) Splice(name string, cols []Column, values [][]Value) (*Table, error) {
	at, ok := t.index[name]
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeValidation, "column %q does not exist", name)
	}
	if len(cols) != len(values) {
		return nil, errors.Newf(errors.ErrorTypeValidation, "%d columns given with %d value sets", len(cols), len(values))
	}
	for k, c := range cols {
		if err := t.checkValues(c, values[k]); err != nil {
			return nil, err
		}
		if i, exists := t.index[c.Name]; exists && i != at {
			return nil, errors.Newf(errors.ErrorTypeValidation, "duplicate column name %q", c.Name)
		}
	}

	newCols := make([]Column, 0, len(t.columns)-1+len(cols))
	newCols = append(newCols, t.columns[:at]...)
	newCols = append(newCols, cols...)
	newCols = append(newCols, t.columns[at+1:]...)

	rows := make([][]Value, len(t.rows))
	for r, row := range t.rows {
		out := make([]Value, 0, len(newCols))
		out = append(out, row[:at]...)
		for k := range cols {
			out = append(out, values[k][r])
		}
		out = append(out, row[at+1:]...)
		rows[r] = out
	}

	idx := make(map[string]int, len(newCols))
	for i, c := range newCols {
		if _, dup := idx[c.Name]; dup {
			return nil, errors.Newf(errors.ErrorTypeValidation, "duplicate column name %q", c.Name)
		}
		idx[c.Name] = i
	}
	return &Table{columns: newCols, index: idx, rows: rows}, nil
}

// MapColumn returns a table where every value of the named column has
// been passed through fn and the column has type typ. If the column does
// not exist the receiver is returned.
func (t *Table) MapColumn(name string, typ ColumnType, fn func(Value) Value) (*Table, error) {
	i, ok := t.index[name]
	if !ok {
		return t, nil
	}
	values := make([]Value, len(t.rows))
	for r, row := range t.rows {
		values[r] = fn(row[i])
	}
	return t.WithColumn(Column{Name: t.columns[i].Name, Type: typ}, values)
}

// Filter returns a table holding the rows for which keep returns true,
// in their original order. keep must not modify or retain the row.
func (t *Table) Filter(keep func(row []Value) bool) *Table {
	rows := make([][]Value, 0, len(t.rows))
	for _, row := range t.rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return t.derive(t.Columns(), rows)
}

// RenameColumns returns a table whose columns carry the given names,
// position by position. Data and types are unchanged.
func (t *Table) RenameColumns(names []string) (*Table, error) {
	if len(names) != len(t.columns) {
		return nil, errors.Newf(errors.ErrorTypeValidation, "got %d names for %d columns", len(names), len(t.columns))
	}
	cols := t.Columns()
	for i := range cols {
		cols[i].Name = names[i]
	}
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	out.rows = t.rows
	return out, nil
}

func (t *Table) checkValues(col Column, values []Value) error {
	if len(values) != len(t.rows) {
		return errors.Newf(errors.ErrorTypeValidation, "column %q has %d values, table has %d rows", col.Name, len(values), len(t.rows))
	}
	for _, v := range values {
		if !col.Type.Accepts(v.Kind()) {
			return errors.Newf(errors.ErrorTypeValidation, "column %q of type %s cannot hold a %s value", col.Name, col.Type, v.Kind())
		}
	}
	return nil
}

// derive builds a table from columns that are already known to be unique.
func (t *Table) derive(cols []Column, rows [][]Value) *Table {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c.Name] = i
	}
	return &Table{columns: cols, index: idx, rows: rows}
}
