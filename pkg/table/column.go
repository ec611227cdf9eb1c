package table

import "fmt"

// ColumnType is the declared scalar type of a column.
type ColumnType uint8

const (
	// TypeMissing is the type of a column that holds no value at all.
	TypeMissing ColumnType = iota
	// TypeText holds text values
	TypeText
	// TypeInteger holds integer values
	TypeInteger
	// TypeFloat holds floating-point values
	TypeFloat
	// TypeDate holds calendar dates
	TypeDate
)

// String returns the type name
func (t ColumnType) String() string {
	switch t {
	case TypeMissing:
		return "missing"
	case TypeText:
		return "text"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeDate:
		return "date"
	default:
		return fmt.Sprintf("ColumnType(%d)", uint8(t))
	}
}

// Accepts reports whether a value of kind k may be stored in a column of this type.
// Markers are accepted everywhere.
func (t ColumnType) Accepts(k Kind) bool {
	switch k {
	case KindMissing, KindNullDate:
		return true
	case KindText:
		return t == TypeText
	case KindInt:
		return t == TypeInteger
	case KindFloat:
		return t == TypeFloat
	case KindDate:
		return t == TypeDate
	default:
		return false
	}
}

// Column describes one named, typed column.
type Column struct {
	Name string
	Type ColumnType
}

// Shape is the (rows, columns) size of a table.
type Shape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// String renders the shape the way the summary report prints it.
func (s Shape) String() string {
	return fmt.Sprintf("%d rows, %d cols", s.Rows, s.Cols)
}
