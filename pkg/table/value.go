package table

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ajitpratap0/titleclean/pkg/pool"
)

// DateLayout is the layout used when a date cell is rendered as text.
const DateLayout = "2006-01-02"

// Kind tags the content of a Value.
type Kind uint8

const (
	// KindMissing marks an absent value. It is shared by every column type.
	KindMissing Kind = iota
	// KindNullDate marks a date that failed to parse. It is distinct from
	// KindMissing so that "absent" and "unparseable" can be told apart.
	KindNullDate
	// KindText holds a string
	KindText
	// KindInt holds an int64
	KindInt
	// KindFloat holds a float64
	KindFloat
	// KindDate holds a calendar date
	KindDate
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNullDate:
		return "null_date"
	case KindText:
		return "text"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Value is one table cell. The zero Value is the missing marker.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	t    time.Time
}

// Missing returns the missing marker.
func Missing() Value { return Value{kind: KindMissing} }

// NullDate returns the null-date marker.
func NullDate() Value { return Value{kind: KindNullDate} }

// Text returns a text value. An empty string is stored as text, not as
// missing; normalizing empty strings is a cleaning decision.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value. Non-finite input yields the missing marker.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing()
	}
	return Value{kind: KindFloat, f: f}
}

// Date returns a date value truncated to the calendar day.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Kind returns the value's tag
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is the missing marker.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// IsNullDate reports whether v is the null-date marker.
func (v Value) IsNullDate() bool { return v.kind == KindNullDate }

// IsNull reports whether v is either marker.
func (v Value) IsNull() bool { return v.kind == KindMissing || v.kind == KindNullDate }

// Text returns the string held by a text value.
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.s, true
}

// Int returns the integer held by an integer value.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float returns the float held by a float value.
func (v Value) Float() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// Date returns the time held by a date value.
func (v Value) Date() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.t, true
}

// String renders the value as text. Both markers render as "".
// Floats with an integral value keep a trailing ".0".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindDate:
		return v.t.Format(DateLayout)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and content.
// Markers compare equal to markers of the same kind.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.s == o.s
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindDate:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// appendKey appends an unambiguous encoding of v to buf.
func (v Value) appendKey(buf []byte) []byte {
	buf = append(buf, byte(v.kind))
	switch v.kind {
	case KindText:
		buf = strconv.AppendInt(buf, int64(len(v.s)), 10)
		buf = append(buf, ':')
		buf = append(buf, v.s...)
	case KindInt:
		buf = strconv.AppendInt(buf, v.i, 10)
	case KindFloat:
		buf = strconv.AppendUint(buf, math.Float64bits(v.f), 16)
	case KindDate:
		buf = strconv.AppendInt(buf, v.t.Unix(), 10)
	}
	return append(buf, 0x1f)
}

// RowKey returns a string that is equal for two rows exactly when every
// cell in them is Equal.
func RowKey(row []Value) string {
	buf := pool.GetBytes()
	defer pool.PutBytes(buf)
	for _, v := range row {
		*buf = v.appendKey(*buf)
	}
	return string(*buf)
}

// ParseNumber parses s as a number the way a lenient numeric coercion
// does: surrounding whitespace is ignored, integers stay integers and
// anything else that parses as a finite float becomes a float.
func ParseNumber(s string) (Value, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing(), false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing(), false
	}
	return Float(f), true
}

// ToNumber coerces v to a numeric value. Text is parsed with ParseNumber;
// anything that is not numeric yields false.
func ToNumber(v Value) (Value, bool) {
	switch v.kind {
	case KindInt, KindFloat:
		return v, true
	case KindText:
		return ParseNumber(v.s)
	default:
		return Missing(), false
	}
}

// ToInt coerces v to an integer, truncating floats toward zero.
func ToInt(v Value) (int64, bool) {
	n, ok := ToNumber(v)
	if !ok {
		return 0, false
	}
	if n.kind == KindFloat {
		if n.f >= math.MaxInt64 || n.f <= math.MinInt64 {
			return 0, false
		}
		return int64(math.Trunc(n.f)), true
	}
	return n.i, true
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
