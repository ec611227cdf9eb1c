package table

import (
	"strconv"
	"strings"

	"github.com/ajitpratap0/titleclean/pkg/errors"
)

// naTokens are the raw cell strings read as missing on load.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNAToken reports whether a raw cell string is read as missing.
func IsNAToken(s string) bool {
	_, ok := naTokens[s]
	return ok
}

// InferColumn decides the type of a column from its raw cell strings.
// NA tokens are ignored; if every remaining cell is an integer the column
// is TypeInteger, if every one is a number it is TypeFloat, otherwise it
// is TypeText. A column with nothing but NA tokens is TypeMissing.
// Dates are never inferred.
func InferColumn(raw []string) ColumnType {
	counts := make(map[ColumnType]int, 3)
	for _, s := range raw {
		if IsNAToken(s) {
			continue
		}
		typ := detectValueType(s)
		counts[typ]++
		if typ == TypeText {
			return TypeText
		}
	}
	switch {
	case counts[TypeFloat] > 0:
		return TypeFloat
	case counts[TypeInteger] > 0:
		return TypeInteger
	default:
		return TypeMissing
	}
}

func detectValueType(s string) ColumnType {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return TypeInteger
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil && !strings.ContainsAny(s, " \t") {
		return TypeFloat
	}
	return TypeText
}

// ParseCell converts a raw string into a value of the given column type.
// NA tokens become the missing marker.
func ParseCell(raw string, typ ColumnType) Value {
	if IsNAToken(raw) {
		return Missing()
	}
	switch typ {
	case TypeInteger:
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Int(i)
		}
	case TypeFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return Float(f)
		}
	case TypeMissing:
		return Missing()
	}
	return Text(raw)
}

// NormalizeHeader returns the column names a header row is read as:
// blank cells become "Unnamed: <position>" and repeated names get ".1",
// ".2" suffixes in order of appearance.
func NormalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		names[i] = h
	}
	counts := make(map[string]int, len(header))
	for _, n := range names {
		seen[n] = true
	}
	for i, n := range names {
		k := counts[n]
		counts[n] = k + 1
		if k == 0 {
			continue
		}
		candidate := n + "." + strconv.Itoa(k)
		for seen[candidate] {
			k++
			candidate = n + "." + strconv.Itoa(k)
		}
		counts[n] = k + 1
		seen[candidate] = true
		names[i] = candidate
	}
	return names
}

// FromRecords builds a table from a header row and raw records, inferring
// each column's type. Short records are padded with missing values;
// records longer than the header are rejected.
func FromRecords(header []string, records [][]string) (*Table, error) {
	names := NormalizeHeader(header)
	width := len(names)

	for n, rec := range records {
		if len(rec) > width {
			return nil, errors.Newf(errors.ErrorTypeData,
				"expected %d fields in line %d, saw %d", width, n+2, len(rec)).
				WithDetail("line", n+2)
		}
	}

	cols := make([]Column, width)
	raw := make([]string, len(records))
	for c := 0; c < width; c++ {
		for r, rec := range records {
			if c < len(rec) {
				raw[r] = rec[c]
			} else {
				raw[r] = ""
			}
		}
		cols[c] = Column{Name: names[c], Type: InferColumn(raw)}
	}

	t, err := New(cols...)
	if err != nil {
		return nil, err
	}
	t.rows = make([][]Value, len(records))
	for r, rec := range records {
		row := make([]Value, width)
		for c := range row {
			if c < len(rec) {
				row[c] = ParseCell(rec[c], cols[c].Type)
			}
		}
		t.rows[r] = row
	}
	return t, nil
}
