package table

import (
	"sort"
	"unicode/utf8"
)

// ColumnProfile describes the content of one column.
type ColumnProfile struct {
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	NonMissing  int           `json:"non_missing"`
	Missing     int           `json:"missing"`
	Cardinality int           `json:"cardinality"`
	Numeric     *NumericStats `json:"numeric_stats,omitempty"`
	Text        *StringStats  `json:"string_stats,omitempty"`
}

// NumericStats holds statistics for numeric columns
type NumericStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// StringStats holds statistics for text columns
type StringStats struct {
	MinLength int     `json:"min_length"`
	MaxLength int     `json:"max_length"`
	AvgLength float64 `json:"avg_length"`
}

// Profile summarizes every column of t in column order. Both markers
// count as missing.
func Profile(t *Table) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, t.NumCols())
	for i, c := range t.columns {
		p := ColumnProfile{Name: c.Name, Type: c.Type.String()}
		distinct := make(map[string]struct{})
		var numbers []float64
		var lengths []int

		for _, row := range t.rows {
			v := row[i]
			if v.IsNull() {
				p.Missing++
				continue
			}
			p.NonMissing++
			distinct[RowKey([]Value{v})] = struct{}{}
			switch v.Kind() {
			case KindInt:
				numbers = append(numbers, float64(v.i))
			case KindFloat:
				numbers = append(numbers, v.f)
			case KindText:
				lengths = append(lengths, utf8.RuneCountInString(v.s))
			}
		}
		p.Cardinality = len(distinct)
		p.Numeric = numericStats(numbers)
		p.Text = stringStats(lengths)
		profiles = append(profiles, p)
	}
	return profiles
}

func numericStats(numbers []float64) *NumericStats {
	if len(numbers) == 0 {
		return nil
	}
	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	stats := &NumericStats{Min: sorted[0], Max: sorted[len(sorted)-1]}
	sum := 0.0
	for _, n := range sorted {
		sum += n
	}
	stats.Mean = sum / float64(len(sorted))
	stats.Median = Median(sorted)
	return stats
}

func stringStats(lengths []int) *StringStats {
	if len(lengths) == 0 {
		return nil
	}
	stats := &StringStats{MinLength: lengths[0], MaxLength: lengths[0]}
	total := 0
	for _, l := range lengths {
		if l < stats.MinLength {
			stats.MinLength = l
		}
		if l > stats.MaxLength {
			stats.MaxLength = l
		}
		total += l
	}
	stats.AvgLength = float64(total) / float64(len(lengths))
	return stats
}

// Median returns the median of an ascending slice: the middle element,
// or the mean of the two middle elements for even lengths.
func Median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
