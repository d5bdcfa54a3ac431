package series

import (
	"iter"
	"slices"
	"strings"
	"time"
)

// Row is one raw geographic unit of a snapshot table.
// Values[i] is the cumulative count on the table's Dates[i].
type Row struct {
	Attrs  map[string]string
	Values []int64
}

// Table is a snapshot of cumulative counts keyed by location columns.
type Table struct {
	Name    string
	Columns []string
	Dates   []time.Time
	Rows    []Row
}

// HasColumn reports whether the table carries the given attribute column.
func (t *Table) HasColumn(col string) bool {
	return col != "" && slices.Contains(t.Columns, col)
}

// LastDate returns the most recent date column, or the zero time.
func (t *Table) LastDate() time.Time {
	if len(t.Dates) == 0 {
		return time.Time{}
	}
	return t.Dates[len(t.Dates)-1]
}

// Whole sums every row into a single series.
func (t *Table) Whole() Series {
	return t.toSeries(t.sum(t.Rows))
}

// Locations yields one aggregated cumulative series per distinct value of
// the key column, in ascending order of the key. Rows with an empty key are
// skipped. When the key column is absent the whole table is yielded once
// under the table's name.
func (t *Table) Locations(key string) iter.Seq2[string, Series] {
	return func(yield func(string, Series) bool) {
		if len(t.Rows) == 0 {
			return
		}
		if !t.HasColumn(key) {
			yield(t.Name, t.Whole())
			return
		}

		groups := make(map[string][]Row)
		for _, r := range t.Rows {
			k := r.Attrs[key]
			if k == "" {
				continue
			}
			groups[k] = append(groups[k], r)
		}

		keys := make([]string, 0, len(groups))
		for k := range groups {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, k := range keys {
			if !yield(k, t.toSeries(t.sum(groups[k]))) {
				return
			}
		}
	}
}

// Keys returns the sorted distinct non-empty values of a column.
func (t *Table) Keys(col string) []string {
	seen := make(map[string]struct{})
	for _, r := range t.Rows {
		if v := r.Attrs[col]; v != "" {
			seen[v] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Filter returns the rows whose column matches value, ignoring case.
func (t *Table) Filter(col, value string) *Table {
	out := &Table{Name: value, Columns: t.Columns, Dates: t.Dates}
	for _, r := range t.Rows {
		if strings.EqualFold(r.Attrs[col], value) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Until returns a view of the table without date columns after until.
func (t *Table) Until(until time.Time) *Table {
	n := len(t.Dates)
	for n > 0 && t.Dates[n-1].After(until) {
		n--
	}
	out := &Table{Name: t.Name, Columns: t.Columns, Dates: t.Dates[:n], Rows: make([]Row, len(t.Rows))}
	for i, r := range t.Rows {
		out.Rows[i] = Row{Attrs: r.Attrs, Values: r.Values[:min(n, len(r.Values))]}
	}
	return out
}

// From returns a view of the table without date columns before from.
// A zero from returns t unchanged.
func (t *Table) From(from time.Time) *Table {
	if from.IsZero() {
		return t
	}
	i := 0
	for i < len(t.Dates) && t.Dates[i].Before(from) {
		i++
	}
	out := &Table{Name: t.Name, Columns: t.Columns, Dates: t.Dates[i:], Rows: make([]Row, len(t.Rows))}
	for j, r := range t.Rows {
		out.Rows[j] = Row{Attrs: r.Attrs, Values: r.Values[min(i, len(r.Values)):]}
	}
	return out
}

func (t *Table) sum(rows []Row) []int64 {
	totals := make([]int64, len(t.Dates))
	for _, r := range rows {
		for i, v := range r.Values {
			if i < len(totals) {
				totals[i] += v
			}
		}
	}
	return totals
}

func (t *Table) toSeries(values []int64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = Point{Date: t.Dates[i], Value: v}
	}
	return s
}
