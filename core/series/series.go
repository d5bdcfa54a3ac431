// Package series holds per-location cumulative time series and the
// snapshot tables they are aggregated from.
package series

import (
	"time"
)

// Point is one calendar day of a series.
type Point struct {
	Date  time.Time `json:"date"`
	Value int64     `json:"value"`
}

// Series is an ordered run of points, ascending by date.
// A Series is never mutated after construction.
type Series []Point

// Daily builds a series of consecutive days starting at start.
func Daily(start time.Time, values ...int64) Series {
	s := make(Series, len(values))
	for i, v := range values {
		s[i] = Point{Date: start.AddDate(0, 0, i), Value: v}
	}
	return s
}

// Deltas returns the day-over-day differences of a cumulative series.
// The result has one fewer point; each delta carries the later date.
func (s Series) Deltas() Series {
	if len(s) < 2 {
		return nil
	}
	out := make(Series, len(s)-1)
	for i := 1; i < len(s); i++ {
		out[i-1] = Point{Date: s[i].Date, Value: s[i].Value - s[i-1].Value}
	}
	return out
}

// Last returns the final point and whether the series is non-empty.
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// Subtract returns s minus other, pointwise on matching dates.
// Dates present in only one of the two series are dropped.
func (s Series) Subtract(other Series) Series {
	byDate := make(map[time.Time]int64, len(other))
	for _, p := range other {
		byDate[p.Date] = p.Value
	}
	out := make(Series, 0, len(s))
	for _, p := range s {
		v, ok := byDate[p.Date]
		if !ok {
			continue
		}
		out = append(out, Point{Date: p.Date, Value: p.Value - v})
	}
	return out
}

// Truncate returns the points dated on or before until.
func (s Series) Truncate(until time.Time) Series {
	n := len(s)
	for n > 0 && s[n-1].Date.After(until) {
		n--
	}
	return s[:n]
}
