package detect

import (
	"iter"
	"maps"

	"github.com/covid19gng/goodnews/core/series"
	"github.com/covid19gng/goodnews/schema"
)

// ActiveSeries yields confirmed minus recovered for every location keyed by
// key in both tables, in ascending order of the recovered table's keys.
// When neither table has the key column, each is treated as a single location.
func ActiveSeries(confirmed, recovered *series.Table, key string) iter.Seq2[string, series.Series] {
	return func(yield func(string, series.Series) bool) {
		if len(confirmed.Rows) == 0 || len(recovered.Rows) == 0 {
			return
		}

		confHas, recHas := confirmed.HasColumn(key), recovered.HasColumn(key)
		switch {
		case !confHas && !recHas:
			yield(recovered.Name, confirmed.Whole().Subtract(recovered.Whole()))
			return
		case confHas != recHas:
			return
		}

		byLocation := maps.Collect(confirmed.Locations(key))
		for loc, rec := range recovered.Locations(key) {
			conf, ok := byLocation[loc]
			if !ok {
				continue
			}
			if !yield(loc, conf.Subtract(rec)) {
				return
			}
		}
	}
}

// ActiveCases applies the lowest-since rule to every active-cases series.
func ActiveCases(confirmed, recovered *series.Table, key string, opts Options) []schema.Report {
	var reports []schema.Report
	for loc, s := range ActiveSeries(confirmed, recovered, key) {
		if r, ok := LowestSince(s, loc, schema.ActiveMetric, opts); ok {
			reports = append(reports, r)
		}
	}
	return reports
}
