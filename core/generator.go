package core

import (
	"github.com/covid19gng/goodnews/core/detect"
	"github.com/covid19gng/goodnews/core/series"
	"github.com/covid19gng/goodnews/schema"
)

// Generator produces one section of the report.
type Generator interface {
	Title() string
	Generate() []schema.Report
}

// SeriesGenerator binds one table to one detector. It reports every country
// of the table first, then every state or province.
type SeriesGenerator struct {
	title    string
	table    *series.Table
	detector detect.Detector
}

var _ Generator = &SeriesGenerator{} // Compile-time check

// NewSeriesGenerator returns a generator for table using detector.
func NewSeriesGenerator(title string, table *series.Table, detector detect.Detector) *SeriesGenerator {
	return &SeriesGenerator{title: title, table: table, detector: detector}
}

// Title implements Generator.
func (g *SeriesGenerator) Title() string { return g.title }

// Generate implements Generator.
func (g *SeriesGenerator) Generate() []schema.Report {
	var reports []schema.Report
	if g.table.HasColumn(schema.CountryColumn) {
		for loc, s := range g.table.Locations(schema.CountryColumn) {
			if r, ok := g.detector.Evaluate(s, loc); ok {
				reports = append(reports, r)
			}
		}
	}
	if !hasStates(g.table) {
		return reports
	}
	for loc, s := range g.table.Locations(stateColumn(g.table)) {
		if r, ok := g.detector.Evaluate(s, loc); ok {
			reports = append(reports, r)
		}
	}
	return reports
}

// ActiveGenerator reports active-case lows for the locations present in
// both the confirmed and the recovered table.
type ActiveGenerator struct {
	title     string
	confirmed *series.Table
	recovered *series.Table
	opts      detect.Options
}

var _ Generator = &ActiveGenerator{} // Compile-time check

// NewActiveGenerator returns a generator for active cases.
func NewActiveGenerator(title string, confirmed, recovered *series.Table, opts detect.Options) *ActiveGenerator {
	return &ActiveGenerator{title: title, confirmed: confirmed, recovered: recovered, opts: opts}
}

// Title implements Generator.
func (g *ActiveGenerator) Title() string { return g.title }

// Generate implements Generator.
func (g *ActiveGenerator) Generate() []schema.Report {
	var reports []schema.Report
	if g.confirmed.HasColumn(schema.CountryColumn) && g.recovered.HasColumn(schema.CountryColumn) {
		reports = append(reports, detect.ActiveCases(g.confirmed, g.recovered, schema.CountryColumn, g.opts)...)
	}
	if !hasStates(g.confirmed) {
		return reports
	}
	return append(reports, detect.ActiveCases(g.confirmed, g.recovered, stateColumn(g.confirmed), g.opts)...)
}

// hasStates reports whether the state pass applies. A table without any
// location column is reported once, as a whole, by the state pass.
func hasStates(t *series.Table) bool {
	return t.HasColumn(stateColumn(t)) || !t.HasColumn(schema.CountryColumn)
}

// stateColumn picks the sub-national column: US tables use Province_State,
// global tables Province/State.
func stateColumn(t *series.Table) string {
	if t.HasColumn(schema.StateColumn) {
		return schema.StateColumn
	}
	return schema.ProvinceColumn
}
