// Package schema has the models and constants shared by all parts of goodnews.
package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for report history.
	DatabaseBackend string

	// ReportKind represents the detector that produced a report.
	ReportKind string

	// Dataset represents one of the published time-series files.
	Dataset string

	// Scope represents the geographic scope of a dataset.
	Scope string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All report kinds supported.
const (
	LowestSinceKind       ReportKind = "lowest_since"
	RecoveryMilestoneKind ReportKind = "recovery_milestone"
)

// Datasets published by the data source.
const (
	ConfirmedDataset Dataset = "confirmed"
	DeathsDataset    Dataset = "deaths"
	RecoveredDataset Dataset = "recovered"
)

// Scopes published by the data source.
const (
	GlobalScope Scope = "global"
	USScope     Scope = "US"
)

// Column names used by the data source.
const (
	CountryColumn  = "Country/Region"
	ProvinceColumn = "Province/State"
	StateColumn    = "Province_State"
)

// Metric descriptions used in report text.
const (
	ConfirmedMetric = "confirmed cases"
	DeathsMetric    = "deaths"
	ActiveMetric    = "active cases"
)

// USCountry is the Country/Region value that also has a dedicated US dataset.
const USCountry = "US"

// AllCountries is the --country value that selects every country.
const AllCountries = "none"

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
