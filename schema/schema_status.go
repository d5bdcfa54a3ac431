package schema

import "time"

// HistoryStatus represents the status of the report history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalReports  int              `json:"total_reports"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// ReportRunRecord represents a row from the goodnews_report_runs table.
type ReportRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	Country       string
	DataUpdated   *time.Time
	TotalReports  int32
	ConfigParams  *string
}

// ReportLineRecord represents a row from the goodnews_report_lines table.
type ReportLineRecord struct {
	RunID         int64
	Seq           int32
	Section       string
	Kind          string
	Location      string
	Metric        string
	ReferenceDate *time.Time
	Value         int64
	Text          string
}
