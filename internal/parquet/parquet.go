// Package parquet exports report history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/covid19gng/goodnews/schema"
	"github.com/parquet-go/parquet-go"
)

// ReportRun is one report run with its metadata.
// This struct maps to the goodnews_report_runs database table.
type ReportRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// Country is the country filter, empty for all countries
	Country string `parquet:"country,snappy"`

	// DataUpdated is the last date present in the source data (nullable)
	DataUpdated *time.Time `parquet:"data_updated,optional,snappy"`

	TotalReports int32 `parquet:"total_reports,snappy"`

	// ConfigParams contains the JSON-encoded configuration (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ReportLine is a single report emitted by a run.
// This struct maps to the goodnews_report_lines database table.
type ReportLine struct {
	RunID    int64  `parquet:"run_id,snappy"`
	Seq      int32  `parquet:"seq,snappy"`
	Section  string `parquet:"section,snappy,dict"`
	Kind     string `parquet:"kind,snappy,dict"`
	Location string `parquet:"location,snappy"`
	Metric   string `parquet:"metric,snappy,dict"`

	// ReferenceDate is the "since" date of the report (nullable)
	ReferenceDate *time.Time `parquet:"reference_date,optional,snappy"`

	Value int64  `parquet:"value,snappy"`
	Text  string `parquet:"text,snappy"`
}

// WriteReportRunsParquet writes report runs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteReportLinesParquet writes report lines to a Parquet file.
func WriteReportLinesParquet(data []ReportLine, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows using a schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return file.Close()
}

// ConvertReportRunRecords converts store records for Parquet export.
func ConvertReportRunRecords(records []schema.ReportRunRecord) []ReportRun {
	result := make([]ReportRun, len(records))
	for i, record := range records {
		result[i] = ReportRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			Country:       record.Country,
			DataUpdated:   record.DataUpdated,
			TotalReports:  record.TotalReports,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertReportLineRecords converts store records for Parquet export.
func ConvertReportLineRecords(records []schema.ReportLineRecord) []ReportLine {
	result := make([]ReportLine, len(records))
	for i, record := range records {
		result[i] = ReportLine{
			RunID:         record.RunID,
			Seq:           record.Seq,
			Section:       record.Section,
			Kind:          record.Kind,
			Location:      record.Location,
			Metric:        record.Metric,
			ReferenceDate: record.ReferenceDate,
			Value:         record.Value,
			Text:          record.Text,
		}
	}
	return result
}
