package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/internal/parquet"
)

// ExecuteHistoryExport writes the stored history to two Parquet files
// named after outputFile.
func ExecuteHistoryExport(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no report history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total report runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total report lines: %d\n", status.TableSizes[reportLinesTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve report runs: %w", err)
	}
	lines, err := store.GetAllLines()
	if err != nil {
		return fmt.Errorf("failed to retrieve report lines: %w", err)
	}

	runsFile := outputFile + ".report_runs.parquet"
	if err := parquet.WriteReportRunsParquet(parquet.ConvertReportRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write report runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d report runs to: %s\n", len(runs), runsFile)

	linesFile := outputFile + ".report_lines.parquet"
	if err := parquet.WriteReportLinesParquet(parquet.ConvertReportLineRecords(lines), linesFile); err != nil {
		return fmt.Errorf("failed to write report lines: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d report lines to: %s\n", len(lines), linesFile)

	return nil
}
