package iocache

import (
	"fmt"
	"io"
	"slices"

	"github.com/covid19gng/goodnews/schema"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const statusTimeFormat = "2006-01-02 15:04:05"

// PrintHistoryStatus prints history store status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) error {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		_, _ = fmt.Fprintf(w, "Last Run ID: %d\n", status.LastRunID)
		_, _ = fmt.Fprintf(w, "Last Run: %s (%s)\n", status.LastRunTime.Local().Format(statusTimeFormat), humanize.Time(status.LastRunTime))
		_, _ = fmt.Fprintf(w, "Oldest Run: %s\n", status.OldestRunTime.Local().Format(statusTimeFormat))
		_, _ = fmt.Fprintf(w, "Total Reports: %s\n", humanize.Comma(int64(status.TotalReports)))
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")

	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Table", "Rows"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, name := range tables {
		data = append(data, []string{name, humanize.Comma(status.TableSizes[name])})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
