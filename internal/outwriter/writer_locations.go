package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/schema"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintLocations outputs a location listing, dispatching on the configured format.
func PrintLocations(rows []schema.LocationSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVLocations(w, rows)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLocationTable(w, rows)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// writeLocationTable renders the listing with tablewriter.
func writeLocationTable(w io.Writer, rows []schema.LocationSummary) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Location", "Confirmed", "Deaths", "Recovered"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.Location,
			humanize.Comma(r.Confirmed),
			humanize.Comma(r.Deaths),
			humanize.Comma(r.Recovered),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d locations\n", len(rows))
	return err
}

// writeCSVLocations writes one row per location.
func writeCSVLocations(w io.Writer, rows []schema.LocationSummary) error {
	header := []string{"location", "confirmed", "deaths", "recovered"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			row := []string{
				r.Location,
				strconv.FormatInt(r.Confirmed, 10),
				strconv.FormatInt(r.Deaths, 10),
				strconv.FormatInt(r.Recovered, 10),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
