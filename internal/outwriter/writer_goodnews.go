package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/schema"
)

// PrintGoodNews outputs a report run, dispatching on the configured format.
func PrintGoodNews(result schema.GoodNewsResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONGoodNews(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVGoodNews(w, result)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		colors := ColorsEnabled(cfg)
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTextGoodNews(w, result, colors)
		}, "Wrote text"); err != nil {
			return fmt.Errorf("error writing text output: %w", err)
		}
	}
	return nil
}

// writeTextGoodNews prints the banner, each non-empty section and its news.
func writeTextGoodNews(w io.Writer, result schema.GoodNewsResult, colors bool) error {
	banner := "Last Updated: " + result.LastUpdated.Format(LastUpdatedFormat)
	if result.Country != "" {
		banner += " | Country: " + result.Country
	}
	if _, err := fmt.Fprintf(w, "%s\n", paint(contract.TitleColor, colors, banner)); err != nil {
		return err
	}

	for _, section := range result.Sections {
		if len(section.Reports) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", paint(contract.SectionColor, colors, section.Title)); err != nil {
			return err
		}
		for _, r := range section.Reports {
			if _, err := fmt.Fprintln(w, paint(contract.NewsColor, colors, r.Text)); err != nil {
				return err
			}
		}
	}

	if result.Total() == 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", paint(contract.MutedColor, colors, NoNewsMessage)); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONGoodNews writes the result with its total count.
func writeJSONGoodNews(w io.Writer, result schema.GoodNewsResult) error {
	type jsonResult struct {
		schema.GoodNewsResult
		Total int `json:"total"`
	}
	return writeJSON(w, jsonResult{GoodNewsResult: result, Total: result.Total()})
}

// writeCSVGoodNews writes one row per report.
func writeCSVGoodNews(w io.Writer, result schema.GoodNewsResult) error {
	header := []string{
		"section",
		"kind",
		"location",
		"metric",
		"reference_date",
		"before_earliest",
		"possibly_since",
		"value",
		"milestone",
		"text",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, section := range result.Sections {
			for _, r := range section.Reports {
				row := []string{
					section.Title,
					string(r.Kind),
					r.Location,
					r.Metric,
					formatDate(r.ReferenceDate()),
					strconv.FormatBool(r.BeforeEarliest),
					formatDate(r.PossiblySince),
					strconv.FormatInt(r.Value, 10),
					strconv.FormatInt(r.Milestone, 10),
					r.Text,
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// formatDate renders an ISO date, or nothing for the zero time.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
