// Package outwriter renders report runs and location listings.
package outwriter

import (
	"os"

	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/schema"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// LastUpdatedFormat matches the zero-padded month/day/year used in the banner.
const LastUpdatedFormat = "01/02/06"

// NoNewsMessage ends a text report without any news.
const NoNewsMessage = "No news to report."

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteGoodNews prints a report run using the configured output format.
func (ow *OutWriter) WriteGoodNews(result schema.GoodNewsResult, cfg *contract.Config) error {
	return PrintGoodNews(result, cfg)
}

// WriteLocations prints a location listing using the configured output format.
func (ow *OutWriter) WriteLocations(rows []schema.LocationSummary, cfg *contract.Config) error {
	return PrintLocations(rows, cfg)
}

// ColorsEnabled reports whether text output should be colored. Colors need
// the --color setting, stdout as the destination and a terminal behind it.
func ColorsEnabled(cfg *contract.Config) bool {
	return cfg.UseColors && cfg.OutputFile == "" && term.IsTerminal(int(os.Stdout.Fd()))
}

// paint applies c to s when enabled.
func paint(c *color.Color, enabled bool, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}
