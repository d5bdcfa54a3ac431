package cmd

import (
	"github.com/covid19gng/goodnews/core"
	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd prints the good news for the latest data.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the latest good news.",
	Long: `Load the confirmed, deaths and recovered time series and report good news.

Each section scans every country, then every province or state:
- US confirmed cases and US deaths (all countries, or --country US)
- Confirmed cases and deaths whose daily count is the lowest in a while
- Recovery milestones such as passing 10,000 or 20,000 recoveries
- Active cases (confirmed minus recovered) at a new low

A daily count is news when the previous day with an equal or lower count is
at least --threshold-days before the latest date.

Examples:
  # Good news across all countries
  goodnews report

  # Good news for one country, matched case-insensitively
  goodnews report --country italy

  # Replay the report as it looked on a past date
  goodnews report --as-of 2020-06-01

  # Export to CSV from a local copy of the data
  goodnews report --source ./data --output csv --output-file news.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGoodNews(rootCtx, cfg, newSource(), storeManager); err != nil {
			contract.LogFatal("Cannot run good news report", err)
		}
	},
}
