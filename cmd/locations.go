package cmd

import (
	"github.com/covid19gng/goodnews/core"
	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/spf13/cobra"
)

// locationsCmd lists the locations present in the data.
var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List locations with their latest totals.",
	Long: `List every country with its latest confirmed, deaths and recovered totals.

With --country, list that country followed by its provinces or states. The
US states come from the dedicated US tables, which carry no recoveries.

Use this to:
- Find the exact spelling of a country
- Check how fresh the loaded data is

Examples:
  # All countries
  goodnews locations

  # Provinces of Canada as JSON
  goodnews locations --country canada --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLocations(rootCtx, cfg, newSource()); err != nil {
			contract.LogFatal("Cannot list locations", err)
		}
	},
}
