// Package cmd defines the command-line interface for goodnews.
package cmd

import (
	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("source", contract.DefaultSource, "Base URL or local directory holding the time series CSVs")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultTimeout.String(), "Time limit for loading the data")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent report generators")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("history-backend", "", "Report history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname?parseTime=true)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Detection flags are shared by report, locations and mcp. They are bound
	// to Viper in sharedSetup since only the running command's flags apply.
	for _, c := range []*cobra.Command{reportCmd, locationsCmd, mcpCmd} {
		c.Flags().StringP("country", "c", "", "Country to report on, or 'none' for all countries")
		c.Flags().String("earliest", contract.DefaultEarliest, "First date of the tracked window (YYYY-MM-DD or M/D/YY)")
		c.Flags().String("as-of", "", "Evaluate the data as of this date (defaults to the latest date)")
		c.Flags().Int("threshold-days", contract.DefaultThresholdDays, "Minimum days since the previous low before a low is news")
		c.Flags().Int("recoveries-threshold", contract.DefaultRecoveriesThreshold, "Recoveries must exceed this count before milestones are reported")
		c.Flags().String("active", "yes", "Include the active cases section (yes/no/true/false/1/0)")
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
