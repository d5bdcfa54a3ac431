package cmd

import (
	"fmt"
	"os"

	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyConfig loads the minimal configuration needed by history commands.
// It skips the detection settings that only report and locations validate.
func historyConfig() error {
	if err := readConfigFile(); err != nil {
		return err
	}
	if err := contract.InitLogging(viper.GetString("log-level")); err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}

	backend, err := contract.ParseBackend(viper.GetString("history-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetupWrapper opens the history store for status and export.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	if err := historyConfig(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	return nil
}

// historyConfigWrapper loads config without opening the store, so clear and
// migrate work on a missing or empty database.
func historyConfigWrapper(_ *cobra.Command, _ []string) error {
	return historyConfig()
}

// historyDBFilePath returns the SQLite file in use by the history store.
func historyDBFilePath() string {
	if cfg.HistoryDBConnect != "" {
		return cfg.HistoryDBConnect
	}
	return contract.GetHistoryDBFilePath()
}

// historyCmd focused on report history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the report history and exports",
	Long: `Manage the stored history of report runs.

When --history-backend is set, every report run is stored with:
- Run metadata (timestamp, country, settings, duration)
- Every reported line with its section, location and reference date

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Subcommands:
  status  - Show history statistics
  export  - Export history to Parquet
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Track runs in SQLite
  goodnews report --history-backend sqlite

  # Check history status
  goodnews history status --history-backend sqlite`,
}

// historyClearCmd clears the report history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored report history",
	Long: `Delete all stored report runs and report lines.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history tables

WARNING: This action cannot be undone. Consider exporting first.

Examples:
  # Export before clearing
  goodnews history export --history-backend sqlite --output-file backup
  goodnews history clear --history-backend sqlite`,
	PreRunE: historyConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearHistory(cfg.HistoryBackend, historyDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear report history", err)
		}
		fmt.Println("Report history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show information about the report history store.

Displays:
- Backend type and connection status
- Number of stored runs and reports
- Last and oldest run timestamps
- Row counts per table

Examples:
  # Check history status
  goodnews history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		if err := iocache.PrintHistoryStatus(os.Stdout, status); err != nil {
			contract.LogFatal("Failed to print history status", err)
		}
	},
}

// historyExportCmd exports the report history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export report history to Parquet",
	Long: `Export all stored report history to Parquet files.

Writes two files next to --output-file:
- <output-file>.report_runs.parquet  - one row per report run
- <output-file>.report_lines.parquet - one row per reported line

Requires: --output-file parameter

Examples:
  # Export all history
  goodnews history export --history-backend sqlite --output-file goodnews

  # Query with DuckDB
  duckdb -c "SELECT location, count(*) FROM read_parquet('goodnews.report_lines.parquet') GROUP BY 1"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(os.Stdout, iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export report history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the report history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  goodnews history migrate --history-backend sqlite

  # Migrate to specific version
  goodnews history migrate --history-backend sqlite --target-version 1

  # Rollback to initial state
  goodnews history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyConfigWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
