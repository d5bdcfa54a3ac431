package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/internal/iocache"
	"github.com/covid19gng/goodnews/internal/source"
	"github.com/covid19gng/goodnews/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// storeManager is the global persistence manager instance.
var storeManager contract.StoreManager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "goodnews",
	Short:              "Find good news in the COVID-19 time series.",
	Long:               `Goodnews scans the JHU CSSE time series for new lows in daily cases and deaths, and for recovery milestones.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in the .env file, config file and ENV variables if set.
func initConfig() {
	// A missing .env file is fine; variables may come from the real environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		contract.LogWarn("Error loading .env file", err)
	}

	setConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("GOODNEWS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("source", contract.DefaultSource)
	viper.SetDefault("timeout", contract.DefaultTimeout.String())
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("log-level", contract.DefaultLogLevel)
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("earliest", contract.DefaultEarliest)
	viper.SetDefault("threshold-days", contract.DefaultThresholdDays)
	viper.SetDefault("recoveries-threshold", contract.DefaultRecoveriesThreshold)
	viper.SetDefault("active", "yes")
}

// setConfigFile points Viper at --config or the default .goodnews.yaml locations.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".goodnews") // Name of config file (without extension)
	viper.SetConfigType("yaml")      // We'll use YAML format
	viper.AddConfigPath(".")         // Look in the current directory
	viper.AddConfigPath("$HOME")     // Look in the home directory
}

// readConfigFile loads the config file if present.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, cmd *cobra.Command, _ []string) error {
	// 0. Bind the running command's own flags.
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind %s flags: %w", cmd.Name(), err)
	}

	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := readConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	if err := contract.InitLogging(cfg.LogLevel.String()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	// 4. Initialize persistence layer with validated config
	if err := iocache.InitStores(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// newSource builds the table source from the validated config.
func newSource() contract.TableSource {
	return source.New(cfg.Source, cfg.Timeout)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetStoreManager sets the global store manager.
func SetStoreManager(mgr contract.StoreManager) {
	storeManager = mgr
}
