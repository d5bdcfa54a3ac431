package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/covid19gng/goodnews/schema"
	log "github.com/sirupsen/logrus"
)

// Default values for configuration.
const (
	DefaultSource              = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series"
	DefaultTimeout             = 60 * time.Second
	DefaultEarliest            = "1/22/20"
	DefaultThresholdDays       = 30
	MaxThresholdDays           = 365
	DefaultRecoveriesThreshold = 1000
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for a report run.
// This struct remains the "final, validated" config.
type Config struct {
	Country string // canonical spelling is resolved against the data; empty means all
	Source  string // base URL or local directory holding the time-series CSVs
	Timeout time.Duration

	Earliest            time.Time
	AsOf                time.Time // zero means the latest date in the data
	ThresholdDays       int
	RecoveriesThreshold int64
	Active              bool

	Workers    int
	Output     schema.OutputMode
	OutputFile string
	UseColors  bool
	LogLevel   log.Level

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Source           string `mapstructure:"source"`
	Timeout          string `mapstructure:"timeout"`
	Workers          int    `mapstructure:"workers"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Color            string `mapstructure:"color"`
	LogLevel         string `mapstructure:"log-level"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from reportCmd.Flags() and locationsCmd.Flags() ---
	Country             string `mapstructure:"country"`
	Earliest            string `mapstructure:"earliest"`
	AsOf                string `mapstructure:"as-of"`
	ThresholdDays       int    `mapstructure:"threshold-days"`
	RecoveriesThreshold int    `mapstructure:"recoveries-threshold"`
	Active              string `mapstructure:"active"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigParams returns the settings recorded alongside each report run.
func (c *Config) ConfigParams() map[string]any {
	params := map[string]any{
		"country":              c.Country,
		"source":               c.Source,
		"earliest":             c.Earliest.Format(time.DateOnly),
		"threshold_days":       c.ThresholdDays,
		"recoveries_threshold": c.RecoveriesThreshold,
		"active":               c.Active,
	}
	if !c.AsOf.IsZero() {
		params["as_of"] = c.AsOf.Format(time.DateOnly)
	}
	return params
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDetection(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseBackend maps a raw backend string to a known backend. Empty means none.
func ParseBackend(raw string) (schema.DatabaseBackend, error) {
	if raw == "" {
		return schema.NoneBackend, nil
	}
	backend := schema.DatabaseBackend(strings.ToLower(raw))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", raw)
	}
	return backend, nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend, err := ParseBackend(input.HistoryBackend)
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates the transport and output fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Country = NormalizeCountry(input.Country)

	cfg.Source = strings.TrimSpace(input.Source)
	if cfg.Source == "" {
		cfg.Source = DefaultSource
	}

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Timeout Validation ---
	cfg.Timeout = DefaultTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout value: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be greater than 0 (received %s)", input.Timeout)
		}
		cfg.Timeout = d
	}

	// --- 3. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- 4. Log Level Validation ---
	level := input.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	cfg.LogLevel = lvl

	return nil
}

// processDetection validates the detector tuning knobs.
func processDetection(cfg *Config, input *ConfigRawInput) error {
	earliest := input.Earliest
	if earliest == "" {
		earliest = DefaultEarliest
	}
	t, err := ParseDate(earliest)
	if err != nil {
		return fmt.Errorf("invalid --earliest value: %w", err)
	}
	cfg.Earliest = t

	cfg.AsOf = time.Time{}
	if input.AsOf != "" {
		asOf, err := ParseDate(input.AsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of value: %w", err)
		}
		if asOf.Before(cfg.Earliest) {
			return fmt.Errorf("as-of date %s is before the earliest tracked date %s",
				asOf.Format(time.DateOnly), cfg.Earliest.Format(time.DateOnly))
		}
		cfg.AsOf = asOf
	}

	if input.ThresholdDays <= 0 || input.ThresholdDays > MaxThresholdDays {
		return fmt.Errorf("threshold-days must be greater than 0 and cannot exceed %d (received %d)", MaxThresholdDays, input.ThresholdDays)
	}
	cfg.ThresholdDays = input.ThresholdDays

	if input.RecoveriesThreshold <= 0 {
		return fmt.Errorf("recoveries-threshold must be greater than 0 (received %d)", input.RecoveriesThreshold)
	}
	cfg.RecoveriesThreshold = int64(input.RecoveriesThreshold)

	active := input.Active
	if active == "" {
		active = "yes"
	}
	on, err := ParseBoolString(active)
	if err != nil {
		return fmt.Errorf("invalid --active value: %w", err)
	}
	cfg.Active = on

	return nil
}
