// Package main times the goodnews CLI against a local copy of the time series.
// Each command runs with history tracking off and then with SQLite history,
// so the overhead of recording runs shows up next to the base report time.
//
// Prerequisites:
// - goodnews binary installed and available in PATH
// - The five time_series_covid19_*.csv files in the data directory
//
// Usage: go run benchmark/main.go [data-dir]
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the averages of one command with and without history.
type BenchmarkResult struct {
	Country   string
	Command   string
	NoHistory string
	SQLite    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataDir   string
	HistoryDB string
	Timeout   time.Duration
	Runs      int
	Countries []string
	Commands  []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [data-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		DataDir:   os.Args[1],
		HistoryDB: filepath.Join(os.TempDir(), "goodnews_benchmark_history.db"),
		Timeout:   2 * time.Minute,
		Runs:      5,
		Countries: []string{"none", "US", "Italy", "Canada"},
		Commands:  []string{"report", "locations"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.Remove(config.HistoryDB) }()

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the binary and data files exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("goodnews"); err != nil {
		return fmt.Errorf("goodnews binary not found in PATH")
	}
	matches, err := filepath.Glob(filepath.Join(config.DataDir, "time_series_covid19_*.csv"))
	if err != nil {
		return err
	}
	if len(matches) < 5 {
		return fmt.Errorf("expected 5 time series files in %s, found %d", config.DataDir, len(matches))
	}
	return nil
}

// runBenchmarks executes every command for every country.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d countries, %d runs each, %v timeout\n",
		len(config.Countries), config.Runs, config.Timeout)

	for _, country := range config.Countries {
		for _, command := range config.Commands {
			fmt.Printf("Running %s for %s\n", command, country)
			result := BenchmarkResult{
				Country:   country,
				Command:   command,
				NoHistory: average(runBenchmark(config, command, country, "none")),
				SQLite:    average(runBenchmark(config, command, country, "sqlite")),
			}
			fmt.Printf("  No history: %s, SQLite history: %s\n", result.NoHistory, result.SQLite)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmark runs one command repeatedly and returns the successful run times.
func runBenchmark(config BenchmarkConfig, command, country, backend string) []float64 {
	args := []string{
		command,
		"--source", config.DataDir,
		"--country", country,
		"--output", "json",
		"--history-backend", backend,
		"--history-db-connect", config.HistoryDB,
	}

	var times []float64
	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		err := exec.CommandContext(ctx, "goodnews", args...).Run()
		elapsed := time.Since(start)
		cancel()
		if err == nil {
			times = append(times, elapsed.Seconds())
		}
	}
	return times
}

// average formats the mean of times, or FAILED when nothing succeeded.
func average(times []float64) string {
	if len(times) == 0 {
		return "FAILED"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("goodnews_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"country", "cmd", "no_history_avg", "sqlite_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Country, r.Command, r.NoHistory, r.SQLite}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the results grouped by command.
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, r := range results {
			if r.Command == command {
				fmt.Printf("  %-8s: No history: %s, SQLite: %s\n", r.Country, r.NoHistory, r.SQLite)
			}
		}
	}
}
