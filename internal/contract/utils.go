package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/covid19gng/goodnews/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	TitleColor   = color.New(color.FgHiWhite, color.Bold) // TitleColor marks the report banner.
	SectionColor = color.New(color.FgCyan, color.Bold)    // SectionColor marks a section heading.
	NewsColor    = color.New(color.FgGreen)               // NewsColor marks a single report line.
	MutedColor   = color.New(color.FgHiBlack)             // MutedColor marks empty sections.
)

// SourceDateFormat is the date key format used by the published CSV headers.
const SourceDateFormat = "1/2/06"

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger("goodnews").Fatalf("%s: %v", msg, err)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger("goodnews").Warnf("%s: %v", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for report history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".goodnews_history.db"
	}
	return filepath.Join(homeDir, ".goodnews_history.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseDate accepts either ISO8601 dates (2020-03-05) or the source's
// short form (3/5/20). The result is UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.DateOnly, SourceDateFormat} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or M/D/YY)", s)
}

// NormalizeCountry trims the country selection and maps the "all" keyword to empty.
func NormalizeCountry(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, schema.AllCountries) || strings.EqualFold(s, "all") {
		return ""
	}
	return s
}
