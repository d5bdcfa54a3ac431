// Package detect decides whether a location's time series carries good news.
package detect

import (
	"errors"
	"time"

	"github.com/covid19gng/goodnews/core/series"
	"github.com/covid19gng/goodnews/schema"
	"github.com/dustin/go-humanize"
)

// Default values for detection.
const (
	DefaultThresholdDays       = 30
	DefaultRecoveriesThreshold = 1000
)

// ReportDateFormat renders dates as month name plus day, e.g. "March 5".
const ReportDateFormat = "January 2"

// ErrMissingMetric is returned when a lowest-since detector has no metric description.
var ErrMissingMetric = errors.New("metric description is required")

// Options configures every detector. It is built once at startup.
type Options struct {
	// ThresholdDays is the minimum age of the previous low before it is news.
	ThresholdDays int
	// RecoveriesThreshold is the count today's recoveries must exceed.
	RecoveriesThreshold int64
	// Earliest is the first tracked date. Zero means the first point of each series.
	Earliest time.Time
	// Now is the reference "most recent date". Zero means the last point of each series.
	Now time.Time
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ThresholdDays:       DefaultThresholdDays,
		RecoveriesThreshold: DefaultRecoveriesThreshold,
	}
}

func (o Options) withDefaults() Options {
	if o.ThresholdDays <= 0 {
		o.ThresholdDays = DefaultThresholdDays
	}
	if o.RecoveriesThreshold <= 0 {
		o.RecoveriesThreshold = DefaultRecoveriesThreshold
	}
	return o
}

// Detector evaluates one location's cumulative series.
type Detector interface {
	Evaluate(s series.Series, location string) (schema.Report, bool)
}

// formatDate renders a date for report text.
func formatDate(t time.Time) string {
	return t.Format(ReportDateFormat)
}

// formatCount renders a count with comma-grouped thousands.
func formatCount(v int64) string {
	return humanize.Comma(v)
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
