package detect

import (
	"fmt"

	"github.com/covid19gng/goodnews/core/series"
	"github.com/covid19gng/goodnews/schema"
)

// LowestSinceDetector reports when today's daily count is the lowest in a while.
type LowestSinceDetector struct {
	metric string
	opts   Options
}

var _ Detector = &LowestSinceDetector{} // Compile-time check

// NewLowestSince builds a detector for the given metric description.
func NewLowestSince(metric string, opts Options) (*LowestSinceDetector, error) {
	if metric == "" {
		return nil, ErrMissingMetric
	}
	return &LowestSinceDetector{metric: metric, opts: opts.withDefaults()}, nil
}

// Metric returns the metric description used in report text.
func (d *LowestSinceDetector) Metric() string {
	return d.metric
}

// Evaluate implements Detector.
func (d *LowestSinceDetector) Evaluate(s series.Series, location string) (schema.Report, bool) {
	return LowestSince(s, location, d.metric, d.opts)
}

// LowestSince decides whether the last daily delta of a cumulative series is
// the lowest since a date at least ThresholdDays before the most recent date.
//
// The previous low is the most recent earlier delta that is <= today. A
// non-positive previous low is usually a data correction, so the most recent
// positive delta <= today before it is reported as a "possibly as early as"
// date, and either date may satisfy the threshold.
func LowestSince(s series.Series, location, metric string, opts Options) (schema.Report, bool) {
	opts = opts.withDefaults()

	deltas := s.Deltas()
	if len(deltas) == 0 {
		return schema.Report{}, false
	}

	today := deltas[len(deltas)-1]
	candidates := deltas[:len(deltas)-1]

	mostRecent := opts.Now
	if mostRecent.IsZero() {
		mostRecent = today.Date
	}

	report := schema.Report{
		Kind:     schema.LowestSinceKind,
		Location: location,
		Metric:   metric,
		Value:    today.Value,
	}

	prev := -1
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].Value <= today.Value {
			prev = i
			break
		}
	}

	if prev < 0 {
		earliest := opts.Earliest
		if earliest.IsZero() {
			earliest = s[0].Date
		}
		report.BeforeEarliest = true
		report.Earliest = earliest
		report.Text = renderLowestSince(report)
		return report, true
	}

	previous := candidates[prev]
	report.Since = previous.Date
	qualifies := daysBetween(previous.Date, mostRecent) >= opts.ThresholdDays

	if previous.Value <= 0 {
		for j := prev - 1; j >= 0; j-- {
			if v := candidates[j].Value; v > 0 && v <= today.Value {
				report.PossiblySince = candidates[j].Date
				qualifies = qualifies || daysBetween(candidates[j].Date, mostRecent) >= opts.ThresholdDays
				break
			}
		}
	}

	if !qualifies {
		return schema.Report{}, false
	}
	report.Text = renderLowestSince(report)
	return report, true
}

func renderLowestSince(r schema.Report) string {
	switch {
	case r.BeforeEarliest:
		return fmt.Sprintf("%s - lowest %s since before %s (%s)",
			r.Location, r.Metric, formatDate(r.Earliest), formatCount(r.Value))
	case !r.PossiblySince.IsZero():
		return fmt.Sprintf("%s - lowest %s since %s, possibly as early as %s (%s)",
			r.Location, r.Metric, formatDate(r.Since), formatDate(r.PossiblySince), formatCount(r.Value))
	default:
		return fmt.Sprintf("%s - lowest %s since %s (%s)",
			r.Location, r.Metric, formatDate(r.Since), formatCount(r.Value))
	}
}
