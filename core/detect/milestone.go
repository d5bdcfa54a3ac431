package detect

import (
	"fmt"

	"github.com/covid19gng/goodnews/core/series"
	"github.com/covid19gng/goodnews/schema"
)

// RecoveryMilestoneDetector reports when cumulative recoveries cross a
// leading-digit milestone such as 10,000 or 20,000.
type RecoveryMilestoneDetector struct {
	opts Options
}

var _ Detector = &RecoveryMilestoneDetector{} // Compile-time check

// NewRecoveryMilestone builds a recovery milestone detector.
func NewRecoveryMilestone(opts Options) *RecoveryMilestoneDetector {
	return &RecoveryMilestoneDetector{opts: opts.withDefaults()}
}

// Evaluate implements Detector.
func (d *RecoveryMilestoneDetector) Evaluate(s series.Series, location string) (schema.Report, bool) {
	return RecoveryMilestone(s, location, d.opts)
}

// RecoveryMilestone reports when the milestone just below today's value was
// reached or passed by the most recent update, i.e. today > milestone >= yesterday.
func RecoveryMilestone(s series.Series, location string, opts Options) (schema.Report, bool) {
	opts = opts.withDefaults()
	if len(s) < 2 {
		return schema.Report{}, false
	}

	yesterday, today := s[len(s)-2], s[len(s)-1]
	if today.Value <= opts.RecoveriesThreshold {
		return schema.Report{}, false
	}

	milestone := Milestone(today.Value)
	if !(today.Value > milestone && milestone >= yesterday.Value) {
		return schema.Report{}, false
	}

	return schema.Report{
		Kind:      schema.RecoveryMilestoneKind,
		Location:  location,
		Metric:    "recoveries",
		Since:     today.Date,
		Value:     today.Value,
		Milestone: milestone,
		Text: fmt.Sprintf("%s passed %s recoveries (%s)",
			location, formatCount(milestone), formatCount(today.Value)),
	}, true
}

// Milestone rounds a positive value down to its leading digit, e.g. 15342 -> 10000.
func Milestone(v int64) int64 {
	if v <= 0 {
		return 0
	}
	unit := int64(1)
	for n := v; n >= 10; n /= 10 {
		unit *= 10
	}
	return v / unit * unit
}
