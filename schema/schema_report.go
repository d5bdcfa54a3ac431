package schema

import "time"

// Report is a single piece of good news about one location.
type Report struct {
	Kind     ReportKind `json:"kind"`
	Location string     `json:"location"`
	Metric   string     `json:"metric"`

	// Since is the reference date. It is zero when BeforeEarliest is set.
	Since          time.Time `json:"since,omitzero"`
	BeforeEarliest bool      `json:"before_earliest,omitempty"`
	Earliest       time.Time `json:"earliest,omitzero"`

	// PossiblySince is the "possibly as early as" date for noisy history.
	PossiblySince time.Time `json:"possibly_since,omitzero"`

	Value     int64  `json:"value"`
	Milestone int64  `json:"milestone,omitempty"`
	Text      string `json:"text"`
}

// ReferenceDate returns the date the report is anchored to.
func (r Report) ReferenceDate() time.Time {
	if r.BeforeEarliest {
		return r.Earliest
	}
	return r.Since
}

// Section groups the reports produced by one generator.
type Section struct {
	Title   string   `json:"title"`
	Reports []Report `json:"reports"`
}

// GoodNewsResult holds the outcome of one report run.
type GoodNewsResult struct {
	Country     string    `json:"country,omitempty"`
	LastUpdated time.Time `json:"last_updated"`
	Sections    []Section `json:"sections"`
}

// Total returns the number of reports across all sections.
func (g GoodNewsResult) Total() int {
	total := 0
	for _, s := range g.Sections {
		total += len(s.Reports)
	}
	return total
}

// Reports returns every report in section order.
func (g GoodNewsResult) Reports() []Report {
	out := make([]Report, 0, g.Total())
	for _, s := range g.Sections {
		out = append(out, s.Reports...)
	}
	return out
}

// LocationSummary holds the latest cumulative totals for one location.
type LocationSummary struct {
	Location  string `json:"location"`
	Confirmed int64  `json:"confirmed"`
	Deaths    int64  `json:"deaths"`
	Recovered int64  `json:"recovered"`
}
