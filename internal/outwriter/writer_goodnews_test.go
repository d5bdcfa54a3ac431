package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() schema.GoodNewsResult {
	return schema.GoodNewsResult{
		LastUpdated: time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC),
		Sections: []schema.Section{
			{
				Title: "Confirmed cases",
				Reports: []schema.Report{
					{
						Kind:     schema.LowestSinceKind,
						Location: "Italy",
						Metric:   schema.ConfirmedMetric,
						Since:    time.Date(2020, time.March, 5, 0, 0, 0, 0, time.UTC),
						Value:    120,
						Text:     "Italy - lowest confirmed cases since March 5 (120)",
					},
				},
			},
			{Title: "Deaths"},
			{
				Title: "Recovery milestones",
				Reports: []schema.Report{
					{
						Kind:      schema.RecoveryMilestoneKind,
						Location:  "Chile",
						Metric:    "recoveries",
						Since:     time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC),
						Value:     10432,
						Milestone: 10000,
						Text:      "Chile passed 10,000 recoveries (10,432)",
					},
				},
			},
		},
	}
}

func TestWriteTextGoodNews(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTextGoodNews(&buf, sampleResult(), false))

	expected := strings.Join([]string{
		"Last Updated: 06/01/20",
		"",
		"Confirmed cases",
		"Italy - lowest confirmed cases since March 5 (120)",
		"",
		"Recovery milestones",
		"Chile passed 10,000 recoveries (10,432)",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestWriteTextGoodNews_NoNews(t *testing.T) {
	result := schema.GoodNewsResult{
		Country:     "Italy",
		LastUpdated: time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC),
		Sections:    []schema.Section{{Title: "Deaths"}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeTextGoodNews(&buf, result, false))
	assert.Equal(t, "Last Updated: 06/01/20 | Country: Italy\n\nNo news to report.\n", buf.String())
}

func TestWriteJSONGoodNews(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONGoodNews(&buf, sampleResult()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(2), decoded["total"])
	assert.NotContains(t, decoded, "country", "empty country is omitted")

	sections, ok := decoded["sections"].([]any)
	require.True(t, ok)
	assert.Len(t, sections, 3)
}

func TestWriteCSVGoodNews(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVGoodNews(&buf, sampleResult()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "section,kind,location,metric,reference_date,before_earliest,possibly_since,value,milestone,text", lines[0])
	assert.Equal(t, "Confirmed cases,lowest_since,Italy,confirmed cases,2020-03-05,false,,120,0,Italy - lowest confirmed cases since March 5 (120)", lines[1])
	assert.Equal(t, `Recovery milestones,recovery_milestone,Chile,recoveries,2020-06-01,false,,10432,10000,"Chile passed 10,000 recoveries (10,432)"`, lines[2])
}

func TestPrintGoodNews_ToFile(t *testing.T) {
	tests := []struct {
		output schema.OutputMode
		want   string
	}{
		{schema.TextOut, "Last Updated: 06/01/20"},
		{schema.CSVOut, "section,kind"},
		{schema.JSONOut, `"total": 2`},
	}

	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "news")
			cfg := &contract.Config{Output: tt.output, OutputFile: path, UseColors: true}
			require.NoError(t, PrintGoodNews(sampleResult(), cfg))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(content), tt.want)
			assert.NotContains(t, string(content), "\x1b[", "files never carry color codes")
		})
	}
}

func TestColorsEnabled(t *testing.T) {
	assert.False(t, ColorsEnabled(&contract.Config{UseColors: false}))
	assert.False(t, ColorsEnabled(&contract.Config{UseColors: true, OutputFile: "news.txt"}))
}
