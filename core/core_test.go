package core

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/covid19gng/goodnews/core/series"
	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/internal/iocache"
	"github.com/covid19gng/goodnews/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2020, time.January, 22, 0, 0, 0, 0, time.UTC)

func days(n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = day0.AddDate(0, 0, i)
	}
	return out
}

// globalRow builds a row of a global table.
func globalRow(province, country string, values ...int64) series.Row {
	return series.Row{
		Attrs:  map[string]string{schema.ProvinceColumn: province, schema.CountryColumn: country},
		Values: values,
	}
}

// usRow builds a row of a US table.
func usRow(state string, values ...int64) series.Row {
	return series.Row{
		Attrs:  map[string]string{schema.StateColumn: state, "Country_Region": "US"},
		Values: values,
	}
}

func globalTable(name string, rows ...series.Row) *series.Table {
	return &series.Table{
		Name:    name,
		Columns: []string{schema.ProvinceColumn, schema.CountryColumn, "Lat", "Long"},
		Dates:   days(5),
		Rows:    rows,
	}
}

func usTable(name string, rows ...series.Row) *series.Table {
	return &series.Table{
		Name:    name,
		Columns: []string{"UID", schema.StateColumn, "Country_Region"},
		Dates:   days(5),
		Rows:    rows,
	}
}

// fakeSource serves fixed tables and counts loads.
type fakeSource struct {
	tables map[string]*series.Table
	fail   string
	loads  atomic.Int32
}

var _ contract.TableSource = &fakeSource{} // Compile-time check

func (f *fakeSource) Load(_ context.Context, dataset schema.Dataset, scope schema.Scope) (*series.Table, error) {
	f.loads.Add(1)
	key := string(dataset) + "_" + string(scope)
	if key == f.fail {
		return nil, errors.New("connection reset")
	}
	tbl, ok := f.tables[key]
	if !ok {
		return nil, errors.New("missing fixture " + key)
	}
	return tbl, nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{tables: map[string]*series.Table{
		"confirmed_global": globalTable("confirmed_global",
			globalRow("", "Italy", 0, 1000, 2000, 3000, 3100),
			globalRow("", "Spain", 0, 1, 2, 3, 4),
			globalRow("Ontario", "Canada", 0, 5, 10, 15, 20),
			globalRow("Quebec", "Canada", 0, 5, 10, 15, 16),
			globalRow("", "US", 0, 1, 2, 3, 4),
		),
		"deaths_global": globalTable("deaths_global",
			globalRow("", "Italy", 0, 1, 2, 3, 4),
			globalRow("", "Spain", 0, 1, 2, 3, 4),
			globalRow("Ontario", "Canada", 0, 1, 2, 3, 4),
			globalRow("Quebec", "Canada", 0, 1, 2, 3, 4),
			globalRow("", "US", 0, 1, 2, 3, 4),
		),
		"recovered_global": globalTable("recovered_global",
			globalRow("", "Italy", 0, 500, 900, 1500, 2100),
			globalRow("", "Spain", 0, 0, 0, 0, 0),
			globalRow("", "Canada", 0, 0, 0, 0, 0),
			globalRow("", "US", 0, 0, 0, 0, 0),
		),
		"confirmed_US": usTable("confirmed_US",
			usRow("New York", 0, 10, 20, 30, 32),
			usRow("Texas", 0, 1, 2, 3, 4),
		),
		"deaths_US": usTable("deaths_US",
			usRow("New York", 0, 1, 2, 3, 4),
			usRow("Texas", 0, 1, 2, 3, 4),
		),
	}}
}

func testConfig() *contract.Config {
	return &contract.Config{
		Timeout:             time.Second,
		Earliest:            day0,
		ThresholdDays:       30,
		RecoveriesThreshold: 1000,
		Active:              true,
		Workers:             2,
		Output:              schema.JSONOut,
	}
}

func texts(section schema.Section) []string {
	out := make([]string, 0, len(section.Reports))
	for _, r := range section.Reports {
		out = append(out, r.Text)
	}
	return out
}

func TestGetGoodNews_AllCountries(t *testing.T) {
	src := newFakeSource()
	result, err := GetGoodNews(context.Background(), testConfig(), src, false)
	require.NoError(t, err)

	assert.Equal(t, int32(5), src.loads.Load())
	assert.Equal(t, "", result.Country)
	assert.Equal(t, day0.AddDate(0, 0, 4), result.LastUpdated)

	require.Len(t, result.Sections, 6)
	titles := make([]string, len(result.Sections))
	for i, s := range result.Sections {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{USConfirmedTitle, USDeathsTitle, ConfirmedTitle, DeathsTitle, RecoveriesTitle, ActiveCasesTitle}, titles)

	assert.Equal(t, []string{"New York - lowest confirmed cases since before January 22 (2)"}, texts(result.Sections[0]))
	assert.Empty(t, result.Sections[1].Reports)
	assert.Equal(t, []string{
		"Canada - lowest confirmed cases since before January 22 (6)",
		"Italy - lowest confirmed cases since before January 22 (100)",
		"Quebec - lowest confirmed cases since before January 22 (1)",
	}, texts(result.Sections[2]), "countries first, then provinces")
	assert.Empty(t, result.Sections[3].Reports)
	assert.Equal(t, []string{"Italy passed 2,000 recoveries (2,100)"}, texts(result.Sections[4]))
	assert.Equal(t, []string{
		"Canada - lowest active cases since before January 22 (6)",
		"Italy - lowest active cases since before January 22 (-500)",
	}, texts(result.Sections[5]))

	assert.Equal(t, 7, result.Total())
}

func TestGetGoodNews_Country(t *testing.T) {
	cfg := testConfig()
	cfg.Country = "italy"

	result, err := GetGoodNews(context.Background(), cfg, newFakeSource(), false)
	require.NoError(t, err)

	assert.Equal(t, "Italy", result.Country, "canonical spelling")
	require.Len(t, result.Sections, 4, "no US sections for another country")
	assert.Equal(t, []string{"Italy - lowest confirmed cases since before January 22 (100)"}, texts(result.Sections[0]))
	assert.Equal(t, []string{"Italy passed 2,000 recoveries (2,100)"}, texts(result.Sections[2]))
	assert.Len(t, result.Sections[3].Reports, 1)
}

func TestGetGoodNews_US(t *testing.T) {
	cfg := testConfig()
	cfg.Country = "us"
	cfg.Active = false

	result, err := GetGoodNews(context.Background(), cfg, newFakeSource(), false)
	require.NoError(t, err)

	assert.Equal(t, "US", result.Country)
	require.Len(t, result.Sections, 5)
	assert.Equal(t, USConfirmedTitle, result.Sections[0].Title)
	assert.Equal(t, 1, result.Total())
}

func TestGetGoodNews_AsOf(t *testing.T) {
	cfg := testConfig()
	cfg.AsOf = day0.AddDate(0, 0, 2)

	result, err := GetGoodNews(context.Background(), cfg, newFakeSource(), false)
	require.NoError(t, err)
	assert.Equal(t, cfg.AsOf, result.LastUpdated)
	assert.Zero(t, result.Total(), "steady growth until the as-of date")
}

func TestGetGoodNews_Errors(t *testing.T) {
	t.Run("unknown country", func(t *testing.T) {
		cfg := testConfig()
		cfg.Country = "Atlantis"
		_, err := GetGoodNews(context.Background(), cfg, newFakeSource(), false)
		require.ErrorIs(t, err, ErrUnknownCountry)
		assert.Contains(t, err.Error(), "Atlantis")
	})

	t.Run("load failure", func(t *testing.T) {
		src := newFakeSource()
		src.fail = "recovered_global"
		_, err := GetGoodNews(context.Background(), testConfig(), src, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Equal(t, int32(3), src.loads.Load(), "loading stops at the first failure")
	})
}

func TestResolveCountry(t *testing.T) {
	snap, err := LoadSnapshot(context.Background(), newFakeSource(), false)
	require.NoError(t, err)

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"none", "", false},
		{"ALL", "", false},
		{"canada", "Canada", false},
		{" Spain ", "Spain", false},
		{"Narnia", "", true},
	}
	for _, tt := range tests {
		got, err := ResolveCountry(snap, tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownCountry, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}
}

// slowGenerator finishes in reverse order to exercise ordering.
type slowGenerator struct {
	title string
	delay time.Duration
}

func (g slowGenerator) Title() string { return g.title }

func (g slowGenerator) Generate() []schema.Report {
	time.Sleep(g.delay)
	return []schema.Report{{Location: g.title}}
}

func TestRunGenerators_Ordered(t *testing.T) {
	gens := []Generator{
		slowGenerator{"a", 30 * time.Millisecond},
		slowGenerator{"b", 10 * time.Millisecond},
		slowGenerator{"c", 0},
	}

	for _, workers := range []int{0, 1, 3} {
		sections, err := RunGenerators(context.Background(), gens, workers)
		require.NoError(t, err)
		require.Len(t, sections, 3)
		assert.Equal(t, "a", sections[0].Title)
		assert.Equal(t, "b", sections[1].Title)
		assert.Equal(t, "c", sections[2].Reports[0].Location)
	}
}

func TestRunGenerators_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunGenerators(ctx, []Generator{slowGenerator{"a", 0}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteGoodNews_RecordsHistory(t *testing.T) {
	cfg := testConfig()
	cfg.Country = "Italy"
	cfg.OutputFile = filepath.Join(t.TempDir(), "news.json")

	store := &iocache.MockHistoryStore{}
	store.On("BeginRun", mock.Anything, "Italy", mock.Anything).Return(int64(7), nil)
	store.On("RecordReports", int64(7), mock.MatchedBy(func(s []schema.Section) bool { return len(s) == 4 })).Return(nil)
	store.On("EndRun", int64(7), mock.Anything, day0.AddDate(0, 0, 4), 3).Return(nil)

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetHistoryStore").Return(store)

	require.NoError(t, ExecuteGoodNews(context.Background(), cfg, newFakeSource(), mgr))
	store.AssertExpectations(t)
	mgr.AssertExpectations(t)

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, "Italy", decoded["country"])
	assert.Equal(t, float64(3), decoded["total"])
}

func TestExecuteGoodNews_HistoryFailureIsNotFatal(t *testing.T) {
	cfg := testConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "news.json")

	store := &iocache.MockHistoryStore{}
	store.On("BeginRun", mock.Anything, "", mock.Anything).Return(int64(0), errors.New("database is locked"))

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetHistoryStore").Return(store)

	require.NoError(t, ExecuteGoodNews(context.Background(), cfg, newFakeSource(), mgr))
	store.AssertNotCalled(t, "RecordReports", mock.Anything, mock.Anything)

	_, err := os.Stat(cfg.OutputFile)
	assert.NoError(t, err)
}

func TestExecuteGoodNews_SQLiteHistory(t *testing.T) {
	cfg := testConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "news.json")

	store, err := iocache.NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetHistoryStore").Return(store)

	require.NoError(t, ExecuteGoodNews(context.Background(), cfg, newFakeSource(), mgr))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalRuns)
	assert.Equal(t, 7, status.TotalReports)

	lines, err := store.GetAllLines()
	require.NoError(t, err)
	require.Len(t, lines, 7)
	assert.Equal(t, USConfirmedTitle, lines[0].Section)
	assert.Equal(t, ActiveCasesTitle, lines[6].Section)
}
