package core

import (
	"context"
	"slices"
	"strings"

	"github.com/covid19gng/goodnews/core/series"
	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/internal/outwriter"
	"github.com/covid19gng/goodnews/schema"
)

// ExecuteLocations prints the latest totals per location. It serves as the
// main entry point for the 'locations' command.
func ExecuteLocations(ctx context.Context, cfg *contract.Config, src contract.TableSource) error {
	rows, err := ListLocations(ctx, cfg, src, cfg.Output == schema.TextOut)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteLocations(rows, cfg)
}

// ListLocations returns every country with its latest totals. With a country
// selected it returns that country followed by its provinces or states.
func ListLocations(ctx context.Context, cfg *contract.Config, src contract.TableSource, progress bool) ([]schema.LocationSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	snap, err := LoadSnapshot(ctx, src, progress)
	if err != nil {
		return nil, err
	}
	snap = snap.Window(cfg.Earliest, cfg.AsOf)

	country, err := ResolveCountry(snap, cfg.Country)
	if err != nil {
		return nil, err
	}

	if country == "" {
		return summarize(snap.ConfirmedGlobal, snap.DeathsGlobal, snap.RecoveredGlobal, schema.CountryColumn), nil
	}

	confirmed := snap.ConfirmedGlobal.Filter(schema.CountryColumn, country)
	deaths := snap.DeathsGlobal.Filter(schema.CountryColumn, country)
	recovered := snap.RecoveredGlobal.Filter(schema.CountryColumn, country)

	rows := summarize(confirmed, deaths, recovered, schema.CountryColumn)
	if country == schema.USCountry {
		return append(rows, summarize(snap.ConfirmedUS, snap.DeathsUS, nil, schema.StateColumn)...), nil
	}
	return append(rows, summarize(confirmed, deaths, recovered, schema.ProvinceColumn)...), nil
}

// summarize collects the last cumulative value per location of each table.
// A nil table contributes zeros. Only keyed locations are listed.
func summarize(confirmed, deaths, recovered *series.Table, key string) []schema.LocationSummary {
	byLocation := map[string]*schema.LocationSummary{}
	collect := func(t *series.Table, set func(*schema.LocationSummary, int64)) {
		if t == nil || !t.HasColumn(key) {
			return
		}
		for loc, s := range t.Locations(key) {
			last, ok := s.Last()
			if !ok {
				continue
			}
			row, found := byLocation[loc]
			if !found {
				row = &schema.LocationSummary{Location: loc}
				byLocation[loc] = row
			}
			set(row, last.Value)
		}
	}

	collect(confirmed, func(r *schema.LocationSummary, v int64) { r.Confirmed = v })
	collect(deaths, func(r *schema.LocationSummary, v int64) { r.Deaths = v })
	collect(recovered, func(r *schema.LocationSummary, v int64) { r.Recovered = v })

	rows := make([]schema.LocationSummary, 0, len(byLocation))
	for _, r := range byLocation {
		rows = append(rows, *r)
	}
	slices.SortFunc(rows, func(a, b schema.LocationSummary) int {
		return strings.Compare(a.Location, b.Location)
	})
	return rows
}

