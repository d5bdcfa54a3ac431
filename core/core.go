// Package core assembles the good news report from the published tables.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/covid19gng/goodnews/core/detect"
	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/internal/outwriter"
	"github.com/covid19gng/goodnews/schema"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownCountry is returned when the requested country is not in the data.
var ErrUnknownCountry = errors.New("unknown country")

// Section titles, in report order.
const (
	USConfirmedTitle = "US confirmed cases"
	USDeathsTitle    = "US deaths"
	ConfirmedTitle   = "Confirmed cases"
	DeathsTitle      = "Deaths"
	RecoveriesTitle  = "Recovery milestones"
	ActiveCasesTitle = "Active cases"
)

// ExecuteGoodNews runs the report, records it in the history store and
// prints it. It serves as the main entry point for the 'report' command.
func ExecuteGoodNews(ctx context.Context, cfg *contract.Config, src contract.TableSource, mgr contract.StoreManager) error {
	result, err := RunGoodNews(ctx, cfg, src, mgr, cfg.Output == schema.TextOut)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteGoodNews(result, cfg)
}

// RunGoodNews computes the report and records the run when mgr has a
// history store. History failures are logged and never fail the run.
func RunGoodNews(ctx context.Context, cfg *contract.Config, src contract.TableSource, mgr contract.StoreManager, progress bool) (schema.GoodNewsResult, error) {
	start := time.Now()

	var store contract.HistoryStore
	if mgr != nil {
		store = mgr.GetHistoryStore()
	}
	var runID int64
	if store != nil {
		var err error
		runID, err = store.BeginRun(start, cfg.Country, cfg.ConfigParams())
		if err != nil {
			contract.LogWarn("History tracking initialization failed", err)
			store = nil
		}
	}

	result, err := GetGoodNews(ctx, cfg, src, progress)
	if err != nil {
		return schema.GoodNewsResult{}, err
	}

	if store != nil && runID > 0 {
		recordRun(store, runID, result)
	}

	contract.Logger("core").WithFields(log.Fields{
		"country":  result.Country,
		"reports":  result.Total(),
		"duration": time.Since(start),
	}).Debug("report complete")
	return result, nil
}

// recordRun stores the reports of a finished run. Failures are warnings.
func recordRun(store contract.HistoryStore, runID int64, result schema.GoodNewsResult) {
	if err := store.RecordReports(runID, result.Sections); err != nil {
		contract.LogWarn(fmt.Sprintf("History tracking failed for run %d", runID), err)
	}
	if err := store.EndRun(runID, time.Now(), result.LastUpdated, result.Total()); err != nil {
		contract.LogWarn(fmt.Sprintf("History tracking failed to close run %d", runID), err)
	}
}

// GetGoodNews loads a snapshot and evaluates every generator for the
// configured country.
func GetGoodNews(ctx context.Context, cfg *contract.Config, src contract.TableSource, progress bool) (schema.GoodNewsResult, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	snap, err := LoadSnapshot(ctx, src, progress)
	if err != nil {
		return schema.GoodNewsResult{}, err
	}
	snap = snap.Window(cfg.Earliest, cfg.AsOf)

	country, err := ResolveCountry(snap, cfg.Country)
	if err != nil {
		return schema.GoodNewsResult{}, err
	}

	generators, err := BuildGenerators(snap, country, cfg)
	if err != nil {
		return schema.GoodNewsResult{}, err
	}

	sections, err := RunGenerators(ctx, generators, cfg.Workers)
	if err != nil {
		return schema.GoodNewsResult{}, err
	}

	return schema.GoodNewsResult{
		Country:     country,
		LastUpdated: snap.LastUpdated(),
		Sections:    sections,
	}, nil
}

// ResolveCountry matches name against the global country keys ignoring case
// and returns the canonical spelling. An empty name selects all countries.
func ResolveCountry(snap *Snapshot, name string) (string, error) {
	name = contract.NormalizeCountry(name)
	if name == "" {
		return "", nil
	}
	for _, c := range snap.ConfirmedGlobal.Keys(schema.CountryColumn) {
		if strings.EqualFold(c, name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCountry, name)
}

// DetectOptions builds the detector options from the validated config.
func DetectOptions(cfg *contract.Config) detect.Options {
	return detect.Options{
		ThresholdDays:       cfg.ThresholdDays,
		RecoveriesThreshold: cfg.RecoveriesThreshold,
		Earliest:            cfg.Earliest,
	}
}

// BuildGenerators returns the generators for a country selection, in report
// order. The US tables are only used for all countries or for the US itself.
func BuildGenerators(snap *Snapshot, country string, cfg *contract.Config) ([]Generator, error) {
	opts := DetectOptions(cfg)

	confirmed, err := detect.NewLowestSince(schema.ConfirmedMetric, opts)
	if err != nil {
		return nil, err
	}
	deaths, err := detect.NewLowestSince(schema.DeathsMetric, opts)
	if err != nil {
		return nil, err
	}

	var generators []Generator
	if country == "" || country == schema.USCountry {
		generators = append(generators,
			NewSeriesGenerator(USConfirmedTitle, snap.ConfirmedUS, confirmed),
			NewSeriesGenerator(USDeathsTitle, snap.DeathsUS, deaths),
		)
	}

	confirmedTbl, deathsTbl, recoveredTbl := snap.ConfirmedGlobal, snap.DeathsGlobal, snap.RecoveredGlobal
	if country != "" {
		confirmedTbl = confirmedTbl.Filter(schema.CountryColumn, country)
		deathsTbl = deathsTbl.Filter(schema.CountryColumn, country)
		recoveredTbl = recoveredTbl.Filter(schema.CountryColumn, country)
	}

	generators = append(generators,
		NewSeriesGenerator(ConfirmedTitle, confirmedTbl, confirmed),
		NewSeriesGenerator(DeathsTitle, deathsTbl, deaths),
		NewSeriesGenerator(RecoveriesTitle, recoveredTbl, detect.NewRecoveryMilestone(opts)),
	)
	if cfg.Active {
		generators = append(generators, NewActiveGenerator(ActiveCasesTitle, confirmedTbl, recoveredTbl, opts))
	}
	return generators, nil
}

// RunGenerators evaluates generators with at most workers running at once.
// Sections come back in generator order regardless of completion order.
func RunGenerators(ctx context.Context, generators []Generator, workers int) ([]schema.Section, error) {
	sections := make([]schema.Section, len(generators))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, gen := range generators {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sections[i] = schema.Section{Title: gen.Title(), Reports: gen.Generate()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}
