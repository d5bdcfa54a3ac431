package core

import (
	"context"
	"fmt"
	"time"

	"github.com/covid19gng/goodnews/core/series"
	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/schema"
	"github.com/schollz/progressbar/v3"
)

// Snapshot holds the five published tables of one data refresh.
type Snapshot struct {
	ConfirmedUS     *series.Table
	DeathsUS        *series.Table
	ConfirmedGlobal *series.Table
	DeathsGlobal    *series.Table
	RecoveredGlobal *series.Table
}

// snapshotTables lists the tables to load, in load order.
var snapshotTables = []struct {
	dataset schema.Dataset
	scope   schema.Scope
	slot    func(*Snapshot) **series.Table
}{
	{schema.ConfirmedDataset, schema.GlobalScope, func(s *Snapshot) **series.Table { return &s.ConfirmedGlobal }},
	{schema.DeathsDataset, schema.GlobalScope, func(s *Snapshot) **series.Table { return &s.DeathsGlobal }},
	{schema.RecoveredDataset, schema.GlobalScope, func(s *Snapshot) **series.Table { return &s.RecoveredGlobal }},
	{schema.ConfirmedDataset, schema.USScope, func(s *Snapshot) **series.Table { return &s.ConfirmedUS }},
	{schema.DeathsDataset, schema.USScope, func(s *Snapshot) **series.Table { return &s.DeathsUS }},
}

// LoadSnapshot fetches every table sequentially. A progress bar is drawn on
// stderr when progress is set.
func LoadSnapshot(ctx context.Context, src contract.TableSource, progress bool) (*Snapshot, error) {
	var bar *progressbar.ProgressBar
	if progress {
		bar = progressbar.Default(int64(len(snapshotTables)), "loading")
	}

	snap := &Snapshot{}
	for _, t := range snapshotTables {
		tbl, err := src.Load(ctx, t.dataset, t.scope)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s %s data: %w", t.scope, t.dataset, err)
		}
		*t.slot(snap) = tbl
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return snap, nil
}

// Tables returns the tables in load order.
func (s *Snapshot) Tables() []*series.Table {
	out := make([]*series.Table, 0, len(snapshotTables))
	for _, t := range snapshotTables {
		out = append(out, *t.slot(s))
	}
	return out
}

// LastUpdated returns the latest date present in any table.
func (s *Snapshot) LastUpdated() time.Time {
	var last time.Time
	for _, tbl := range s.Tables() {
		if d := tbl.LastDate(); d.After(last) {
			last = d
		}
	}
	return last
}

// Window returns a snapshot restricted to dates in [from, until].
// A zero bound leaves that side open.
func (s *Snapshot) Window(from, until time.Time) *Snapshot {
	out := &Snapshot{}
	for _, t := range snapshotTables {
		tbl := (*t.slot(s)).From(from)
		if !until.IsZero() {
			tbl = tbl.Until(until)
		}
		*t.slot(out) = tbl
	}
	return out
}
