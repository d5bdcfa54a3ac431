// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/covid19gng/goodnews/core/series"
	"github.com/covid19gng/goodnews/schema"
)

// TableSource loads snapshot tables of cumulative counts.
// This allows the report logic to be tested without network access.
type TableSource interface {
	// Load returns the table for one dataset and scope, e.g. confirmed/global.
	Load(ctx context.Context, dataset schema.Dataset, scope schema.Scope) (*series.Table, error)
}

// StoreManager defines the interface for managing persistence stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking report runs and the news they produced.
type HistoryStore interface {
	// BeginRun creates a new report run and returns its unique ID
	BeginRun(startTime time.Time, country string, configParams map[string]any) (int64, error)

	// RecordReports stores every report of a run in section order
	RecordReports(runID int64, sections []schema.Section) error

	// EndRun updates the report run with completion data
	EndRun(runID int64, endTime time.Time, dataUpdated time.Time, totalReports int) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every stored run ordered by ID
	GetAllRuns() ([]schema.ReportRunRecord, error)

	// GetAllLines returns every stored report line ordered by run and sequence
	GetAllLines() ([]schema.ReportLineRecord, error)

	// Close closes the underlying connection
	Close() error
}
