package iocache

import (
	"time"

	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, country string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, country, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordReports implements the HistoryStore interface.
func (m *MockHistoryStore) RecordReports(runID int64, sections []schema.Section) error {
	args := m.Called(runID, sections)
	return args.Error(0)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime, dataUpdated time.Time, totalReports int) error {
	args := m.Called(runID, endTime, dataUpdated, totalReports)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.ReportRunRecord, error) {
	args := m.Called()
	runs, _ := args.Get(0).([]schema.ReportRunRecord)
	return runs, args.Error(1)
}

// GetAllLines implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllLines() ([]schema.ReportLineRecord, error) {
	args := m.Called()
	lines, _ := args.Get(0).([]schema.ReportLineRecord)
	return lines, args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
